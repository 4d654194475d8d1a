package model

// Document bundles everything the engine needs for one generate or gate
// call: the invoice header, its lines, the issuing company profile and the
// counterparty. This is also the JSON wire shape accepted by the CLI and
// the HTTP API.
type Document struct {
	Invoice  Invoice        `json:"invoice"`
	Items    []LineItem     `json:"items"`
	Supplier CompanyProfile `json:"supplier"`
	Client   Party          `json:"client"`
}

// Normalize applies the engine's ingestion normalization: VAT rates above 1
// are treated as percent and converted to fractions exactly once.
func (d *Document) Normalize() {
	for i := range d.Items {
		d.Items[i].Normalize()
	}
}

// Package einvoice renders the Document Model into a CIUS-RO flavored UBL 2.1
// invoice and gates documents before submission. Generation is a total
// function: missing business data produces a structurally valid but
// semantically incomplete document, and catching that beforehand is the
// pre-submission gate's job.
package einvoice

import (
	"encoding/xml"
	"strconv"

	dec "github.com/shopspring/decimal"

	"github.com/facturino/tax-engine/internal/decimal"
	"github.com/facturino/tax-engine/internal/model"
)

const (
	// CustomizationID is the CIUS-RO compliance identifier declared on every
	// generated document.
	CustomizationID = "urn:cen.eu:en16931:2017#compliant#urn:efactura.mfinante.ro:CIUS-RO:1.0.1"

	xmlnsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	xmlnsCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	xmlnsCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"

	// UNECE 1001 document type codes
	typeCodeCommercial = "380"
	typeCodeProforma   = "325"

	// UNECE 4461: credit transfer
	paymentMeansCredit = "31"

	// UNECE rec 20: "unit" — CIUS-RO default when no unit is tracked
	unitCodeDefault = "C62"
)

// Element order is fixed: header, supplier, customer, payment means (only
// when a bank account is present), tax total, legal monetary total, lines.
type ublInvoice struct {
	XMLName              xml.Name     `xml:"Invoice"`
	Xmlns                string       `xml:"xmlns,attr"`
	XmlnsCBC             string       `xml:"xmlns:cbc,attr"`
	XmlnsCAC             string       `xml:"xmlns:cac,attr"`
	CustomizationID      string       `xml:"cbc:CustomizationID"`
	ID                   string       `xml:"cbc:ID"`
	IssueDate            string       `xml:"cbc:IssueDate,omitempty"`
	DueDate              string       `xml:"cbc:DueDate,omitempty"`
	InvoiceTypeCode      string       `xml:"cbc:InvoiceTypeCode"`
	Note                 string       `xml:"cbc:Note,omitempty"`
	DocumentCurrencyCode string       `xml:"cbc:DocumentCurrencyCode"`
	SupplierParty        ublPartyWrap `xml:"cac:AccountingSupplierParty"`
	CustomerParty        ublPartyWrap `xml:"cac:AccountingCustomerParty"`
	PaymentMeans         *ublPayMeans `xml:"cac:PaymentMeans,omitempty"`
	TaxTotal             ublTaxTotal  `xml:"cac:TaxTotal"`
	LegalMonetaryTotal   ublMonetary  `xml:"cac:LegalMonetaryTotal"`
	InvoiceLines         []ublLine    `xml:"cac:InvoiceLine"`
}

type ublPartyWrap struct {
	Party ublParty `xml:"cac:Party"`
}

type ublParty struct {
	PartyName     ublName      `xml:"cac:PartyName"`
	PostalAddress *ublAddress  `xml:"cac:PostalAddress,omitempty"`
	TaxScheme     *ublPartyTax `xml:"cac:PartyTaxScheme,omitempty"`
	LegalEntity   *ublLegal    `xml:"cac:PartyLegalEntity,omitempty"`
	Contact       *ublContact  `xml:"cac:Contact,omitempty"`
}

type ublName struct {
	Name string `xml:"cbc:Name"`
}

type ublAddress struct {
	StreetName string      `xml:"cbc:StreetName,omitempty"`
	CityName   string      `xml:"cbc:CityName,omitempty"`
	PostalZone string      `xml:"cbc:PostalZone,omitempty"`
	County     string      `xml:"cbc:CountrySubentity,omitempty"`
	Country    *ublCountry `xml:"cac:Country,omitempty"`
}

type ublCountry struct {
	IdentificationCode string `xml:"cbc:IdentificationCode"`
}

type ublPartyTax struct {
	CompanyID string       `xml:"cbc:CompanyID"`
	TaxScheme ublTaxScheme `xml:"cac:TaxScheme"`
}

type ublTaxScheme struct {
	ID string `xml:"cbc:ID"`
}

type ublLegal struct {
	RegistrationName string `xml:"cbc:RegistrationName"`
	CompanyID        string `xml:"cbc:CompanyID,omitempty"`
}

type ublContact struct {
	Telephone      string `xml:"cbc:Telephone,omitempty"`
	ElectronicMail string `xml:"cbc:ElectronicMail,omitempty"`
}

type ublPayMeans struct {
	PaymentMeansCode string     `xml:"cbc:PaymentMeansCode"`
	PayeeAccount     ublAccount `xml:"cac:PayeeFinancialAccount"`
}

type ublAccount struct {
	ID string `xml:"cbc:ID"`
}

type ublTaxTotal struct {
	TaxAmount ublAmount `xml:"cbc:TaxAmount"`
}

type ublMonetary struct {
	LineExtensionAmount ublAmount `xml:"cbc:LineExtensionAmount"`
	TaxExclusiveAmount  ublAmount `xml:"cbc:TaxExclusiveAmount"`
	TaxInclusiveAmount  ublAmount `xml:"cbc:TaxInclusiveAmount"`
	PayableAmount       ublAmount `xml:"cbc:PayableAmount"`
}

type ublLine struct {
	ID                  string      `xml:"cbc:ID"`
	InvoicedQuantity    ublQuantity `xml:"cbc:InvoicedQuantity"`
	LineExtensionAmount ublAmount   `xml:"cbc:LineExtensionAmount"`
	Item                ublItem     `xml:"cac:Item"`
	Price               ublPrice    `xml:"cac:Price"`
}

type ublQuantity struct {
	UnitCode string `xml:"unitCode,attr"`
	Value    string `xml:",chardata"`
}

type ublAmount struct {
	CurrencyID string `xml:"currencyID,attr"`
	Value      string `xml:",chardata"`
}

type ublItem struct {
	Name        string         `xml:"cbc:Name"`
	TaxCategory ublTaxCategory `xml:"cac:ClassifiedTaxCategory"`
}

type ublTaxCategory struct {
	ID        string       `xml:"cbc:ID"`
	Percent   string       `xml:"cbc:Percent"`
	TaxScheme ublTaxScheme `xml:"cac:TaxScheme"`
}

type ublPrice struct {
	PriceAmount ublAmount `xml:"cbc:PriceAmount"`
}

// Generate renders a deterministic CIUS-RO UBL invoice. Identical input
// yields byte-identical output: no timestamps, no generated identifiers,
// stable element ordering. It never fails on a well-formed Document Model.
func Generate(inv model.Invoice, items []model.LineItem, supplier model.CompanyProfile, client model.Party) []byte {
	currency := string(inv.Currency)

	doc := ublInvoice{
		Xmlns:                xmlnsInvoice,
		XmlnsCBC:             xmlnsCBC,
		XmlnsCAC:             xmlnsCAC,
		CustomizationID:      CustomizationID,
		ID:                   inv.Number,
		IssueDate:            formatDate(inv.IssueDate),
		DueDate:              formatDate(inv.DueDate),
		InvoiceTypeCode:      typeCode(inv.Type),
		Note:                 inv.Notes,
		DocumentCurrencyCode: currency,
		SupplierParty:        ublPartyWrap{Party: buildSupplierParty(supplier)},
		CustomerParty:        ublPartyWrap{Party: buildClientParty(client)},
		TaxTotal: ublTaxTotal{
			TaxAmount: amount(currency, inv.VATAmount),
		},
		LegalMonetaryTotal: ublMonetary{
			LineExtensionAmount: amount(currency, inv.Subtotal),
			TaxExclusiveAmount:  amount(currency, inv.Subtotal),
			TaxInclusiveAmount:  amount(currency, inv.Total),
			PayableAmount:       amount(currency, inv.Total),
		},
	}

	if supplier.BankAccount != "" {
		doc.PaymentMeans = &ublPayMeans{
			PaymentMeansCode: paymentMeansCredit,
			PayeeAccount:     ublAccount{ID: supplier.BankAccount},
		}
	}

	// Line identifiers are sequential and 1-based, independent of anything
	// in the Document Model.
	for i, item := range items {
		rate := model.NormalizeVATRate(item.VATRate)
		doc.InvoiceLines = append(doc.InvoiceLines, ublLine{
			ID:                  strconv.Itoa(i + 1),
			InvoicedQuantity:    ublQuantity{UnitCode: unitCodeDefault, Value: item.Quantity.String()},
			LineExtensionAmount: amount(currency, item.Subtotal),
			Item: ublItem{
				Name: item.Description,
				TaxCategory: ublTaxCategory{
					ID:        "S",
					Percent:   decimal.Format(rate.Mul(decimal.FromInt(100))),
					TaxScheme: ublTaxScheme{ID: "VAT"},
				},
			},
			Price: ublPrice{
				PriceAmount: amount(currency, item.UnitPrice),
			},
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		// unreachable for a static struct shape
		return []byte(xml.Header)
	}
	return append([]byte(xml.Header), append(out, '\n')...)
}

func buildSupplierParty(p model.CompanyProfile) ublParty {
	party := ublParty{
		PartyName: ublName{Name: p.Name},
	}
	if p.Address != "" || p.City != "" || p.PostalCode != "" || p.County != "" || p.Country != "" {
		addr := &ublAddress{
			StreetName: p.Address,
			CityName:   p.City,
			PostalZone: p.PostalCode,
			County:     p.County,
		}
		if p.Country != "" {
			addr.Country = &ublCountry{IdentificationCode: p.Country}
		}
		party.PostalAddress = addr
	}
	if p.TaxID != "" {
		party.TaxScheme = &ublPartyTax{CompanyID: p.TaxID, TaxScheme: ublTaxScheme{ID: "VAT"}}
	}
	if p.RegistrationNumber != "" {
		party.LegalEntity = &ublLegal{RegistrationName: p.Name, CompanyID: p.RegistrationNumber}
	}
	if p.Email != "" || p.Phone != "" {
		party.Contact = &ublContact{Telephone: p.Phone, ElectronicMail: p.Email}
	}
	return party
}

func buildClientParty(p model.Party) ublParty {
	party := ublParty{
		PartyName: ublName{Name: p.Name},
	}
	if p.Address != "" {
		party.PostalAddress = &ublAddress{StreetName: p.Address}
	}
	if p.TaxID != "" {
		party.TaxScheme = &ublPartyTax{CompanyID: p.TaxID, TaxScheme: ublTaxScheme{ID: "VAT"}}
	}
	if p.RegistrationNumber != "" {
		party.LegalEntity = &ublLegal{RegistrationName: p.Name, CompanyID: p.RegistrationNumber}
	}
	if p.Email != "" || p.Phone != "" {
		party.Contact = &ublContact{Telephone: p.Phone, ElectronicMail: p.Email}
	}
	return party
}

func typeCode(t model.InvoiceType) string {
	if t == model.InvoiceTypeProforma {
		return typeCodeProforma
	}
	return typeCodeCommercial
}

func formatDate(d model.Date) string {
	return d.String()
}

func amount(currency string, d dec.Decimal) ublAmount {
	return ublAmount{CurrencyID: currency, Value: decimal.Format(d)}
}

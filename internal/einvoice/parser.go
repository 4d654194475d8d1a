package einvoice

import (
	"bytes"
	"encoding/xml"

	dec "github.com/shopspring/decimal"

	"github.com/facturino/tax-engine/internal/decimal"
	"github.com/facturino/tax-engine/internal/model"
)

// GeneratedInvoice is the field set extracted back out of a generated UBL
// document. It is a targeted extraction for inspection and round-trip tests,
// not a schema-validating parse.
type GeneratedInvoice struct {
	Number      string
	IssueDate   string
	DueDate     string
	TypeCode    string
	Currency    string
	Note        string
	Supplier    PartySummary
	Customer    PartySummary
	BankAccount string
	TaxAmount   dec.Decimal
	Payable     dec.Decimal
	Lines       []GeneratedLine
}

// PartySummary holds the party fields the extractor pulls out
type PartySummary struct {
	Name  string
	TaxID string
	Email string
}

// GeneratedLine is one extracted invoice line
type GeneratedLine struct {
	ID          string
	Description string
	Quantity    dec.Decimal
	UnitPrice   dec.Decimal
	Subtotal    dec.Decimal
}

// Read-side structures match by local name only, so prefixed and unprefixed
// documents both parse.
type parsedInvoice struct {
	XMLName              xml.Name        `xml:"Invoice"`
	ID                   string          `xml:"ID"`
	IssueDate            string          `xml:"IssueDate"`
	DueDate              string          `xml:"DueDate"`
	InvoiceTypeCode      string          `xml:"InvoiceTypeCode"`
	Note                 string          `xml:"Note"`
	DocumentCurrencyCode string          `xml:"DocumentCurrencyCode"`
	SupplierParty        parsedPartyWrap `xml:"AccountingSupplierParty"`
	CustomerParty        parsedPartyWrap `xml:"AccountingCustomerParty"`
	PaymentMeans         *parsedPayMeans `xml:"PaymentMeans"`
	TaxTotal             parsedTaxTotal  `xml:"TaxTotal"`
	LegalMonetaryTotal   parsedMonetary  `xml:"LegalMonetaryTotal"`
	InvoiceLines         []parsedLine    `xml:"InvoiceLine"`
}

type parsedPartyWrap struct {
	Party parsedParty `xml:"Party"`
}

type parsedParty struct {
	PartyName struct {
		Name string `xml:"Name"`
	} `xml:"PartyName"`
	TaxScheme struct {
		CompanyID string `xml:"CompanyID"`
	} `xml:"PartyTaxScheme"`
	Contact struct {
		ElectronicMail string `xml:"ElectronicMail"`
	} `xml:"Contact"`
}

type parsedPayMeans struct {
	PayeeAccount struct {
		ID string `xml:"ID"`
	} `xml:"PayeeFinancialAccount"`
}

type parsedTaxTotal struct {
	TaxAmount string `xml:"TaxAmount"`
}

type parsedMonetary struct {
	PayableAmount string `xml:"PayableAmount"`
}

type parsedLine struct {
	ID                  string `xml:"ID"`
	InvoicedQuantity    string `xml:"InvoicedQuantity"`
	LineExtensionAmount string `xml:"LineExtensionAmount"`
	Item                struct {
		Name string `xml:"Name"`
	} `xml:"Item"`
	Price struct {
		PriceAmount string `xml:"PriceAmount"`
	} `xml:"Price"`
}

// ParseGenerated extracts the field set from a UBL invoice document.
// Malformed or empty input returns a *model.ParseError, never a panic.
func ParseGenerated(content []byte) (*GeneratedInvoice, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, model.NewParseError(model.DocumentEInvoice, "content", "empty input", nil)
	}

	var doc parsedInvoice
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, model.NewParseError(model.DocumentEInvoice, "xml", "malformed XML", err)
	}

	result := &GeneratedInvoice{
		Number:    doc.ID,
		IssueDate: doc.IssueDate,
		DueDate:   doc.DueDate,
		TypeCode:  doc.InvoiceTypeCode,
		Currency:  doc.DocumentCurrencyCode,
		Note:      doc.Note,
		Supplier: PartySummary{
			Name:  doc.SupplierParty.Party.PartyName.Name,
			TaxID: doc.SupplierParty.Party.TaxScheme.CompanyID,
			Email: doc.SupplierParty.Party.Contact.ElectronicMail,
		},
		Customer: PartySummary{
			Name:  doc.CustomerParty.Party.PartyName.Name,
			TaxID: doc.CustomerParty.Party.TaxScheme.CompanyID,
			Email: doc.CustomerParty.Party.Contact.ElectronicMail,
		},
		TaxAmount: decimal.FromStringOrZero(doc.TaxTotal.TaxAmount),
		Payable:   decimal.FromStringOrZero(doc.LegalMonetaryTotal.PayableAmount),
	}

	if doc.PaymentMeans != nil {
		result.BankAccount = doc.PaymentMeans.PayeeAccount.ID
	}

	for _, line := range doc.InvoiceLines {
		result.Lines = append(result.Lines, GeneratedLine{
			ID:          line.ID,
			Description: line.Item.Name,
			Quantity:    decimal.FromStringOrZero(line.InvoicedQuantity),
			UnitPrice:   decimal.FromStringOrZero(line.Price.PriceAmount),
			Subtotal:    decimal.FromStringOrZero(line.LineExtensionAmount),
		})
	}

	return result, nil
}

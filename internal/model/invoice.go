package model

import (
	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code accepted by the engine
type Currency string

const (
	CurrencyRON Currency = "RON"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether the currency is one the engine accepts.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyRON, CurrencyEUR, CurrencyUSD:
		return true
	default:
		return false
	}
}

// InvoiceType distinguishes commercial invoices from proforma documents
type InvoiceType string

const (
	InvoiceTypeNormal   InvoiceType = "normal"
	InvoiceTypeProforma InvoiceType = "proforma"
)

// ApprovalState is the caller-side workflow state of an invoice
type ApprovalState string

const (
	ApprovalStateApproved    ApprovalState = "approved"
	ApprovalStateNotApproved ApprovalState = "not-approved"
)

// Invoice is the header of a document to be generated or gated.
// Instances are owned by the caller; the engine only reads them.
type Invoice struct {
	Number        string          `json:"number"`
	IssueDate     Date            `json:"issueDate"`
	DueDate       Date            `json:"dueDate"`
	Currency      Currency        `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes,omitempty"`
	Type          InvoiceType     `json:"type"`
	ApprovalState ApprovalState   `json:"approvalState"`
}

// LineItem is a single invoice line. Amounts are authoritative caller input:
// the engine flags mismatches against the derivable values but never corrects
// them.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	VATAmount   decimal.Decimal `json:"vatAmount"`
	Total       decimal.Decimal `json:"total"`
}

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// NormalizeVATRate maps a VAT rate to the internal fraction convention.
// Call sites supply either a fraction (0.19) or a percent (19); anything
// above 1 is treated as percent and divided by 100 exactly once.
func NormalizeVATRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(one) {
		return rate.Div(hundred)
	}
	return rate
}

// Normalize converts the line's VAT rate to the internal fraction convention.
// Must run once at ingestion, before any rule or codec sees the line.
func (li *LineItem) Normalize() {
	li.VATRate = NormalizeVATRate(li.VATRate)
}

// Derive fills subtotal, VAT amount and total from quantity, unit price and
// VAT rate. Intended for callers that only track the primary fields; callers
// with their own amounts skip it.
func (li *LineItem) Derive() {
	li.Subtotal = li.Quantity.Mul(li.UnitPrice).Round(2)
	li.VATAmount = li.Subtotal.Mul(li.VATRate).Round(2)
	li.Total = li.Subtotal.Add(li.VATAmount)
}

// Party identifies one side of an invoice, supplier or client.
type Party struct {
	Name               string `json:"name"`
	TaxID              string `json:"taxId"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Address            string `json:"address,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
}

// CompanyProfile is the issuing company. The extra address fields are
// required by the SAF-T rule battery, not by e-invoice generation.
type CompanyProfile struct {
	Party
	BankAccount string `json:"bankAccount,omitempty"`
	City        string `json:"city,omitempty"`
	County      string `json:"county,omitempty"`
	Country     string `json:"country,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
}

// ValidTaxID checks a Romanian CUI/CIF: optional RO prefix, 2 to 10 digits.
func ValidTaxID(taxID string) bool {
	digits := taxID
	if len(digits) >= 2 && (digits[:2] == "RO" || digits[:2] == "ro") {
		digits = digits[2:]
	}
	if len(digits) < 2 || len(digits) > 10 {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

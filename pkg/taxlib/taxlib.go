// Package taxlib is the public API of the tax-compliance document engine.
//
// It exposes e-invoice (e-Factura, CIUS-RO) generation, the pre-submission
// readiness gate, and SAF-T D406 validation. Every operation is a pure,
// stateless function safe for concurrent use; the engine holds no state
// between calls.
//
// Example usage:
//
//	rep := taxlib.CheckSubmissionReady(profile, client, invoice, items)
//	if rep.HasFailures() {
//	    // show rep.Results to the user; do not generate
//	}
//	xmlBytes := taxlib.Generate(invoice, items, profile, client)
package taxlib

import (
	"github.com/facturino/tax-engine/internal/einvoice"
	"github.com/facturino/tax-engine/internal/model"
	"github.com/facturino/tax-engine/internal/report"
	"github.com/facturino/tax-engine/internal/saft"
)

// Re-export core types for public API
type (
	Invoice        = model.Invoice
	LineItem       = model.LineItem
	Party          = model.Party
	CompanyProfile = model.CompanyProfile
	Document       = model.Document
	Date           = model.Date
	Currency       = model.Currency
	InvoiceType    = model.InvoiceType
	ApprovalState  = model.ApprovalState
)

// Re-export currencies
const (
	CurrencyRON = model.CurrencyRON
	CurrencyEUR = model.CurrencyEUR
	CurrencyUSD = model.CurrencyUSD
)

// Re-export invoice types
const (
	InvoiceTypeNormal   = model.InvoiceTypeNormal
	InvoiceTypeProforma = model.InvoiceTypeProforma
)

// Re-export approval states
const (
	ApprovalStateApproved    = model.ApprovalStateApproved
	ApprovalStateNotApproved = model.ApprovalStateNotApproved
)

// Re-export report types
type (
	ValidationReport = report.ValidationReport
	TestResult       = report.TestResult
	Status           = report.Status
)

// Re-export statuses
const (
	StatusPass    = report.StatusPass
	StatusFail    = report.StatusFail
	StatusWarning = report.StatusWarning
)

// Re-export error types
type ParseError = model.ParseError

// SAFTTestCount is the fixed size of the SAF-T D406 rule battery
const SAFTTestCount = saft.TestCount

// Generate renders a deterministic CIUS-RO UBL e-invoice. It never fails on
// a well-formed Document Model; run CheckSubmissionReady first to catch
// missing business data.
func Generate(inv Invoice, items []LineItem, supplier CompanyProfile, client Party) []byte {
	return einvoice.Generate(inv, items, supplier, client)
}

// CheckSubmissionReady runs the e-invoice readiness gate. Every unmet
// precondition is a Fail; callers must treat any Fail as blocking.
func CheckSubmissionReady(profile CompanyProfile, client Party, inv Invoice, items []LineItem) ValidationReport {
	return einvoice.CheckSubmissionReady(profile, client, inv, items)
}

// ValidateSAFT parses a SAF-T D406 export and runs the 33-rule consistency
// battery. Structurally unreadable input returns a *ParseError; semantic
// problems surface as Fail/Warning results, never as errors.
func ValidateSAFT(content []byte) (ValidationReport, error) {
	return saft.ValidateBytes(content)
}

// NormalizeVATRate maps a VAT rate given as percent or fraction onto the
// engine's internal fraction convention.
var NormalizeVATRate = model.NormalizeVATRate

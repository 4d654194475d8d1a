package einvoice

import (
	"fmt"
	"strings"

	"github.com/facturino/tax-engine/internal/decimal"
	"github.com/facturino/tax-engine/internal/model"
	"github.com/facturino/tax-engine/internal/report"
)

// gateInput is the borrowed view of the Document Model a check runs against.
type gateInput struct {
	Profile model.CompanyProfile
	Client  model.Party
	Invoice model.Invoice
	Items   []model.LineItem
}

// gateCheck is one numbered precondition. The gate knows no Warning level:
// every unmet precondition is a Fail and the caller must treat any Fail as
// blocking generation and submission.
type gateCheck struct {
	number int
	name   string
	fn     func(*gateInput) report.Outcome
}

// gateChecks is the fixed, ordered e-invoice readiness battery. Numbers are
// stable and never reused; new checks append at the end.
var gateChecks = []gateCheck{
	{1, "issuer tax ID", func(in *gateInput) report.Outcome {
		if strings.TrimSpace(in.Profile.TaxID) == "" {
			return report.Fail("issuer tax ID (CUI) is missing")
		}
		return report.Pass("issuer tax ID present")
	}},
	{2, "issuer address", func(in *gateInput) report.Outcome {
		if strings.TrimSpace(in.Profile.Address) == "" {
			return report.Fail("issuer address is missing")
		}
		return report.Pass("issuer address present")
	}},
	{3, "issuer email", func(in *gateInput) report.Outcome {
		if strings.TrimSpace(in.Profile.Email) == "" {
			return report.Fail("issuer email is missing")
		}
		return report.Pass("issuer email present")
	}},
	{4, "client name", func(in *gateInput) report.Outcome {
		if strings.TrimSpace(in.Client.Name) == "" {
			return report.Fail("client name is missing")
		}
		return report.Pass("client name present")
	}},
	{5, "client tax ID", func(in *gateInput) report.Outcome {
		if strings.TrimSpace(in.Client.TaxID) == "" {
			return report.Fail("client tax ID (CUI) is missing")
		}
		return report.Pass("client tax ID present")
	}},
	{6, "client address", func(in *gateInput) report.Outcome {
		if strings.TrimSpace(in.Client.Address) == "" {
			return report.Fail("client address is missing")
		}
		return report.Pass("client address present")
	}},
	{7, "invoice number", func(in *gateInput) report.Outcome {
		if strings.TrimSpace(in.Invoice.Number) == "" {
			return report.Fail("invoice number is missing")
		}
		return report.Pass("invoice number present")
	}},
	{8, "issue date", func(in *gateInput) report.Outcome {
		if in.Invoice.IssueDate.IsZero() {
			return report.Fail("invoice issue date is missing")
		}
		return report.Pass("issue date present")
	}},
	{9, "due date", func(in *gateInput) report.Outcome {
		if in.Invoice.DueDate.IsZero() {
			return report.Fail("invoice due date is missing")
		}
		return report.Pass("due date present")
	}},
	{10, "line items present", func(in *gateInput) report.Outcome {
		if len(in.Items) == 0 {
			return report.Fail("invoice has no line items")
		}
		return report.Pass(fmt.Sprintf("%d line item(s)", len(in.Items)))
	}},
	{11, "line descriptions", func(in *gateInput) report.Outcome {
		var bad []string
		for i, item := range in.Items {
			if strings.TrimSpace(item.Description) == "" {
				bad = append(bad, fmt.Sprintf("line %d", i+1))
			}
		}
		if len(bad) > 0 {
			return report.FailDetails("line items with empty description", strings.Join(bad, ", "))
		}
		return report.Pass("all line descriptions present")
	}},
	{12, "line quantities", func(in *gateInput) report.Outcome {
		var bad []string
		for i, item := range in.Items {
			if !decimal.IsPositive(item.Quantity) {
				bad = append(bad, fmt.Sprintf("line %d: %s", i+1, item.Quantity.String()))
			}
		}
		if len(bad) > 0 {
			return report.FailDetails("line items with non-positive quantity", strings.Join(bad, ", "))
		}
		return report.Pass("all line quantities positive")
	}},
	{13, "line unit prices", func(in *gateInput) report.Outcome {
		var bad []string
		for i, item := range in.Items {
			if !decimal.IsPositive(item.UnitPrice) {
				bad = append(bad, fmt.Sprintf("line %d: %s", i+1, item.UnitPrice.String()))
			}
		}
		if len(bad) > 0 {
			return report.FailDetails("line items with non-positive unit price", strings.Join(bad, ", "))
		}
		return report.Pass("all line unit prices positive")
	}},
	{14, "invoice totals", func(in *gateInput) report.Outcome {
		expected := in.Invoice.Subtotal.Add(in.Invoice.VATAmount)
		if !decimal.WithinTolerance(expected, in.Invoice.Total) {
			return report.FailDetails("invoice total does not equal subtotal plus VAT",
				fmt.Sprintf("subtotal %s + VAT %s = %s, declared total %s",
					in.Invoice.Subtotal, in.Invoice.VATAmount, expected, in.Invoice.Total))
		}
		return report.Pass("invoice totals consistent")
	}},
	{15, "line amounts", func(in *gateInput) report.Outcome {
		var bad []string
		for i, item := range in.Items {
			rate := model.NormalizeVATRate(item.VATRate)
			subtotal := item.Quantity.Mul(item.UnitPrice).Round(2)
			vat := subtotal.Mul(rate).Round(2)
			total := subtotal.Add(vat)
			if !decimal.WithinTolerance(subtotal, item.Subtotal) ||
				!decimal.WithinTolerance(vat, item.VATAmount) ||
				!decimal.WithinTolerance(total, item.Total) {
				bad = append(bad, fmt.Sprintf("line %d", i+1))
			}
		}
		if len(bad) > 0 {
			return report.FailDetails("line amounts do not match quantity, price and VAT rate",
				strings.Join(bad, ", "))
		}
		return report.Pass("all line amounts consistent")
	}},
	{16, "approval state", func(in *gateInput) report.Outcome {
		// Callers that track no approval workflow leave the state empty;
		// only an explicit not-approved blocks submission.
		if in.Invoice.ApprovalState == model.ApprovalStateNotApproved {
			return report.Fail("invoice is not approved for submission")
		}
		return report.Pass("invoice approval not withheld")
	}},
}

// GateTestCount is the size of the readiness battery
const GateTestCount = 16

// CheckSubmissionReady runs the e-invoice readiness battery against a
// Document Model. Pure and stateless: it only reports; enforcing the block
// on Fail is the caller's convention.
func CheckSubmissionReady(profile model.CompanyProfile, client model.Party, inv model.Invoice, items []model.LineItem) report.ValidationReport {
	in := &gateInput{Profile: profile, Client: client, Invoice: inv, Items: items}

	b := report.NewBuilder(len(gateChecks))
	for _, check := range gateChecks {
		b.Add(check.number, check.name, check.fn(in))
	}
	return b.Report()
}

// GateChecks lists the readiness battery, for the CLI rules listing.
func GateChecks() []report.CheckInfo {
	out := make([]report.CheckInfo, 0, len(gateChecks))
	for _, c := range gateChecks {
		out = append(out, report.CheckInfo{Number: c.number, Name: c.name})
	}
	return out
}

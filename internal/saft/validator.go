package saft

import (
	"github.com/facturino/tax-engine/internal/report"
)

// TestCount is the size of the D406 battery: Series I (structural and
// consistency) plus Series II (general-ledger consistency). Every validation
// run produces exactly this many results.
const TestCount = 33

const (
	// SeriesStructural labels Series I rules
	SeriesStructural = "I"
	// SeriesLedger labels Series II rules
	SeriesLedger = "II"
)

// rule is one numbered check. Rules are independent: none may skip or
// short-circuit another, and each contributes exactly one result.
type rule struct {
	number int
	name   string
	fn     func(*FieldSet) report.Outcome
}

// battery returns the full ordered rule set
func battery() []rule {
	rules := make([]rule, 0, TestCount)
	rules = append(rules, structuralRules...)
	rules = append(rules, ledgerRules...)
	return rules
}

// Validate runs the full D406 battery against an extracted field set. Pure
// and total: a fresh report per call, all rules run unconditionally, results
// ordered by test number. A non-zero failure count is advisory for the
// caller; the engine itself blocks nothing.
func Validate(fs *FieldSet) report.ValidationReport {
	b := report.NewBuilder(TestCount)
	for _, r := range battery() {
		b.Add(r.number, r.name, r.fn(fs))
	}
	return b.Report()
}

// ValidateBytes parses and validates in one step. Parse errors are returned
// as errors, never folded into a partial report.
func ValidateBytes(content []byte) (report.ValidationReport, error) {
	fs, err := Parse(content)
	if err != nil {
		return report.ValidationReport{}, err
	}
	return Validate(fs), nil
}

// Rules lists the battery as number/name/series, for the CLI rules listing.
func Rules() []report.CheckInfo {
	out := make([]report.CheckInfo, 0, TestCount)
	for _, r := range battery() {
		series := SeriesStructural
		if r.number > len(structuralRules) {
			series = SeriesLedger
		}
		out = append(out, report.CheckInfo{Number: r.number, Name: r.name, Series: series})
	}
	return out
}

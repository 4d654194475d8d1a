// Package report holds the validation report shape shared by the SAF-T rule
// battery and the e-invoice pre-submission gate. Field names are an external
// contract consumed by UI rendering, CLI exit-code mapping and automated
// gating; they must stay stable across versions.
package report

// Status is the verdict of a single check
type Status string

const (
	// StatusPass means the check found nothing wrong
	StatusPass Status = "pass"
	// StatusFail means a hard structural or arithmetic invariant is violated
	// and the document cannot be safely submitted
	StatusFail Status = "fail"
	// StatusWarning means a soft expectation is unmet but the document is
	// still structurally submittable
	StatusWarning Status = "warning"
)

// TestResult is the outcome of one numbered check. Test numbers are stable
// and 1-based; retired checks keep their number, new checks append.
type TestResult struct {
	TestNumber int    `json:"testNumber"`
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// ValidationReport aggregates the ordered results of a full rule battery run.
// Invariants: TotalTests == len(Results), Passed+Failed+Warnings == TotalTests,
// Results ordered by TestNumber ascending with no gaps or duplicates.
type ValidationReport struct {
	TotalTests int          `json:"totalTests"`
	Passed     int          `json:"passed"`
	Failed     int          `json:"failed"`
	Warnings   int          `json:"warnings"`
	Results    []TestResult `json:"results"`
}

// HasFailures reports whether any check failed hard.
func (r *ValidationReport) HasFailures() bool {
	return r.Failed > 0
}

// Outcome is what a rule body returns; the registry attaches number and name.
type Outcome struct {
	Status  Status
	Message string
	Details string
}

// Pass builds a passing outcome
func Pass(message string) Outcome {
	return Outcome{Status: StatusPass, Message: message}
}

// Fail builds a failing outcome
func Fail(message string) Outcome {
	return Outcome{Status: StatusFail, Message: message}
}

// FailDetails builds a failing outcome with supporting detail
func FailDetails(message, details string) Outcome {
	return Outcome{Status: StatusFail, Message: message, Details: details}
}

// Warn builds a warning outcome
func Warn(message string) Outcome {
	return Outcome{Status: StatusWarning, Message: message}
}

// WarnDetails builds a warning outcome with supporting detail
func WarnDetails(message, details string) Outcome {
	return Outcome{Status: StatusWarning, Message: message, Details: details}
}

// CheckInfo describes one registered check, for listings.
type CheckInfo struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Series string `json:"series,omitempty"`
}

// Builder accumulates results in rule order. A fresh builder is created per
// validation call; there is no state between calls.
type Builder struct {
	results []TestResult
}

// NewBuilder creates a builder sized for a battery of n checks
func NewBuilder(n int) *Builder {
	return &Builder{results: make([]TestResult, 0, n)}
}

// Add appends the outcome of one numbered check
func (b *Builder) Add(number int, name string, out Outcome) {
	b.results = append(b.results, TestResult{
		TestNumber: number,
		Name:       name,
		Status:     out.Status,
		Message:    out.Message,
		Details:    out.Details,
	})
}

// Report finalizes the counts and returns the report
func (b *Builder) Report() ValidationReport {
	r := ValidationReport{
		TotalTests: len(b.results),
		Results:    b.results,
	}
	for _, res := range b.results {
		switch res.Status {
		case StatusFail:
			r.Failed++
		case StatusWarning:
			r.Warnings++
		default:
			r.Passed++
		}
	}
	return r
}

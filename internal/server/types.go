package server

import (
	"github.com/facturino/tax-engine/internal/report"
)

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GenerateBlockedResponse is returned when the pre-submission gate blocks
// generation; the report carries the failing checks.
type GenerateBlockedResponse struct {
	Error  string                  `json:"error"`
	Report report.ValidationReport `json:"report"`
}

// RulesResponse lists the registered rule batteries
type RulesResponse struct {
	SAFT []report.CheckInfo `json:"saft"`
	Gate []report.CheckInfo `json:"gate"`
}

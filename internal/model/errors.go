package model

import "fmt"

// DocumentKind identifies which codec produced an error
type DocumentKind string

const (
	DocumentSAFT     DocumentKind = "saft"
	DocumentEInvoice DocumentKind = "e-invoice"
)

// ParseError reports structurally unreadable input XML. Semantic
// non-compliance is never a ParseError: it surfaces as report entries.
type ParseError struct {
	Document DocumentKind
	Field    string
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Document, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Document, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(doc DocumentKind, field, message string, cause error) *ParseError {
	return &ParseError{
		Document: doc,
		Field:    field,
		Message:  message,
		Cause:    cause,
	}
}

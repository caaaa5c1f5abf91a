package common

import "fmt"

// ExtractionError reports a required statement field that could not be found.
type ExtractionError struct {
	Field  string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s: %s", e.Field, e.Reason)
}

func NewExtractionError(field, reason string) *ExtractionError {
	return &ExtractionError{Field: field, Reason: reason}
}

package core

import (
	"errors"
	"fmt"
)

// Error kinds shared by the normalizer, the preprocessing pipeline and the inference engine.
var (
	// ErrParseFailure is recorded when a numeric or area value cannot be parsed.
	// The normalizer turns it into Missing; it is never returned to callers of Normalize.
	ErrParseFailure = errors.New("parse failure")

	// ErrSchemaViolation reports a categorical value outside its closed vocabulary.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrIncompleteInput reports required fields that are absent or unparseable at inference time.
	ErrIncompleteInput = errors.New("incomplete input")

	// ErrFitPrecondition reports training data that cannot be fitted, e.g. a column with no valid values.
	ErrFitPrecondition = errors.New("fit precondition")
)

// FieldError attaches the offending field (and value, when there is one) to an error kind.
type FieldError struct {
	Kind  error
	Field string
	Value any
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%v: field %q", e.Kind, e.Field)
	}
	return fmt.Sprintf("%v: field %q: value %v", e.Kind, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Kind }

// NewFieldError returns a FieldError of the given kind.
func NewFieldError(kind error, field string, value any) *FieldError {
	return &FieldError{Kind: kind, Field: field, Value: value}
}

// Lifecycle and shape errors returned by fitted transforms and models.
var (
	ErrNotFitted         = errors.New("not fitted")
	ErrAlreadyFitted     = errors.New("already fitted")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

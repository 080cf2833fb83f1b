package xmlgen

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDocument is returned when there is nothing to generate.
	ErrNilDocument = errors.New("xmlgen: document is required")
	// ErrMissingSection marks a mandatory section that is absent.
	ErrMissingSection = errors.New("mandatory section missing")
	// ErrInvalidDate marks a value that does not follow DD/MM/YYYY_HH:MM:SS.
	ErrInvalidDate = errors.New("invalid date/time")
	// ErrInvalidMonthYear marks a value that does not follow MM/YYYY.
	ErrInvalidMonthYear = errors.New("invalid month/year")
)

// GenerationError reports a value the generator refuses to encode.
type GenerationError struct {
	Section string
	Field   string
	Value   string
	Err     error
}

func (e *GenerationError) Error() string {
	where := e.Section
	if e.Field != "" {
		where += "." + e.Field
	}
	if e.Value != "" {
		return fmt.Sprintf("xmlgen: %s: %v: %q", where, e.Err, e.Value)
	}
	return fmt.Sprintf("xmlgen: %s: %v", where, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

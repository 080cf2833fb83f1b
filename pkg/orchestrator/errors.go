package orchestrator

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-offergen/pkg/validation"
)

var (
	// ErrSelfCheck marks output rejected by the structural validator.
	ErrSelfCheck = errors.New("orchestrator: generated document failed self-check")
	// ErrNilDocument is returned when a request carries no document.
	ErrNilDocument = errors.New("orchestrator: document is required")
)

// InvalidDocumentError carries the findings of a failed validation run.
type InvalidDocumentError struct {
	Result validation.Result
}

func (e *InvalidDocumentError) Error() string {
	errs := e.Result.Errors()
	if len(errs) == 0 {
		return "orchestrator: document is invalid"
	}
	if len(errs) == 1 {
		return fmt.Sprintf("orchestrator: document is invalid: %s", errs[0].Error())
	}
	return fmt.Sprintf("orchestrator: document is invalid: %s (and %d more)", errs[0].Error(), len(errs)-1)
}

// SelfCheckError reports generated output that the structural validator
// rejected. It matches ErrSelfCheck with errors.Is.
type SelfCheckError struct {
	FileName string
	Result   validation.Result
}

func (e *SelfCheckError) Error() string {
	msg := ErrSelfCheck.Error()
	if e.FileName != "" {
		msg += " (" + e.FileName + ")"
	}
	if errs := e.Result.Errors(); len(errs) > 0 {
		msg += ": " + errs[0].Error()
	}
	return msg
}

func (e *SelfCheckError) Unwrap() error {
	return ErrSelfCheck
}

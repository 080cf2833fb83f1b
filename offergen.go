// Package offergen validates Italian energy offers and produces the XML
// submission expected by the Portale Offerte, together with its canonical
// file name. The root package is a thin facade over pkg/orchestrator.
package offergen

import (
	"context"
	"sync"

	"github.com/goliatone/go-offergen/pkg/filename"
	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/orchestrator"
	"github.com/goliatone/go-offergen/pkg/validation"
	"github.com/goliatone/go-offergen/pkg/xmlcheck"
)

// Document is the offer aggregate; alias exported via the root package for
// convenience.
type Document = offer.Document

// Action selects insert or update submissions.
type Action = offer.Action

// Result is the outcome of a validation run.
type Result = validation.Result

// Request and Output describe one generation.
type (
	Request = orchestrator.Request
	Output  = orchestrator.Output
)

// Submission actions.
const (
	ActionInsert = offer.ActionInsert
	ActionUpdate = offer.ActionUpdate
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

var (
	defaultOnce sync.Once
	defaultOrch *orchestrator.Orchestrator
)

// DefaultOrchestrator returns the orchestrator shared by the package level
// helpers when they are called without options. It is built on first use.
func DefaultOrchestrator() *orchestrator.Orchestrator {
	defaultOnce.Do(func() {
		defaultOrch = orchestrator.New()
	})
	return defaultOrch
}

func orchestratorFor(options []orchestrator.Option) *orchestrator.Orchestrator {
	if len(options) == 0 {
		return DefaultOrchestrator()
	}
	return orchestrator.New(options...)
}

// Validate runs every structural and business rule against doc.
func Validate(ctx context.Context, doc *Document, action Action, options ...orchestrator.Option) (Result, error) {
	return orchestratorFor(options).Validate(ctx, doc, action)
}

// Generate validates doc and returns its XML and file name. It is the simplest
// entry point for callers that just want the submission bytes.
func Generate(ctx context.Context, doc *Document, action Action, options ...orchestrator.Option) (Output, error) {
	return orchestratorFor(options).Generate(ctx, Request{Document: doc, Action: action})
}

// FileName derives {identity}_{action}_{description}.XML.
func FileName(identityCode string, action Action, description string) (string, error) {
	token, err := filename.ActionFor(action)
	if err != nil {
		return "", err
	}
	return filename.Generate(filename.Parts{IdentityCode: identityCode, Action: token, Description: description})
}

// Check re-validates an encoded Offerta document.
func Check(data []byte) Result {
	return xmlcheck.Validate(data)
}

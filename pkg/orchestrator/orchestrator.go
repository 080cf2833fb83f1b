package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-offergen/pkg/filename"
	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/runner"
	"github.com/goliatone/go-offergen/pkg/validation"
	"github.com/goliatone/go-offergen/pkg/xmlcheck"
	"github.com/goliatone/go-offergen/pkg/xmlgen"
)

// Orchestrator coordinates validation, generation, naming and the output
// self-check. New applies the built-in runner and structural validator so
// callers can start with a single constructor call.
type Orchestrator struct {
	runner           *runner.Runner
	generatorOptions []xmlgen.Option
	selfCheck        bool
	checker          Checker
	transformers     []Transformer
	logger           *slog.Logger
	now              func() time.Time
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{selfCheck: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.runner == nil {
		o.runner = runner.New(runner.WithLogger(o.logger))
	}
	if o.checker == nil {
		o.checker = xmlcheck.Validate
	}
	if o.now == nil {
		o.now = time.Now
	}
}

// Runner exposes the validation runner for incremental section checks.
func (o *Orchestrator) Runner() *runner.Runner {
	return o.runner
}

// Request describes one document to turn into an output file.
type Request struct {
	Document *offer.Document
	// Action defaults to offer.ActionInsert.
	Action offer.Action
	// Description feeds the file name. Empty uses the offer name.
	Description string
	// Unique appends a time based disambiguator to the file name.
	Unique bool
	// Key names the request in batch failures that happen before a file
	// name exists. Empty falls back to the request position, e.g. "#2".
	Key string
}

// Output is the result of a successful Generate call. Result is populated
// even when validation fails.
type Output struct {
	FileName string
	XML      []byte
	Result   validation.Result
}

// Validate applies the transformers and runs the rule engine only.
func (o *Orchestrator) Validate(ctx context.Context, doc *offer.Document, action offer.Action) (validation.Result, error) {
	_, result, err := o.validate(ctx, doc, action)
	return result, err
}

func (o *Orchestrator) validate(ctx context.Context, doc *offer.Document, action offer.Action) (*offer.Document, validation.Result, error) {
	if ctx == nil {
		return nil, validation.Result{}, errors.New("orchestrator: context is required")
	}
	if doc == nil {
		return nil, validation.Result{}, ErrNilDocument
	}
	if action == "" {
		action = offer.ActionInsert
	}
	doc, err := o.transform(ctx, doc)
	if err != nil {
		return nil, validation.Result{}, err
	}
	result, err := o.runner.Run(ctx, doc, action)
	if err != nil {
		return nil, validation.Result{}, fmt.Errorf("orchestrator: validate: %w", err)
	}
	return doc, result, nil
}

// Generate validates the document, encodes it, derives its file name and,
// unless disabled, re-checks the encoded bytes. An invalid document yields
// *InvalidDocumentError; rejected output yields *SelfCheckError.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Output, error) {
	doc, result, err := o.validate(ctx, req.Document, req.Action)
	if err != nil {
		return Output{}, err
	}
	out := Output{Result: result}
	if !result.Valid() {
		return out, &InvalidDocumentError{Result: result}
	}

	req.Document = doc
	name, err := o.FileName(req)
	if err != nil {
		return out, err
	}
	out.FileName = name

	var buf bytes.Buffer
	if err := xmlgen.GenerateTo(&buf, doc, o.generatorOptions...); err != nil {
		return out, fmt.Errorf("orchestrator: generate: %w", err)
	}
	out.XML = buf.Bytes()

	if o.selfCheck {
		if check := o.checker(out.XML); !check.Valid() {
			return out, &SelfCheckError{FileName: name, Result: check}
		}
	}
	return out, nil
}

// FileName derives the output name for req without generating the document.
func (o *Orchestrator) FileName(req Request) (string, error) {
	if req.Document == nil {
		return "", ErrNilDocument
	}
	action := req.Action
	if action == "" {
		action = offer.ActionInsert
	}
	token, err := filename.ActionFor(action)
	if err != nil {
		return "", fmt.Errorf("orchestrator: file name: %w", err)
	}

	parts := filename.Parts{Action: token, Description: req.Description}
	if id := req.Document.Identification; id != nil {
		parts.IdentityCode = id.IdentityCode
	}
	if parts.Description == "" && req.Document.OfferDetails != nil {
		parts.Description = req.Document.OfferDetails.Name
	}

	if req.Unique {
		return filename.GenerateUnique(parts, o.now())
	}
	return filename.Generate(parts)
}

// GenerateBatch runs every request through Generate and emits the output to
// sink keyed by file name. Failures are recorded and the batch continues;
// cancellation stops it before the next request.
func (o *Orchestrator) GenerateBatch(ctx context.Context, requests iter.Seq[Request], sink xmlgen.Sink) xmlgen.BatchReport {
	report := xmlgen.BatchReport{RunID: uuid.NewString()}
	if sink == nil {
		report.Err = errors.New("orchestrator: batch sink is required")
		return report
	}
	if ctx == nil {
		ctx = context.Background()
	}

	index := 0
	for req := range requests {
		if err := ctx.Err(); err != nil {
			report.Err = err
			break
		}
		key := req.Key
		if key == "" {
			key = fmt.Sprintf("#%d", index)
		}
		index++

		out, err := o.Generate(ctx, req)
		if out.FileName != "" {
			key = out.FileName
		}
		if err == nil {
			err = sink.Emit(ctx, out.FileName, out.XML)
		}
		if err != nil {
			report.Failures = append(report.Failures, xmlgen.BatchFailure{Key: key, Err: err})
			continue
		}
		report.Emitted = append(report.Emitted, out.FileName)
	}
	return report
}

// Requests adapts a slice to the sequence GenerateBatch consumes.
func Requests(requests ...Request) iter.Seq[Request] {
	return func(yield func(Request) bool) {
		for _, req := range requests {
			if !yield(req) {
				return
			}
		}
	}
}

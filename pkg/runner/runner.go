package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/rules"
	"github.com/goliatone/go-offergen/pkg/rules/business"
	"github.com/goliatone/go-offergen/pkg/schema"
	"github.com/goliatone/go-offergen/pkg/validation"
)

// ErrNilDocument is returned when Run receives no document.
var ErrNilDocument = errors.New("runner: document is required")

// Runner validates offer documents against a rule registry and a section
// schema lookup. It is safe for concurrent use once constructed.
type Runner struct {
	registry        *rules.Registry
	initialize      func(*rules.Registry) error
	lookup          schema.Lookup
	lookupSpecified bool
	logger          *slog.Logger

	initOnce sync.Once
	initErr  error

	// schemas memoizes section lookups for this runner only.
	schemas *rules.Registry
}

// New constructs a Runner. Without options it uses the shared business rule
// set and the struct-tag schema lookup.
func New(options ...Option) *Runner {
	r := &Runner{
		logger:  slog.Default(),
		schemas: rules.NewRegistry(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.applyDefaults()
	return r
}

func (r *Runner) applyDefaults() {
	if r.registry == nil {
		r.registry = business.Default()
	}
	if r.initialize == nil {
		r.initialize = business.Register
	}
	if r.lookup == nil && !r.lookupSpecified {
		r.lookup = schema.NewStructLookup()
	}
}

// Registry returns the rule set in use.
func (r *Runner) Registry() *rules.Registry {
	return r.registry
}

func (r *Runner) ensureRegistry() error {
	r.initOnce.Do(func() {
		if r.registry.Populated() {
			return
		}
		if err := r.initialize(r.registry); err != nil {
			r.initErr = fmt.Errorf("runner: initialise rules: %w", err)
		}
	})
	return r.initErr
}

// Run validates the whole document. Findings are returned in the Result; the
// error is reserved for a nil document, a cancelled context or a failed
// registry initialisation.
func (r *Runner) Run(ctx context.Context, doc *offer.Document, action offer.Action) (validation.Result, error) {
	if doc == nil {
		return validation.Result{}, ErrNilDocument
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return validation.Result{}, err
	}
	if err := r.ensureRegistry(); err != nil {
		return validation.Result{}, err
	}

	vctx := validation.NewContext(doc, action)
	present := doc.PresentSections()

	tasks := make([]structuralTask, 0, len(present))
	for _, name := range present {
		data, _ := doc.Section(name)
		tasks = append(tasks, structuralTask{section: name, schemaName: string(name), data: data})
	}

	structural := r.runStructural(ctx, tasks)
	fields := r.runFieldRules(vctx, doc, "")
	cross := r.runCrossFieldRules(vctx, "")
	sections := r.runSectionRules(vctx, doc, present)
	global := r.runGlobalRules(vctx)

	return validation.NewResult(structural, fields, cross, sections, global), nil
}

// ValidateSection checks one section in the context of the full document:
// its structural schema, its field and section rules, and the cross-field
// findings rooted at the section. data replaces the section before checking.
func (r *Runner) ValidateSection(ctx context.Context, name offer.SectionName, data any, doc *offer.Document, action offer.Action, opts ...SectionOption) (validation.Result, error) {
	if !name.Known() {
		return validation.Result{}, fmt.Errorf("runner: unknown section %q", name)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return validation.Result{}, err
	}
	if err := r.ensureRegistry(); err != nil {
		return validation.Result{}, err
	}

	cfg := sectionConfig{schemaName: string(name)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	merged, err := doc.WithSection(name, data)
	if err != nil {
		return validation.Result{}, fmt.Errorf("runner: %w", err)
	}
	vctx := validation.NewContext(merged, action)

	var tasks []structuralTask
	var present []offer.SectionName
	if value, ok := merged.Section(name); ok {
		tasks = append(tasks, structuralTask{section: name, schemaName: cfg.schemaName, data: value})
		present = append(present, name)
	}

	structural := r.runStructural(ctx, tasks)
	fields := r.runFieldRules(vctx, merged, name)
	sections := r.runSectionRules(vctx, merged, present)
	cross := r.runCrossFieldRules(vctx, name)

	return validation.NewResult(structural, fields, sections, cross), nil
}

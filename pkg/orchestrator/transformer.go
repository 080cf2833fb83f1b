package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-offergen/pkg/offer"
)

// Transformer mutates a document before validation. The orchestrator hands
// every transformer a shallow copy, so implementations must replace section
// pointers rather than write through them.
type Transformer interface {
	Transform(ctx context.Context, doc *offer.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *offer.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *offer.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// WithTransformers registers transformers applied in order before validation.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// Normalize trims the identification codes and upper-cases the identity code.
var Normalize = TransformerFunc(func(_ context.Context, doc *offer.Document) error {
	if doc.Identification == nil {
		return nil
	}
	id := *doc.Identification
	id.IdentityCode = strings.ToUpper(strings.TrimSpace(id.IdentityCode))
	id.OfferCode = strings.TrimSpace(id.OfferCode)
	doc.Identification = &id
	return nil
})

// PresetTransformer fills sections missing from a document with the sections
// of a preset document, e.g. the vendor's contact details and payment methods
// shared by every offer. Sections already present are left untouched.
type PresetTransformer struct {
	preset offer.Document
}

// NewPresetTransformer parses a partial document from raw JSON.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var preset offer.Document
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{preset: preset}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Sections lists the sections the preset supplies.
func (t *PresetTransformer) Sections() []offer.SectionName {
	return t.preset.PresentSections()
}

// Transform copies every preset section the document lacks.
func (t *PresetTransformer) Transform(ctx context.Context, doc *offer.Document) error {
	if doc == nil {
		return errors.New("preset transformer: document is nil")
	}
	merged := doc
	for _, name := range t.preset.PresentSections() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if doc.Has(name) {
			continue
		}
		value, _ := t.preset.Section(name)
		next, err := merged.WithSection(name, value)
		if err != nil {
			return fmt.Errorf("preset transformer: %s: %w", name, err)
		}
		merged = next
	}
	*doc = *merged
	return nil
}

func (o *Orchestrator) transform(ctx context.Context, doc *offer.Document) (*offer.Document, error) {
	if len(o.transformers) == 0 {
		return doc, nil
	}
	working := *doc
	for _, t := range o.transformers {
		if err := t.Transform(ctx, &working); err != nil {
			return nil, fmt.Errorf("orchestrator: transform document: %w", err)
		}
	}
	return &working, nil
}

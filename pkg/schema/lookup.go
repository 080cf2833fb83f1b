// Package schema supplies the first-pass structural checks run per section
// before any business rule. The runner only depends on Lookup; StructLookup
// is the default implementation backed by struct tags.
package schema

import (
	"context"

	"github.com/goliatone/go-offergen/pkg/validation"
)

// Schema checks the shape and types of one section value.
type Schema interface {
	Check(ctx context.Context, value any) []validation.Error
}

// Lookup resolves a schema by section name. Unknown names report false and
// are skipped by callers.
type Lookup interface {
	Schema(section string) (Schema, bool)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(section string) (Schema, bool)

func (f LookupFunc) Schema(section string) (Schema, bool) {
	if f == nil {
		return nil, false
	}
	return f(section)
}

// Func adapts a function to Schema.
type Func func(ctx context.Context, value any) []validation.Error

func (f Func) Check(ctx context.Context, value any) []validation.Error {
	return f(ctx, value)
}

// Map is a fixed table of schemas keyed by section name.
type Map map[string]Schema

func (m Map) Schema(section string) (Schema, bool) {
	s, ok := m[section]
	return s, ok
}

// Chain consults each lookup in order and returns the first match.
func Chain(lookups ...Lookup) Lookup {
	return LookupFunc(func(section string) (Schema, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if s, ok := l.Schema(section); ok {
				return s, true
			}
		}
		return nil, false
	})
}

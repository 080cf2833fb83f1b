package runner

import (
	"log/slog"

	"github.com/goliatone/go-offergen/pkg/rules"
	"github.com/goliatone/go-offergen/pkg/schema"
)

// Option customises the runner configuration.
type Option func(*Runner)

// WithRegistry injects the rule set. When the registry is empty the runner
// populates it once through the initializer.
func WithRegistry(reg *rules.Registry) Option {
	return func(r *Runner) {
		r.registry = reg
	}
}

// WithInitializer overrides the function used to populate an empty registry.
func WithInitializer(fn func(*rules.Registry) error) Option {
	return func(r *Runner) {
		r.initialize = fn
	}
}

// WithSchemaLookup injects the first-pass section schemas. Pass nil to skip
// structural checks entirely.
func WithSchemaLookup(lookup schema.Lookup) Option {
	return func(r *Runner) {
		r.lookup = lookup
		r.lookupSpecified = true
	}
}

// WithLogger sets the logger used to report recovered rule failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// SectionOption customises ValidateSection.
type SectionOption func(*sectionConfig)

type sectionConfig struct {
	schemaName string
}

// WithSchemaName checks the section against the schema registered under name
// instead of the section's own name.
func WithSchemaName(name string) SectionOption {
	return func(c *sectionConfig) {
		c.schemaName = name
	}
}

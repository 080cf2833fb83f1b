package orchestrator

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-offergen/pkg/runner"
	"github.com/goliatone/go-offergen/pkg/validation"
	"github.com/goliatone/go-offergen/pkg/xmlgen"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// Checker re-validates encoded output.
type Checker func(data []byte) validation.Result

// WithRunner injects a preconfigured validation runner.
func WithRunner(r *runner.Runner) Option {
	return func(o *Orchestrator) {
		o.runner = r
	}
}

// WithGeneratorOptions forwards options to every xmlgen call.
func WithGeneratorOptions(options ...xmlgen.Option) Option {
	return func(o *Orchestrator) {
		o.generatorOptions = append(o.generatorOptions, options...)
	}
}

// WithSelfCheck toggles re-validation of generated output. Enabled by default.
func WithSelfCheck(enabled bool) Option {
	return func(o *Orchestrator) {
		o.selfCheck = enabled
	}
}

// WithChecker replaces the structural validator used by the self-check.
func WithChecker(check Checker) Option {
	return func(o *Orchestrator) {
		o.checker = check
	}
}

// WithLogger sets the logger handed to the default runner. It has no effect
// when WithRunner supplies one.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithClock overrides the time source used for unique file names.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// Package orchestrator wires the validate → generate → name → self-check
// pipeline behind a single entry point, with dependency injection friendly
// options for callers that need to swap a stage.
package orchestrator

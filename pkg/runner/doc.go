// Package runner executes the validation pipeline: structural checks per
// present section (concurrently), then field, cross-field, section and global
// rules, merged into one deduplicated validation.Result.
package runner

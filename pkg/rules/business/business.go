// Package business holds the regulatory rule catalogue for offer documents.
//
// Rules are grouped by kind: cross-field rules report one concern each,
// section rules may report several defects of one section, global rules look
// at the whole document and field rules inspect addressed free-text values.
package business

import (
	"sync"

	"github.com/goliatone/go-offergen/pkg/rules"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *rules.Registry
)

// Catalogue returns a fresh copy of every business rule in registration
// order.
func Catalogue() []rules.Rule {
	out := make([]rules.Rule, 0, 48)
	out = append(out, fieldRules()...)
	out = append(out, crossFieldRules()...)
	out = append(out, sectionRules()...)
	out = append(out, globalRules()...)
	return out
}

// Register adds the catalogue to reg. Registering twice replaces the rules in
// place, so repeated calls are harmless.
func Register(reg *rules.Registry) error {
	for _, rule := range Catalogue() {
		if err := reg.Register(rule); err != nil {
			return err
		}
	}
	return nil
}

// Default returns a registry holding the catalogue. It is built on first use
// and shared afterwards; callers must not register into it.
func Default() *rules.Registry {
	defaultOnce.Do(func() {
		reg := rules.NewRegistry()
		if err := Register(reg); err != nil {
			panic(err)
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

package rules

import (
	"fmt"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/validation"
)

// Kind tags the phase a rule runs in.
type Kind uint8

const (
	KindField Kind = iota + 1
	KindCrossField
	KindSection
	KindGlobal
)

// Kinds lists the rule kinds in execution order.
var Kinds = []Kind{KindField, KindCrossField, KindSection, KindGlobal}

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindCrossField:
		return "cross-field"
	case KindSection:
		return "section"
	case KindGlobal:
		return "global"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Target carries the inputs for one rule application. Field rules read Field,
// section rules read Data, cross-field and global rules only the Context.
type Target struct {
	Context validation.Context
	Section offer.SectionName
	Data    any
	Field   offer.FieldValue
}

// Rule is a named, pure check. Apply returns nil when nothing is wrong.
type Rule interface {
	Name() string
	Kind() Kind
	Apply(Target) []validation.Error
}

// Scoped is implemented by rules bound to one section.
type Scoped interface {
	Section() offer.SectionName
}

// Selector addresses the fields a field rule inspects.
type Selector interface {
	Select(doc *offer.Document) []offer.FieldValue
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(doc *offer.Document) []offer.FieldValue

func (f SelectorFunc) Select(doc *offer.Document) []offer.FieldValue { return f(doc) }

// FieldFunc checks one field value.
type FieldFunc func(field offer.FieldValue, ctx validation.Context) *validation.Error

// CrossFieldFunc checks one concern across the document.
type CrossFieldFunc func(ctx validation.Context) *validation.Error

// GlobalFunc checks the whole document.
type GlobalFunc func(ctx validation.Context) []validation.Error

type fieldRule struct {
	name     string
	section  offer.SectionName
	selector Selector
	fn       FieldFunc
}

// Field builds a field rule applied to every value the selector yields.
func Field(name string, section offer.SectionName, selector Selector, fn FieldFunc) Rule {
	return &fieldRule{name: name, section: section, selector: selector, fn: fn}
}

func (r *fieldRule) Name() string               { return r.name }
func (r *fieldRule) Kind() Kind                 { return KindField }
func (r *fieldRule) Section() offer.SectionName { return r.section }

func (r *fieldRule) Select(doc *offer.Document) []offer.FieldValue {
	if r.selector == nil || doc == nil {
		return nil
	}
	return r.selector.Select(doc)
}

func (r *fieldRule) Apply(t Target) []validation.Error {
	if err := r.fn(t.Field, t.Context); err != nil {
		return []validation.Error{*err}
	}
	return nil
}

type crossFieldRule struct {
	name string
	fn   CrossFieldFunc
}

// CrossField builds a rule that reports at most one error.
func CrossField(name string, fn CrossFieldFunc) Rule {
	return &crossFieldRule{name: name, fn: fn}
}

func (r *crossFieldRule) Name() string { return r.name }
func (r *crossFieldRule) Kind() Kind   { return KindCrossField }

func (r *crossFieldRule) Apply(t Target) []validation.Error {
	if err := r.fn(t.Context); err != nil {
		return []validation.Error{*err}
	}
	return nil
}

type sectionRule struct {
	name    string
	section offer.SectionName
	fn      func(data any, ctx validation.Context) []validation.Error
}

// Section builds a rule over one section's data. T must match the type the
// document stores for the section (pointer for single sections, slice for
// repeatable ones); data of any other type is ignored.
func Section[T any](name string, section offer.SectionName, fn func(data T, ctx validation.Context) []validation.Error) Rule {
	return &sectionRule{
		name:    name,
		section: section,
		fn: func(data any, ctx validation.Context) []validation.Error {
			typed, ok := data.(T)
			if !ok {
				return nil
			}
			return fn(typed, ctx)
		},
	}
}

func (r *sectionRule) Name() string               { return r.name }
func (r *sectionRule) Kind() Kind                 { return KindSection }
func (r *sectionRule) Section() offer.SectionName { return r.section }

func (r *sectionRule) Apply(t Target) []validation.Error {
	return r.fn(t.Data, t.Context)
}

type globalRule struct {
	name string
	fn   GlobalFunc
}

// Global builds a rule over the whole document.
func Global(name string, fn GlobalFunc) Rule {
	return &globalRule{name: name, fn: fn}
}

func (r *globalRule) Name() string { return r.name }
func (r *globalRule) Kind() Kind   { return KindGlobal }

func (r *globalRule) Apply(t Target) []validation.Error {
	return r.fn(t.Context)
}

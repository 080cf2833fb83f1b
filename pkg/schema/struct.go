package schema

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/validation"
)

// StructLookup validates section structs with their `validate` tags.
type StructLookup struct {
	validate *validator.Validate
	sections map[string]Schema
}

// StructOption customises a StructLookup.
type StructOption func(*StructLookup)

// WithValidator swaps the validator instance, e.g. to add tags.
func WithValidator(v *validator.Validate) StructOption {
	return func(l *StructLookup) {
		if v != nil {
			l.validate = v
		}
	}
}

// WithoutSection removes a section from the lookup.
func WithoutSection(name offer.SectionName) StructOption {
	return func(l *StructLookup) {
		delete(l.sections, string(name))
	}
}

// NewStructLookup registers a schema for every document section.
func NewStructLookup(options ...StructOption) *StructLookup {
	l := &StructLookup{
		sections: make(map[string]Schema, len(offer.Sections())),
	}
	for _, name := range offer.Sections() {
		l.sections[string(name)] = &structSchema{section: name, lookup: l}
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	if l.validate == nil {
		l.validate = NewValidator()
	}
	return l
}

// Schema implements Lookup.
func (l *StructLookup) Schema(section string) (Schema, bool) {
	s, ok := l.sections[section]
	return s, ok
}

// Validator exposes the underlying validator.
func (l *StructLookup) Validator() *validator.Validate {
	return l.validate
}

type structSchema struct {
	section offer.SectionName
	lookup  *StructLookup
}

func (s *structSchema) Check(ctx context.Context, value any) []validation.Error {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice {
		var out []validation.Error
		for i := 0; i < rv.Len(); i++ {
			out = append(out, s.checkOne(ctx, rv.Index(i).Interface(), strconv.Itoa(i))...)
		}
		return out
	}
	return s.checkOne(ctx, value)
}

func (s *structSchema) checkOne(ctx context.Context, value any, prefix ...string) []validation.Error {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
	}
	if reflect.Indirect(rv).Kind() != reflect.Struct {
		return []validation.Error{validation.NewError(validation.CodeSchema,
			fmt.Sprintf("unexpected value of type %T", value), string(s.section))}
	}

	err := s.lookup.validate.StructCtx(ctx, value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []validation.Error{validation.NewError(validation.CodeSchema, err.Error(), string(s.section))}
	}

	out := make([]validation.Error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := make([]string, 0, 4)
		path = append(path, string(s.section))
		path = append(path, prefix...)
		path = append(path, namespacePath(fe.Namespace())...)
		out = append(out, validation.NewError(validation.CodeSchema, Message(fe), path...))
	}
	return out
}

// namespacePath turns "Discount.prices[1].unit" into ["prices", "1", "unit"],
// dropping the root struct name.
func namespacePath(ns string) []string {
	parts := strings.Split(ns, ".")
	if len(parts) > 0 {
		parts = parts[1:]
	}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		for {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				out = append(out, part)
				break
			}
			if open > 0 {
				out = append(out, part[:open])
			}
			end := strings.IndexByte(part[open:], ']')
			if end < 0 {
				out = append(out, part[open:])
				break
			}
			out = append(out, part[open+1:open+end])
			part = part[open+end+1:]
			if part == "" {
				break
			}
		}
	}
	return out
}

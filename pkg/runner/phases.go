package runner

import (
	"context"
	"sync"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/rules"
	"github.com/goliatone/go-offergen/pkg/schema"
	"github.com/goliatone/go-offergen/pkg/validation"
)

type structuralTask struct {
	section    offer.SectionName
	schemaName string
	data       any
}

type cachedSchema struct {
	schema schema.Schema
	ok     bool
}

func (r *Runner) schemaFor(name string) (schema.Schema, bool) {
	if r.lookup == nil {
		return nil, false
	}
	entry, err := rules.CachedSchema(r.schemas, name, func() (cachedSchema, error) {
		s, ok := r.lookup.Schema(name)
		return cachedSchema{schema: s, ok: ok && s != nil}, nil
	})
	if err != nil {
		return nil, false
	}
	return entry.schema, entry.ok
}

// runStructural checks every task concurrently. Each goroutine writes only its
// own slot, so merging the slots in task order keeps the output deterministic.
func (r *Runner) runStructural(ctx context.Context, tasks []structuralTask) []validation.Error {
	if len(tasks) == 0 {
		return nil
	}

	slots := make([][]validation.Error, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		s, ok := r.schemaFor(task.schemaName)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(i int, task structuralTask, s schema.Schema) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					r.logger.Error("section schema panicked",
						"section", string(task.section),
						"schema", task.schemaName,
						"panic", rec,
					)
					slots[i] = nil
				}
			}()
			slots[i] = s.Check(ctx, task.data)
		}(i, task, s)
	}
	wg.Wait()

	var out []validation.Error
	for _, slot := range slots {
		out = append(out, slot...)
	}
	return out
}

func (r *Runner) runFieldRules(vctx validation.Context, doc *offer.Document, only offer.SectionName) []validation.Error {
	var out []validation.Error
	for _, rule := range r.registry.All(rules.KindField) {
		if only != "" {
			scoped, ok := rule.(rules.Scoped)
			if !ok || scoped.Section() != only {
				continue
			}
		}
		selector, ok := rule.(rules.Selector)
		if !ok {
			continue
		}
		for _, field := range r.selectFields(rule, selector, doc) {
			out = append(out, r.apply(rule, rules.Target{Context: vctx, Section: field.Section(), Field: field})...)
		}
	}
	return out
}

func (r *Runner) selectFields(rule rules.Rule, selector rules.Selector, doc *offer.Document) (fields []offer.FieldValue) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logRecovered(rule, rec)
			fields = nil
		}
	}()
	return selector.Select(doc)
}

func (r *Runner) runCrossFieldRules(vctx validation.Context, only offer.SectionName) []validation.Error {
	var out []validation.Error
	for _, rule := range r.registry.All(rules.KindCrossField) {
		for _, err := range r.apply(rule, rules.Target{Context: vctx}) {
			if only != "" && err.Section() != string(only) {
				continue
			}
			out = append(out, err)
		}
	}
	return out
}

func (r *Runner) runSectionRules(vctx validation.Context, doc *offer.Document, present []offer.SectionName) []validation.Error {
	var out []validation.Error
	for _, name := range present {
		data, ok := doc.Section(name)
		if !ok {
			continue
		}
		for _, rule := range r.registry.ForSection(rules.KindSection, name) {
			out = append(out, r.apply(rule, rules.Target{Context: vctx, Section: name, Data: data})...)
		}
	}
	return out
}

func (r *Runner) runGlobalRules(vctx validation.Context) []validation.Error {
	var out []validation.Error
	for _, rule := range r.registry.All(rules.KindGlobal) {
		out = append(out, r.apply(rule, rules.Target{Context: vctx})...)
	}
	return out
}

// apply runs one rule. A panic is logged and treated as no finding.
func (r *Runner) apply(rule rules.Rule, target rules.Target) (errs []validation.Error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logRecovered(rule, rec)
			errs = nil
		}
	}()
	return rule.Apply(target)
}

func (r *Runner) logRecovered(rule rules.Rule, rec any) {
	r.logger.Error("validation rule panicked",
		"rule", rule.Name(),
		"kind", rule.Kind().String(),
		"panic", rec,
	)
}

package rules

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-offergen/pkg/offer"
)

// ErrNilRule is returned when registering a nil rule.
var ErrNilRule = errors.New("rules: rule is required")

// Registry stores rules by (kind, name) in registration order. Registering a
// name again replaces the rule in place.
type Registry struct {
	mu    sync.RWMutex
	rules map[Kind][]Rule
	index map[Kind]map[string]int

	cacheMu sync.Mutex
	cache   map[string]*cacheEntry
}

type cacheEntry struct {
	once  sync.Once
	value any
	err   error
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[Kind][]Rule),
		index: make(map[Kind]map[string]int),
		cache: make(map[string]*cacheEntry),
	}
}

// Register stores rule under its kind and name.
func (r *Registry) Register(rule Rule) error {
	if rule == nil {
		return ErrNilRule
	}
	name := rule.Name()
	if name == "" {
		return fmt.Errorf("rules: rule name is required")
	}
	kind := rule.Kind()
	switch kind {
	case KindField, KindCrossField, KindSection, KindGlobal:
	default:
		return fmt.Errorf("rules: rule %q has unknown kind %s", name, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	names := r.index[kind]
	if names == nil {
		names = make(map[string]int)
		r.index[kind] = names
	}
	if pos, exists := names[name]; exists {
		r.rules[kind][pos] = rule
		return nil
	}
	names[name] = len(r.rules[kind])
	r.rules[kind] = append(r.rules[kind], rule)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(rules ...Rule) {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
}

// All returns the rules of kind in registration order.
func (r *Registry) All(kind Kind) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Rule(nil), r.rules[kind]...)
}

// ForSection returns the scoped rules of kind bound to section.
func (r *Registry) ForSection(kind Kind, section offer.SectionName) []Rule {
	var out []Rule
	for _, rule := range r.All(kind) {
		if scoped, ok := rule.(Scoped); ok && scoped.Section() == section {
			out = append(out, rule)
		}
	}
	return out
}

// Get retrieves a rule by kind and name.
func (r *Registry) Get(kind Kind, name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[kind][name]
	if !ok {
		return nil, false
	}
	return r.rules[kind][pos], true
}

// Has reports whether a rule is registered.
func (r *Registry) Has(kind Kind, name string) bool {
	_, ok := r.Get(kind, name)
	return ok
}

// Names returns the sorted rule names for kind.
func (r *Registry) Names(kind Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.index[kind]))
	for name := range r.index[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of rules of kind.
func (r *Registry) Len(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rules[kind])
}

// Populated reports whether the registry has been initialised, using the
// cross-field rules as the marker.
func (r *Registry) Populated() bool {
	return r != nil && r.Len(KindCrossField) > 0
}

// ClearCache drops every memoized schema object.
func (r *Registry) ClearCache() {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	r.cache = make(map[string]*cacheEntry)
}

func (r *Registry) entry(key string) *cacheEntry {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	e, ok := r.cache[key]
	if !ok {
		e = &cacheEntry{}
		r.cache[key] = e
	}
	return e
}

// CachedSchema returns the value memoized under key, calling factory only on
// the first request after construction or ClearCache. A factory error is
// cached as well.
func CachedSchema[T any](r *Registry, key string, factory func() (T, error)) (T, error) {
	e := r.entry(key)
	e.once.Do(func() {
		e.value, e.err = factory()
	})
	if e.err != nil {
		var zero T
		return zero, e.err
	}
	if e.value == nil {
		var zero T
		return zero, nil
	}
	value, ok := e.value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("rules: cached schema %q has type %T", key, e.value)
	}
	return value, nil
}

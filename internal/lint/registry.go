package lint

import (
	"fmt"
)

// Registry is the closed, ordered rule set for a run. Assembled once at
// startup, read-only afterwards; iteration order is registration order,
// which makes every downstream ordering deterministic.
type Registry struct {
	rules []Rule
	index map[string]int
}

// NewRegistry assembles the registry. Duplicate rule ids are a
// programming error and fail assembly.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{
		rules: rules,
		index: make(map[string]int, len(rules)),
	}
	for i, rule := range rules {
		id := rule.Info().ID
		if id == "" {
			return nil, fmt.Errorf("rule at position %d has an empty id", i)
		}
		if _, dup := r.index[id]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", id)
		}
		r.index[id] = i
	}
	return r, nil
}

// MustRegistry is NewRegistry for static rule lists.
func MustRegistry(rules ...Rule) *Registry {
	r, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return r
}

// Rules returns the rules in registry order. Callers must not modify
// the slice.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Get returns the rule registered under id.
func (r *Registry) Get(id string) (Rule, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.rules[i], true
}

// Has reports whether id names a registered rule.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Pos returns the registry position of id; unknown ids sort last.
func (r *Registry) Pos(id string) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return len(r.rules)
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

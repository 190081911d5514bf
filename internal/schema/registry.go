package schema

import (
	"fmt"
	"sort"
)

// Registry maps file kinds to their schemas. It is built once during
// configuration and never mutated afterwards; With returns a new Registry.
type Registry struct {
	order   []Kind
	schemas map[Kind]*Schema
}

// NewRegistry builds a registry from the given schemas, in order.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[Kind]*Schema, len(schemas))}
	for _, s := range schemas {
		if _, dup := r.schemas[s.Kind()]; dup {
			return nil, fmt.Errorf("duplicate schema for kind %q", s.Kind())
		}
		r.order = append(r.order, s.Kind())
		r.schemas[s.Kind()] = s
	}
	return r, nil
}

// Lookup returns the schema registered for kind, or ok=false.
func (r *Registry) Lookup(kind Kind) (*Schema, bool) {
	s, ok := r.schemas[kind]
	return s, ok
}

// Get is like Lookup but returns an error naming the known kinds.
func (r *Registry) Get(kind Kind) (*Schema, error) {
	s, ok := r.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("unknown file kind %q (known: %v)", kind, r.order)
	}
	return s, nil
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}

// With returns a new registry where each given schema replaces the one
// registered for its kind, or is appended if the kind is new.
func (r *Registry) With(schemas ...*Schema) *Registry {
	next := &Registry{
		order:   append([]Kind(nil), r.order...),
		schemas: make(map[Kind]*Schema, len(r.schemas)+len(schemas)),
	}
	for k, s := range r.schemas {
		next.schemas[k] = s
	}
	for _, s := range schemas {
		if _, ok := next.schemas[s.Kind()]; !ok {
			next.order = append(next.order, s.Kind())
		}
		next.schemas[s.Kind()] = s
	}
	return next
}

// FromDeclarations builds one schema per declared kind, sorted by kind name.
func FromDeclarations(decls map[string][]Field) ([]*Schema, error) {
	kinds := make([]string, 0, len(decls))
	for k := range decls {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	out := make([]*Schema, 0, len(kinds))
	for _, k := range kinds {
		if len(decls[k]) == 0 {
			return nil, fmt.Errorf("%s schema declares no fields", k)
		}
		s, err := New(Kind(k), decls[k]...)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

package api

import (
	"fmt"

	"github.com/skillsenselab/apiwire/errors"
)

// Registry is an immutable lookup from reference to factory. Build it
// once with NewRegistry and share it; the resolver never mutates it.
type Registry struct {
	factories map[*Ref]*Factory
	order     []*Ref
}

// NewRegistry builds a registry from the given factories. Exactly one
// factory per reference is allowed; a duplicate or a factory with no
// Implements ref is a configuration error.
func NewRegistry(factories ...*Factory) (*Registry, error) {
	r := &Registry{
		factories: make(map[*Ref]*Factory, len(factories)),
	}
	for _, f := range factories {
		if f == nil || f.Implements == nil {
			return nil, fmt.Errorf("api: factory without an implements reference")
		}
		if _, exists := r.factories[f.Implements]; exists {
			return nil, errors.DuplicateFactory(f.Implements.String())
		}
		r.factories[f.Implements] = f
		r.order = append(r.order, f.Implements)
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on configuration errors.
// Intended for wiring code where a bad registry is a programming error.
func MustNewRegistry(factories ...*Factory) *Registry {
	r, err := NewRegistry(factories...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the factory registered for ref, if any.
func (r *Registry) Lookup(ref *Ref) (*Factory, bool) {
	f, ok := r.factories[ref]
	return f, ok
}

// Len returns the number of registered factories.
func (r *Registry) Len() int { return len(r.factories) }

// Refs returns the implemented references in registration order.
func (r *Registry) Refs() []*Ref {
	refs := make([]*Ref, len(r.order))
	copy(refs, r.order)
	return refs
}

package api

import "context"

// ConstructFunc builds a concrete implementation from resolved
// dependency values. The map holds the same slot names the factory
// declared in its Dependencies, now bound to concrete implementations.
// The context carries tracing/log enrichment only; construction is
// synchronous and is never cancelled mid-build.
type ConstructFunc func(ctx context.Context, deps map[string]any) (any, error)

// Factory is a registered provider for one reference.
type Factory struct {
	// Implements is the reference this factory provides.
	Implements *Ref
	// Deps declares the named dependency slots, in the order they
	// should be resolved. May be nil for leaf factories.
	Deps *Dependencies
	// Construct produces the implementation. Invoked at most once per
	// resolver instance.
	Construct ConstructFunc
}

type depSlot struct {
	name string
	ref  *Ref
}

// Dependencies is an insertion-ordered mapping of slot name to
// reference. Order matters: the resolver builds dependencies in the
// order slots were added, which fixes construction side-effect
// ordering for factories that have observable side effects.
type Dependencies struct {
	slots []depSlot
}

// Deps starts an empty dependency declaration. Chain Add calls:
//
//	api.Deps().Add("storage", storageRef).Add("clock", clockRef)
func Deps() *Dependencies {
	return &Dependencies{}
}

// Add appends a slot. Adding the same slot name twice keeps both
// entries; callers are expected to use unique slot names.
func (d *Dependencies) Add(slot string, ref *Ref) *Dependencies {
	d.slots = append(d.slots, depSlot{name: slot, ref: ref})
	return d
}

// Len returns the number of declared slots.
func (d *Dependencies) Len() int {
	if d == nil {
		return 0
	}
	return len(d.slots)
}

// Each calls fn for every slot in insertion order, stopping at the
// first error.
func (d *Dependencies) Each(fn func(slot string, ref *Ref) error) error {
	if d == nil {
		return nil
	}
	for _, s := range d.slots {
		if err := fn(s.name, s.ref); err != nil {
			return err
		}
	}
	return nil
}

// Refs returns the declared dependency references in insertion order.
func (d *Dependencies) Refs() []*Ref {
	if d == nil {
		return nil
	}
	refs := make([]*Ref, 0, len(d.slots))
	for _, s := range d.slots {
		refs = append(refs, s.ref)
	}
	return refs
}

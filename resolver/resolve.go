package resolver

import (
	"context"
	"fmt"

	"github.com/skillsenselab/apiwire/api"
)

// Resolve resolves a reference with type safety, returning an error on
// failure. Absence at the top level is reported through the bool.
//
// Example:
//
//	store, ok, err := resolver.Resolve[Storage](ctx, r, storageRef)
func Resolve[T any](ctx context.Context, r *Resolver, ref *api.Ref) (T, bool, error) {
	var zero T
	impl, ok, err := r.Get(ctx, ref)
	if err != nil {
		return zero, false, fmt.Errorf("resolver: failed to resolve %s: %w", ref, err)
	}
	if !ok {
		return zero, false, nil
	}
	typed, cast := impl.(T)
	if !cast {
		return zero, false, fmt.Errorf("resolver: %s is %T, expected %T", ref, impl, zero)
	}
	return typed, true, nil
}

// MustResolve resolves a reference with type safety, panicking when the
// reference is absent, the build fails, or the implementation has an
// unexpected type. Use in wiring code where failure is a programming
// error.
func MustResolve[T any](ctx context.Context, r *Resolver, ref *api.Ref) T {
	typed, ok, err := Resolve[T](ctx, r, ref)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic(fmt.Sprintf("resolver: no factory registered for %s", ref))
	}
	return typed
}

// TryResolve resolves a reference, returning the zero value and false
// on absence, failure, or type mismatch. Use when a capability is
// optional.
func TryResolve[T any](ctx context.Context, r *Resolver, ref *api.Ref) (T, bool) {
	typed, ok, err := Resolve[T](ctx, r, ref)
	if err != nil || !ok {
		var zero T
		return zero, false
	}
	return typed, true
}

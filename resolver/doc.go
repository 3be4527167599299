// Package resolver builds concrete API implementations from an
// api.Registry, lazily and at most once per reference.
//
// A Resolver owns a cache that grows for its lifetime: the first Get
// for a reference walks the factory's dependency slots depth-first,
// builds each dependency, invokes the construct function, and caches
// the result. Later Gets — including indirect ones through other
// dependents — return the identical instance.
//
// Two failure kinds surface as structured errors: a reference that
// reappears in its own ancestor chain (CIRCULAR_DEPENDENCY) and a
// declared dependency with no registered factory (MISSING_DEPENDENCY).
// A requested reference with no factory is not an error at the top
// level; Get reports it as absent.
//
// Validate performs the same cycle check statically, breadth-first
// over the registry, without constructing anything. The two checks are
// deliberately independent: Validate only catches cycles that pass
// back through a supplied starting reference, while the dynamic check
// catches any cycle on the construction path.
//
// Resolvers are single-threaded by contract and hold no locks.
package resolver

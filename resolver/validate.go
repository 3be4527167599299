package resolver

import (
	"github.com/skillsenselab/apiwire/api"
	"github.com/skillsenselab/apiwire/errors"
)

// Validate checks, for every starting reference in refs, that no
// dependency path through the registry leads back to that reference.
// It constructs nothing and has no side effects.
//
// Each starting reference is expanded breadth-first. A reference with
// no registered factory is skipped — an unregistered dependency is a
// resolution-time problem, not a cycle. Cycles among factories not
// reachable from refs are not detected; validation covers the set of
// APIs actually intended for use.
func Validate(registry *api.Registry, refs []*api.Ref) error {
	for _, start := range refs {
		if err := validateFrom(registry, start); err != nil {
			return err
		}
	}
	return nil
}

func validateFrom(registry *api.Registry, start *api.Ref) error {
	queue := []*api.Ref{start}
	visited := make(map[*api.Ref]bool)

	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]

		factory, ok := registry.Lookup(ref)
		if !ok {
			continue
		}

		for _, dep := range factory.Deps.Refs() {
			if dep == start {
				return errors.CircularDependency(start.String(), nil)
			}
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	return nil
}

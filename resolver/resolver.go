package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/skillsenselab/apiwire/api"
	"github.com/skillsenselab/apiwire/errors"
	"github.com/skillsenselab/apiwire/logger"
)

// Resolver is a stateful, per-instance lazy builder and cache of
// concrete implementations. Create one with New; do not share across
// goroutines.
type Resolver struct {
	registry *api.Registry
	cache    map[*api.Ref]any
	// order records cache insertion order; Close walks it in reverse so
	// dependents close before their dependencies.
	order    []*api.Ref
	log      *logger.Logger
	logBuild bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for resolution events.
func WithLogger(log *logger.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// WithResolutionLogging toggles per-construction debug logging.
// Enabled by default.
func WithResolutionLogging(enabled bool) Option {
	return func(r *Resolver) { r.logBuild = enabled }
}

// New creates a resolver over the given registry. The registry is
// treated as read-only for the resolver's lifetime.
func New(registry *api.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		cache:    make(map[*api.Ref]any),
		log:      logger.Get("resolver"),
		logBuild: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the implementation for ref, building it on first request.
//
// The second return value reports presence: when no factory is
// registered for ref, Get returns (nil, false, nil) — an unprovided
// capability is a legitimate state at the top level, not a failure.
// A missing factory encountered while building a dependency of
// something else is escalated to a MISSING_DEPENDENCY error instead,
// because a declared dependency must be satisfiable.
func (r *Resolver) Get(ctx context.Context, ref *api.Ref) (any, bool, error) {
	return r.load(ctx, ref, nil)
}

// load resolves one reference with the ancestor chain accumulated on
// the current call stack, ancestors first.
func (r *Resolver) load(ctx context.Context, ref *api.Ref, chain []*api.Ref) (any, bool, error) {
	if impl, ok := r.cache[ref]; ok {
		return impl, true, nil
	}

	factory, ok := r.registry.Lookup(ref)
	if !ok {
		return nil, false, nil
	}

	// Dynamic cycle check: the factory's own identity reappearing among
	// its in-progress ancestors means the chain can never bottom out.
	for _, ancestor := range chain {
		if ancestor == factory.Implements {
			return nil, false, errors.CircularDependency(factory.Implements.String(), chainStrings(chain, factory.Implements))
		}
	}
	chain = append(chain, factory.Implements)

	values := make(map[string]any, factory.Deps.Len())
	err := factory.Deps.Each(func(slot string, dep *api.Ref) error {
		impl, present, err := r.load(ctx, dep, chain)
		if err != nil {
			return err
		}
		if !present {
			return errors.MissingDependency(dep.String(), factory.Implements.String())
		}
		values[slot] = impl
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	impl, err := factory.Construct(ctx, values)
	if err != nil {
		if r.logBuild {
			r.log.Error("api construction failed", logger.Fields(
				logger.FieldRef, ref.String(),
				logger.FieldError, err.Error(),
			))
		}
		return nil, false, errors.ConstructFailed(ref.String(), err)
	}

	r.cache[ref] = impl
	r.order = append(r.order, ref)

	if r.logBuild {
		r.log.Debug("api built", logger.Fields(
			logger.FieldRef, ref.String(),
			logger.FieldDepth, len(chain)-1,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	}
	return impl, true, nil
}

// IsCached reports whether ref has already been constructed by this
// resolver.
func (r *Resolver) IsCached(ref *api.Ref) bool {
	_, ok := r.cache[ref]
	return ok
}

// CacheSize returns the number of constructed implementations.
func (r *Resolver) CacheSize() int { return len(r.cache) }

// Registry returns the registry this resolver reads from.
func (r *Resolver) Registry() *api.Registry { return r.registry }

// Close closes every cached implementation that implements io.Closer,
// in reverse construction order so dependents close before the
// dependencies they hold. The cache is cleared; the resolver can be
// reused, rebuilding on demand.
func (r *Resolver) Close() error {
	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		ref := r.order[i]
		if closer, ok := r.cache[ref].(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", ref, err))
			}
		}
		delete(r.cache, ref)
	}
	r.order = nil
	return stderrors.Join(errs...)
}

func chainStrings(chain []*api.Ref, last *api.Ref) []string {
	out := make([]string, 0, len(chain)+1)
	for _, ref := range chain {
		out = append(out, ref.String())
	}
	return append(out, last.String())
}

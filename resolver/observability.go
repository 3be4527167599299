package resolver

import (
	"context"
	"time"

	"github.com/skillsenselab/apiwire/api"
	"github.com/skillsenselab/apiwire/logger"
	"github.com/skillsenselab/apiwire/observability"
)

// WithTracing wraps a factory's construct function with OpenTelemetry
// span creation. Each construction creates a span named
// "{prefix}.{ref name}"; because the resolver plumbs the context
// through the recursive build, dependency spans nest under their
// dependents.
func WithTracing(f *api.Factory, prefix string) *api.Factory {
	inner := f.Construct
	return &api.Factory{
		Implements: f.Implements,
		Deps:       f.Deps,
		Construct: func(ctx context.Context, deps map[string]any) (any, error) {
			spanName := prefix + "." + f.Implements.Name()
			ctx, span := observability.StartSpan(ctx, spanName)
			defer span.End()

			observability.SetSpanAttribute(ctx, "apiwire.ref", f.Implements.String())
			observability.SetSpanAttribute(ctx, "apiwire.deps", f.Deps.Len())

			impl, err := inner(ctx, deps)
			if err != nil {
				observability.SetSpanError(ctx, err)
			}
			return impl, err
		},
	}
}

// WithMetrics wraps a factory's construct function with metric
// recording: construction count, duration, and errors.
func WithMetrics(f *api.Factory, metrics *observability.Metrics) *api.Factory {
	inner := f.Construct
	return &api.Factory{
		Implements: f.Implements,
		Deps:       f.Deps,
		Construct: func(ctx context.Context, deps map[string]any) (any, error) {
			start := time.Now()
			impl, err := inner(ctx, deps)
			duration := time.Since(start)

			status := "ok"
			if err != nil {
				status = "error"
				metrics.RecordError(ctx, "construct", f.Implements.Name())
			}
			metrics.RecordConstruct(ctx, f.Implements.Name(), status, duration)

			return impl, err
		},
	}
}

// WithLogging wraps a factory's construct function with execution
// logging: ref, duration, and success/error status.
func WithLogging(f *api.Factory, log *logger.Logger) *api.Factory {
	inner := f.Construct
	return &api.Factory{
		Implements: f.Implements,
		Deps:       f.Deps,
		Construct: func(ctx context.Context, deps map[string]any) (any, error) {
			start := time.Now()
			impl, err := inner(ctx, deps)
			duration := time.Since(start)

			fields := logger.Fields(
				logger.FieldRef, f.Implements.String(),
				logger.FieldDuration, duration.Milliseconds(),
			)

			if err != nil {
				fields[logger.FieldError] = err.Error()
				log.Error("factory failed", fields)
			} else {
				log.Debug("factory completed", fields)
			}

			return impl, err
		},
	}
}

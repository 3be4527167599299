package resolver

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/skillsenselab/apiwire/api"
	"github.com/skillsenselab/apiwire/logger"
	"github.com/skillsenselab/apiwire/observability"
)

func TestWithLogging_PassesThrough(t *testing.T) {
	ref := api.NewRef("storage")
	factory, count := countingFactory(ref, nil)
	wrapped := WithLogging(factory, logger.Get("test"))

	if wrapped.Implements != ref {
		t.Fatal("wrapper must preserve the implements ref")
	}

	r := newTestResolver(t, wrapped)
	v, ok, err := r.Get(context.Background(), ref)
	if err != nil || !ok {
		t.Fatalf("expected build through wrapper, got ok=%v err=%v", ok, err)
	}
	if v == nil || *count != 1 {
		t.Errorf("expected one construction, got %d", *count)
	}
}

func TestWithLogging_PropagatesError(t *testing.T) {
	boom := stderrors.New("boom")
	ref := api.NewRef("flaky")
	factory := &api.Factory{
		Implements: ref,
		Construct: func(ctx context.Context, deps map[string]any) (any, error) {
			return nil, boom
		},
	}

	wrapped := WithLogging(factory, logger.Get("test"))
	_, err := wrapped.Construct(context.Background(), nil)
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestWithTracing_PreservesDeps(t *testing.T) {
	dep := api.NewRef("dep")
	ref := api.NewRef("top")
	depFactory, _ := countingFactory(dep, nil)
	topFactory, _ := countingFactory(ref, api.Deps().Add("dep", dep))

	wrapped := WithTracing(topFactory, "apiwire")
	if wrapped.Deps != topFactory.Deps {
		t.Fatal("wrapper must preserve declared dependencies")
	}

	// With no tracer provider installed the wrapper runs against the
	// global noop tracer and still resolves normally.
	r := newTestResolver(t, depFactory, wrapped)
	_, ok, err := r.Get(context.Background(), ref)
	if err != nil || !ok {
		t.Fatalf("expected build through tracing wrapper, got ok=%v err=%v", ok, err)
	}
}

func TestWithMetrics_PassesThrough(t *testing.T) {
	metrics, err := observability.NewMetrics(observability.Meter("test"))
	if err != nil {
		t.Fatalf("creating metrics: %v", err)
	}

	ref := api.NewRef("storage")
	factory, count := countingFactory(ref, nil)
	wrapped := WithMetrics(factory, metrics)

	r := newTestResolver(t, wrapped)
	_, ok, err := r.Get(context.Background(), ref)
	if err != nil || !ok {
		t.Fatalf("expected build through metrics wrapper, got ok=%v err=%v", ok, err)
	}
	if *count != 1 {
		t.Errorf("expected one construction, got %d", *count)
	}
}

func TestWrappers_Compose(t *testing.T) {
	ref := api.NewRef("storage")
	factory, count := countingFactory(ref, nil)

	wrapped := WithLogging(WithTracing(factory, "apiwire"), logger.Get("test"))
	r := newTestResolver(t, wrapped)

	_, _, err := r.Get(context.Background(), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, _ = r.Get(context.Background(), ref)
	if *count != 1 {
		t.Errorf("memoization must apply through wrappers, got %d constructions", *count)
	}
}

package resolver

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/skillsenselab/apiwire/api"
	"github.com/skillsenselab/apiwire/errors"
)

// --- test helpers ---

type impl struct {
	ref  *api.Ref
	deps map[string]any
}

// countingFactory returns a factory producing a fresh *impl and a
// counter of construct invocations.
func countingFactory(ref *api.Ref, deps *api.Dependencies) (*api.Factory, *int) {
	count := new(int)
	return &api.Factory{
		Implements: ref,
		Deps:       deps,
		Construct: func(ctx context.Context, values map[string]any) (any, error) {
			*count++
			return &impl{ref: ref, deps: values}, nil
		},
	}, count
}

func newTestResolver(t *testing.T, factories ...*api.Factory) *Resolver {
	t.Helper()
	reg, err := api.NewRegistry(factories...)
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return New(reg, WithResolutionLogging(false))
}

// --- Get tests ---

func TestGet_AbsentAtTopLevel(t *testing.T) {
	r := newTestResolver(t)
	unprovided := api.NewRef("unprovided")

	v, ok, err := r.Get(context.Background(), unprovided)
	if err != nil {
		t.Fatalf("absent ref must not error, got %v", err)
	}
	if ok {
		t.Fatal("expected absent")
	}
	if v != nil {
		t.Fatalf("expected nil value, got %v", v)
	}
}

func TestGet_BuildsAndMemoizes(t *testing.T) {
	ref := api.NewRef("storage")
	factory, count := countingFactory(ref, nil)
	r := newTestResolver(t, factory)
	ctx := context.Background()

	first, ok, err := r.Get(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("expected build, got ok=%v err=%v", ok, err)
	}
	second, ok, err := r.Get(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("expected cached value, got ok=%v err=%v", ok, err)
	}

	if *count != 1 {
		t.Errorf("expected exactly one construction, got %d", *count)
	}
	if first != second {
		t.Error("expected identical instance on both calls")
	}
	if !r.IsCached(ref) {
		t.Error("expected ref to be cached")
	}
	if r.CacheSize() != 1 {
		t.Errorf("expected cache size 1, got %d", r.CacheSize())
	}
}

func TestGet_SharedDependencySameInstance(t *testing.T) {
	shared := api.NewRef("clock")
	left := api.NewRef("billing")
	right := api.NewRef("audit")

	sharedFactory, sharedCount := countingFactory(shared, nil)
	leftFactory, _ := countingFactory(left, api.Deps().Add("clock", shared))
	rightFactory, _ := countingFactory(right, api.Deps().Add("clock", shared))

	r := newTestResolver(t, sharedFactory, leftFactory, rightFactory)
	ctx := context.Background()

	l, _, err := r.Get(ctx, left)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rt, _, err := r.Get(ctx, right)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *sharedCount != 1 {
		t.Errorf("shared dependency constructed %d times, want 1", *sharedCount)
	}
	if l.(*impl).deps["clock"] != rt.(*impl).deps["clock"] {
		t.Error("expected both dependents to share the same clock instance")
	}
}

func TestGet_DependencyOrderAndValues(t *testing.T) {
	depA, depB := api.NewRef("a"), api.NewRef("b")
	top := api.NewRef("top")

	var built []string
	mkLeaf := func(ref *api.Ref) *api.Factory {
		return &api.Factory{
			Implements: ref,
			Construct: func(ctx context.Context, deps map[string]any) (any, error) {
				built = append(built, ref.Name())
				return ref.Name() + "-impl", nil
			},
		}
	}
	topFactory := &api.Factory{
		Implements: top,
		Deps:       api.Deps().Add("a", depA).Add("b", depB),
		Construct: func(ctx context.Context, deps map[string]any) (any, error) {
			built = append(built, "top")
			return deps, nil
		},
	}

	r := newTestResolver(t, mkLeaf(depA), mkLeaf(depB), topFactory)
	v, ok, err := r.Get(context.Background(), top)
	if err != nil || !ok {
		t.Fatalf("expected build, got ok=%v err=%v", ok, err)
	}

	// Dependencies build in slot insertion order, before the dependent.
	if len(built) != 3 || built[0] != "a" || built[1] != "b" || built[2] != "top" {
		t.Fatalf("unexpected construction order: %v", built)
	}

	values := v.(map[string]any)
	if values["a"] != "a-impl" || values["b"] != "b-impl" {
		t.Fatalf("unexpected resolved values: %v", values)
	}
}

// --- cycle tests ---

func TestGet_DirectCycle(t *testing.T) {
	a, b := api.NewRef("a"), api.NewRef("b")
	fa, ca := countingFactory(a, api.Deps().Add("b", b))
	fb, cb := countingFactory(b, api.Deps().Add("a", a))

	r := newTestResolver(t, fa, fb)
	_, _, err := r.Get(context.Background(), a)
	if err == nil {
		t.Fatal("expected circular dependency error")
	}
	if !errors.IsCode(err, errors.ErrCodeCircularDependency) {
		t.Errorf("expected CIRCULAR_DEPENDENCY, got %v", err)
	}
	if *ca != 0 || *cb != 0 {
		t.Error("no factory may be invoked on a cyclic chain")
	}
	if r.CacheSize() != 0 {
		t.Error("expected nothing cached for the failing chain")
	}
}

func TestGet_IndirectCycle(t *testing.T) {
	a, b, c := api.NewRef("a"), api.NewRef("b"), api.NewRef("c")
	fa, _ := countingFactory(a, api.Deps().Add("b", b))
	fb, _ := countingFactory(b, api.Deps().Add("c", c))
	fc, _ := countingFactory(c, api.Deps().Add("a", a))

	for _, start := range []*api.Ref{a, b, c} {
		r := newTestResolver(t, fa, fb, fc)
		_, _, err := r.Get(context.Background(), start)
		if !errors.IsCode(err, errors.ErrCodeCircularDependency) {
			t.Errorf("resolving %s: expected CIRCULAR_DEPENDENCY, got %v", start.Name(), err)
		}
	}
}

func TestGet_CycleErrorCarriesChain(t *testing.T) {
	a, b := api.NewRef("a"), api.NewRef("b")
	fa, _ := countingFactory(a, api.Deps().Add("b", b))
	fb, _ := countingFactory(b, api.Deps().Add("a", a))

	r := newTestResolver(t, fa, fb)
	_, _, err := r.Get(context.Background(), a)

	re, ok := errors.AsResolutionError(err)
	if !ok {
		t.Fatal("expected ResolutionError")
	}
	chain, ok := re.Details["chain"].([]string)
	if !ok {
		t.Fatal("expected chain detail")
	}
	// a -> b -> a, ancestors first.
	if len(chain) != 3 {
		t.Fatalf("expected chain of 3, got %v", chain)
	}
	if !strings.HasPrefix(chain[0], "a[") || !strings.HasPrefix(chain[1], "b[") || !strings.HasPrefix(chain[2], "a[") {
		t.Fatalf("unexpected chain: %v", chain)
	}
}

// --- missing dependency tests ---

func TestGet_MissingDependency(t *testing.T) {
	a, b := api.NewRef("a"), api.NewRef("b")
	fa, ca := countingFactory(a, api.Deps().Add("b", b))

	r := newTestResolver(t, fa)
	_, _, err := r.Get(context.Background(), a)
	if err == nil {
		t.Fatal("expected missing dependency error")
	}
	if !errors.IsCode(err, errors.ErrCodeMissingDependency) {
		t.Errorf("expected MISSING_DEPENDENCY, got %v", err)
	}

	re, _ := errors.AsResolutionError(err)
	missing, _ := re.Details["missing"].(string)
	dependent, _ := re.Details["dependent"].(string)
	if !strings.HasPrefix(missing, "b[") {
		t.Errorf("expected missing ref b, got %q", missing)
	}
	if !strings.HasPrefix(dependent, "a[") {
		t.Errorf("expected dependent ref a, got %q", dependent)
	}
	if *ca != 0 {
		t.Error("dependent factory must not run when a dependency is missing")
	}
}

func TestGet_SiblingsStayCachedAfterFailure(t *testing.T) {
	good, missing := api.NewRef("good"), api.NewRef("missing")
	top := api.NewRef("top")

	goodFactory, goodCount := countingFactory(good, nil)
	topFactory, _ := countingFactory(top, api.Deps().Add("good", good).Add("missing", missing))

	r := newTestResolver(t, goodFactory, topFactory)
	_, _, err := r.Get(context.Background(), top)
	if !errors.IsCode(err, errors.ErrCodeMissingDependency) {
		t.Fatalf("expected MISSING_DEPENDENCY, got %v", err)
	}

	// The sibling fully resolved before the failure stays cached; the
	// failing dependent does not.
	if !r.IsCached(good) {
		t.Error("expected fully-built sibling to remain cached")
	}
	if r.IsCached(top) {
		t.Error("expected no partial cache entry for the failing dependent")
	}

	// A later resolve of the sibling reuses the cache.
	_, _, _ = r.Get(context.Background(), good)
	if *goodCount != 1 {
		t.Errorf("expected sibling constructed once, got %d", *goodCount)
	}
}

// --- close tests ---

type closable struct {
	name   string
	log    *[]string
	failed error
}

func (c *closable) Close() error {
	*c.log = append(*c.log, c.name)
	return c.failed
}

func TestClose_ReverseConstructionOrder(t *testing.T) {
	var closed []string
	dep := api.NewRef("dep")
	top := api.NewRef("top")

	depFactory := &api.Factory{
		Implements: dep,
		Construct: func(ctx context.Context, deps map[string]any) (any, error) {
			return &closable{name: "dep", log: &closed}, nil
		},
	}
	topFactory := &api.Factory{
		Implements: top,
		Deps:       api.Deps().Add("dep", dep),
		Construct: func(ctx context.Context, deps map[string]any) (any, error) {
			return &closable{name: "top", log: &closed}, nil
		},
	}

	r := newTestResolver(t, depFactory, topFactory)
	if _, _, err := r.Get(context.Background(), top); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if len(closed) != 2 || closed[0] != "top" || closed[1] != "dep" {
		t.Fatalf("expected dependents closed first, got %v", closed)
	}
	if r.CacheSize() != 0 {
		t.Error("expected cache cleared after close")
	}
}

func TestClose_JoinsErrors(t *testing.T) {
	var closed []string
	boom := stderrors.New("close failed")
	ref := api.NewRef("flaky")
	factory := &api.Factory{
		Implements: ref,
		Construct: func(ctx context.Context, deps map[string]any) (any, error) {
			return &closable{name: "flaky", log: &closed, failed: boom}, nil
		},
	}

	r := newTestResolver(t, factory)
	_, _, _ = r.Get(context.Background(), ref)

	err := r.Close()
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected close error surfaced, got %v", err)
	}
}

// --- construct failure tests ---

func TestGet_ConstructError(t *testing.T) {
	boom := stderrors.New("boom")
	ref := api.NewRef("flaky")
	factory := &api.Factory{
		Implements: ref,
		Construct: func(ctx context.Context, deps map[string]any) (any, error) {
			return nil, boom
		},
	}

	r := newTestResolver(t, factory)
	_, _, err := r.Get(context.Background(), ref)
	if !errors.IsCode(err, errors.ErrCodeConstructFailed) {
		t.Fatalf("expected CONSTRUCT_FAILED, got %v", err)
	}
	if !stderrors.Is(err, boom) {
		t.Error("expected the factory error in the chain")
	}
	if r.IsCached(ref) {
		t.Error("failed construction must not be cached")
	}
}

package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechdyane/desktop/internal/domain/catalog"
	"github.com/mechdyane/desktop/internal/infrastructure/resilience"
)

type collector struct {
	mu      sync.Mutex
	results []Result
	done    chan struct{}
}

func newCollector(n int) *collector {
	return &collector{done: make(chan struct{}, n)}
}

func (c *collector) post(r Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
	c.done <- struct{}{}
}

func (c *collector) wait(t *testing.T, n int) []Result {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-c.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for result %d", i+1)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Result(nil), c.results...)
}

type recorder struct {
	mu    sync.Mutex
	loads []string
}

func (r *recorder) RecordContentLoad(source, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads = append(r.loads, source+":"+outcome)
}

func TestDispatchPrimary(t *testing.T) {
	c := newCollector(1)
	rec := &recorder{}
	d := NewDispatcher(Config{
		Primary: LoaderFunc(func(_ context.Context, id string) (Panel, error) {
			return Panel{WindowID: id, Kind: "app", Source: "test"}, nil
		}),
		Fallback: CatalogLoader{Catalog: catalog.NewDefault()},
		Metrics:  rec,
	}, c.post)
	defer d.Close()

	require.True(t, d.Dispatch("calc"))
	results := c.wait(t, 1)

	require.NoError(t, results[0].Err)
	assert.False(t, results[0].Fallback)
	assert.Equal(t, "test", results[0].Panel.Source)
	assert.Equal(t, []string{"primary:ok"}, rec.loads)
}

func TestDispatchFallsBackOnTimeout(t *testing.T) {
	c := newCollector(1)
	d := NewDispatcher(Config{
		Primary: LoaderFunc(func(ctx context.Context, _ string) (Panel, error) {
			<-ctx.Done()
			return Panel{}, ctx.Err()
		}),
		Fallback: CatalogLoader{Catalog: catalog.NewDefault()},
		Timeout:  20 * time.Millisecond,
	}, c.post)
	defer d.Close()

	d.Dispatch("calc")
	res := c.wait(t, 1)[0]

	require.NoError(t, res.Err)
	assert.True(t, res.Fallback)
	assert.Equal(t, "Smart Calc", res.Panel.Title)
	assert.Equal(t, "placeholder", res.Panel.Kind)
}

func TestDispatchBreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	breaker := NewBreaker(resilience.Settings{
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 2 },
	})

	c := newCollector(3)
	d := NewDispatcher(Config{
		Primary: LoaderFunc(func(context.Context, string) (Panel, error) {
			calls.Add(1)
			return Panel{}, errors.New("backend down")
		}),
		Fallback: CatalogLoader{},
		Breaker:  breaker,
	}, c.post)
	defer d.Close()

	for _, id := range []string{"a", "b", "c"} {
		d.Dispatch(id)
		c.wait(t, 1)
	}

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, resilience.StateOpen, breaker.State())
}

func TestDispatchMissingContentDoesNotTrip(t *testing.T) {
	breaker := NewBreaker(resilience.Settings{
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 1 },
	})
	c := newCollector(1)
	d := NewDispatcher(Config{
		Primary:  DirLoader{Dir: t.TempDir()},
		Fallback: CatalogLoader{},
		Breaker:  breaker,
	}, c.post)
	defer d.Close()

	d.Dispatch("calc")
	res := c.wait(t, 1)[0]
	assert.True(t, res.Fallback)
	assert.Equal(t, resilience.StateClosed, breaker.State())
}

func TestDispatchDeduplicatesInflight(t *testing.T) {
	release := make(chan struct{})
	c := newCollector(1)
	d := NewDispatcher(Config{
		Primary: LoaderFunc(func(_ context.Context, id string) (Panel, error) {
			<-release
			return Panel{WindowID: id}, nil
		}),
	}, c.post)
	defer d.Close()

	assert.True(t, d.Dispatch("calc"))
	assert.False(t, d.Dispatch("calc"))
	close(release)

	assert.Len(t, c.wait(t, 1), 1)
}

func TestDispatchNoLoaders(t *testing.T) {
	c := newCollector(1)
	d := NewDispatcher(Config{}, c.post)
	defer d.Close()

	d.Dispatch("calc")
	res := c.wait(t, 1)[0]
	assert.ErrorIs(t, res.Err, ErrNoContent)
}

func TestCloseDropsPendingResults(t *testing.T) {
	var posted atomic.Int32
	d := NewDispatcher(Config{
		Primary: LoaderFunc(func(ctx context.Context, _ string) (Panel, error) {
			<-ctx.Done()
			return Panel{}, ctx.Err()
		}),
		Timeout: time.Minute,
	}, func(Result) { posted.Add(1) })

	d.Dispatch("calc")
	d.Close()

	assert.Zero(t, posted.Load())
	assert.False(t, d.Dispatch("timer"))
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "calc.yaml"), []byte("kind: calculator\ntitle: Calc\nprops:\n  mode: scientific\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "timer.json"), []byte(`{"title":"Timer","props":{"minutes":25}}`), 0o644))

	l := DirLoader{Dir: dir}
	ctx := context.Background()

	calc, err := l.Load(ctx, "calc")
	require.NoError(t, err)
	assert.Equal(t, "calculator", calc.Kind)
	assert.Equal(t, "scientific", calc.Props["mode"])
	assert.Equal(t, "calc", calc.WindowID)

	timer, err := l.Load(ctx, "timer")
	require.NoError(t, err)
	assert.Equal(t, "app", timer.Kind)
	assert.Equal(t, "dir", timer.Source)

	_, err = l.Load(ctx, "journal")
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = l.Load(ctx, "../etc/passwd")
	assert.Error(t, err)
}

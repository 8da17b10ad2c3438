package content

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mechdyane/desktop/internal/infrastructure/resilience"
)

// DefaultTimeout bounds a single load
const DefaultTimeout = 5 * time.Second

// Result is a finished load
type Result struct {
	WindowID string
	Panel    Panel
	Err      error
	Fallback bool
	Duration time.Duration
}

// Recorder receives load metrics
type Recorder interface {
	RecordContentLoad(source, outcome string, duration time.Duration)
}

// Config configures a Dispatcher
type Config struct {
	Primary  Loader
	Fallback Loader
	Breaker  *resilience.Breaker
	Timeout  time.Duration
	Logger   *zap.Logger
	Metrics  Recorder
}

// Dispatcher runs loads in the background and reports results through a
// callback
type Dispatcher struct {
	primary  Loader
	fallback Loader
	breaker  *resilience.Breaker
	timeout  time.Duration
	logger   *zap.Logger
	metrics  Recorder

	post func(Result)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]struct{} // Protected by mu
}

// NewDispatcher creates a dispatcher. post is called from the load's
// goroutine and must not block for long.
func NewDispatcher(cfg Config, post func(Result)) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Breaker == nil {
		cfg.Breaker = NewBreaker(resilience.Settings{})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		primary:  cfg.Primary,
		fallback: cfg.Fallback,
		breaker:  cfg.Breaker,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		post:     post,
		ctx:      ctx,
		cancel:   cancel,
		inflight: make(map[string]struct{}),
	}
}

// Dispatch starts loading a window's panel and returns immediately. A load
// already running for the same window is not duplicated.
func (d *Dispatcher) Dispatch(windowID string) bool {
	d.mu.Lock()
	if d.ctx.Err() != nil {
		d.mu.Unlock()
		return false
	}
	if _, busy := d.inflight[windowID]; busy {
		d.mu.Unlock()
		return false
	}
	d.inflight[windowID] = struct{}{}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		res := d.load(windowID)

		d.mu.Lock()
		delete(d.inflight, windowID)
		d.mu.Unlock()

		if d.ctx.Err() != nil {
			return
		}
		d.post(res)
	}()
	return true
}

// Close cancels running loads and waits for their goroutines
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.cancel()
	d.mu.Unlock()
	d.wg.Wait()
}

// NewBreaker returns the breaker used for primary loads. Missing content and
// cancelled loads do not count as failures.
func NewBreaker(settings resilience.Settings) *resilience.Breaker {
	settings.IsFailure = func(err error) bool {
		return err != nil && !errors.Is(err, ErrNoContent) && !errors.Is(err, context.Canceled)
	}
	return resilience.New("content", settings)
}

func (d *Dispatcher) load(windowID string) Result {
	start := time.Now()
	res := Result{WindowID: windowID}

	if d.primary != nil {
		panel, err := resilience.Call(d.breaker, func() (Panel, error) {
			ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
			defer cancel()
			return d.primary.Load(ctx, windowID)
		})
		if err == nil {
			res.Panel = panel
			res.Duration = time.Since(start)
			d.record("primary", "ok", res.Duration)
			return res
		}

		res.Err = err
		d.record("primary", outcome(err), time.Since(start))
		if !errors.Is(err, ErrNoContent) {
			d.logger.Warn("Content load failed",
				zap.String("window", windowID),
				zap.String("breaker", d.breaker.State().String()),
				zap.Error(err))
		}
	}

	if d.fallback == nil {
		if res.Err == nil {
			res.Err = ErrNoContent
		}
		res.Duration = time.Since(start)
		return res
	}

	fstart := time.Now()
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	panel, err := d.fallback.Load(ctx, windowID)
	res.Duration = time.Since(start)
	d.record("fallback", outcome(err), time.Since(fstart))
	if err != nil {
		res.Err = errors.Join(res.Err, err)
		return res
	}

	res.Panel = panel
	res.Fallback = true
	res.Err = nil
	return res
}

func (d *Dispatcher) record(source, result string, duration time.Duration) {
	if d.metrics != nil {
		d.metrics.RecordContentLoad(source, result, duration)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoContent):
		return "empty"
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return "rejected"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

package desktop

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mechdyane/desktop/internal/domain/catalog"
	"github.com/mechdyane/desktop/internal/domain/content"
	"github.com/mechdyane/desktop/internal/domain/geometry"
	"github.com/mechdyane/desktop/internal/domain/gesture"
	"github.com/mechdyane/desktop/internal/domain/shell"
	"github.com/mechdyane/desktop/internal/domain/window"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// ErrStopped is returned when work is submitted to an engine that is not running
var ErrStopped = errors.New("desktop engine stopped")

// DefaultQueueSize bounds pending jobs before submitters block
const DefaultQueueSize = 256

// Recorder receives engine metrics
type Recorder interface {
	RecordGesture(kind, outcome string)
	IncGestureMoves()
	SetWindows(open, minimized int)
	SetSidebarHidden(hidden bool)
}

// Config configures an Engine
type Config struct {
	InitialZ      int
	Home          string
	TaskbarHeight int
	QueueSize     int
	Classifier    geometry.Classifier
	Limits        geometry.Limits
	Defaults      geometry.DefaultProvider
	Viewport      types.Viewport
	Catalog       *catalog.Catalog
	Installed     []string
	Content       *content.Config // nil disables panel loading
	Logger        *zap.Logger
	Metrics       Recorder
}

// Engine is the single logical thread of the desktop
type Engine struct {
	// Owned by the loop goroutine
	registry *window.Registry
	gestures *gesture.Controller
	sidebar  *shell.Sidebar
	router   *shell.Router
	panels   map[string]content.Panel
	dirty    bool

	content       *content.Dispatcher
	catalog       *catalog.Catalog
	installed     []string
	classifier    geometry.Classifier
	taskbarHeight int

	queue   chan job
	done    chan struct{}
	running sync.Once
	stop    sync.Once

	subsMu  sync.Mutex
	subs    map[int]chan types.ShellState // Protected by subsMu
	nextSub int                           // Protected by subsMu

	logger  *zap.Logger
	metrics Recorder
}

// New builds an engine. Call Run to start processing.
func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.TaskbarHeight <= 0 {
		cfg.TaskbarHeight = shell.DefaultTaskbarHeight
	}
	if cfg.Home == "" {
		cfg.Home = "dashboard"
	}
	if cfg.Classifier.Breakpoint <= 0 {
		cfg.Classifier = geometry.Classifier{Breakpoint: 768}
	}
	if cfg.Limits == (geometry.Limits{}) {
		cfg.Limits = geometry.DefaultLimits()
	}
	if cfg.Defaults == nil {
		c := geometry.DefaultCascade()
		c.MobileMin = cfg.Limits.Mobile
		cfg.Defaults = c
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.NewDefault()
	}
	if cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		cfg.Viewport = cfg.Classifier.Classify(cfg.Viewport.Width, cfg.Viewport.Height)
	}

	e := &Engine{
		panels:        make(map[string]content.Panel),
		catalog:       cfg.Catalog,
		installed:     cfg.Installed,
		classifier:    cfg.Classifier,
		taskbarHeight: cfg.TaskbarHeight,
		queue:         make(chan job, cfg.QueueSize),
		done:          make(chan struct{}),
		subs:          make(map[int]chan types.ShellState),
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
	}

	e.registry = window.New(window.Config{
		InitialZ: cfg.InitialZ,
		Viewport: cfg.Viewport,
		Defaults: cfg.Defaults,
		Catalog:  cfg.Catalog,
		Logger:   cfg.Logger.Named("registry"),
	})
	e.gestures = gesture.NewController(e.registry, cfg.Limits, cfg.Logger.Named("gesture"))
	e.gestures.OnAbort(func(s gesture.Session) {
		e.dirty = true
		e.recordGesture(gestureKind(s.Mode), "aborted")
	})
	e.sidebar = shell.NewSidebar(cfg.Home)
	e.router = shell.NewRouter(e.registry)

	if cfg.Content != nil {
		cc := *cfg.Content
		if cc.Logger == nil {
			cc.Logger = cfg.Logger.Named("content")
		}
		e.content = content.NewDispatcher(cc, e.postContent)
	}

	// The gesture controller must see a change before anything that reads
	// the active gesture
	e.registry.Subscribe(e.gestures.HandleChange)
	e.registry.Subscribe(e.onChange)

	e.publishGauges()
	return e
}

// Run processes queued work until ctx is cancelled. It must be called once.
func (e *Engine) Run(ctx context.Context) {
	started := false
	e.running.Do(func() { started = true })
	if !started {
		e.logger.Warn("Engine already running")
		return
	}

	e.logger.Info("Desktop engine started",
		zap.String("viewport", string(e.registry.Viewport().Class)),
		zap.String("home", e.sidebar.Home()))

	defer e.shutdown()
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Desktop engine stopped")
			return
		case j := <-e.queue:
			e.runJob(j)
		}
	}
}

// Done is closed once the engine has stopped
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

func (e *Engine) shutdown() {
	e.stop.Do(func() {
		close(e.done)
		if e.content != nil {
			e.content.Close()
		}

		e.subsMu.Lock()
		for id, ch := range e.subs {
			close(ch)
			delete(e.subs, id)
		}
		e.subsMu.Unlock()
	})
}

// job is one unit of loop work. finished, when set, is closed after the
// resulting state has been broadcast.
type job struct {
	fn       func()
	finished chan struct{}
}

func (e *Engine) runJob(j job) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Engine job panicked", zap.Any("panic", r))
			// A panicking job may leave a gesture half applied
			e.gestures.Abort()
		}
		if e.dirty {
			e.dirty = false
			e.broadcast(e.buildState())
		}
		if j.finished != nil {
			close(j.finished)
		}
	}()
	j.fn()
}

// exec runs fn on the loop goroutine and waits for it to finish
func (e *Engine) exec(ctx context.Context, fn func()) error {
	j := job{fn: fn, finished: make(chan struct{})}

	select {
	case e.queue <- j:
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-j.finished:
		return nil
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post queues fn without waiting. It reports false once the engine stopped.
func (e *Engine) post(fn func()) bool {
	select {
	case e.queue <- job{fn: fn}:
		return true
	case <-e.done:
		return false
	}
}

// onChange runs synchronously inside every registry mutation
func (e *Engine) onChange(ev types.ChangeEvent) {
	e.dirty = true
	e.sidebar.Recompute(e.registry.ListTaskbar(), e.registry.FocusID())
	e.publishGauges()

	switch ev.Kind {
	case types.ChangeOpened:
		delete(e.panels, ev.WindowID)
		e.dispatchContent(ev.WindowID)
	case types.ChangeClosed:
		delete(e.panels, ev.WindowID)
	case types.ChangeReplaced:
		e.panels = make(map[string]content.Panel)
		for _, w := range e.registry.ListTaskbar() {
			e.dispatchContent(w.ID)
		}
	}
}

func (e *Engine) dispatchContent(windowID string) {
	if e.content == nil {
		return
	}
	e.content.Dispatch(windowID)
}

// postContent is called from dispatcher goroutines
func (e *Engine) postContent(res content.Result) {
	e.post(func() {
		w, ok := e.registry.Get(res.WindowID)
		if !ok || !w.IsOpen {
			e.logger.Debug("Dropping content for closed window", zap.String("id", res.WindowID))
			return
		}
		if res.Err != nil {
			e.logger.Warn("Content load failed",
				zap.String("id", res.WindowID),
				zap.Duration("duration", res.Duration),
				zap.Error(res.Err))
			return
		}
		e.panels[res.WindowID] = res.Panel
		e.dirty = true
	})
}

func (e *Engine) publishGauges() {
	if e.metrics == nil {
		return
	}
	stats := e.registry.Stats()
	e.metrics.SetWindows(stats.OpenWindows, stats.MinimizedWindows)
	e.metrics.SetSidebarHidden(e.sidebar.Hidden())
}

// Subscribe returns a channel of shell states and a function that ends the
// subscription. The channel holds at most one pending state.
func (e *Engine) Subscribe() (<-chan types.ShellState, func()) {
	ch := make(chan types.ShellState, 1)

	e.subsMu.Lock()
	select {
	case <-e.done:
		e.subsMu.Unlock()
		close(ch)
		return ch, func() {}
	default:
	}
	sid := e.nextSub
	e.nextSub++
	e.subs[sid] = ch
	e.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.subsMu.Lock()
			defer e.subsMu.Unlock()
			if _, ok := e.subs[sid]; ok {
				delete(e.subs, sid)
				close(ch)
			}
		})
	}
}

func (e *Engine) broadcast(state types.ShellState) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()

	for _, ch := range e.subs {
		// Replace a state the subscriber has not read yet
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}

func (e *Engine) buildState() types.ShellState {
	focus := e.registry.FocusID()
	vp := e.registry.Viewport()

	frames := shell.Frames(e.registry.ListByZ(), focus, vp, e.taskbarHeight)
	for i := range frames {
		if p, ok := e.panels[frames[i].ID]; ok {
			frames[i].Content = p.Kind
		}
	}

	return types.ShellState{
		SidebarHidden: e.sidebar.Hidden(),
		Focus:         focus,
		Viewport:      vp,
		Taskbar:       shell.Taskbar(e.registry.ListTaskbar(), focus),
		Frames:        frames,
		Gesture:       e.gestures.Mode().String(),
	}
}

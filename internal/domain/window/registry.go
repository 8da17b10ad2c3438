package window

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/mechdyane/desktop/internal/domain/geometry"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// DefaultInitialZ is the z counter value before the first window opens
const DefaultInitialZ = 100

// MaxZIndex is the highest z index a restored snapshot may carry, so later
// activations cannot overflow int
const MaxZIndex = 1 << 30

// Catalog resolves display metadata for application ids
type Catalog interface {
	Lookup(id string) (types.CatalogEntry, bool)
}

// Listener receives change notifications
type Listener func(types.ChangeEvent)

// Config configures a Registry
type Config struct {
	InitialZ int
	Viewport types.Viewport
	Defaults geometry.DefaultProvider
	Catalog  Catalog
	Logger   *zap.Logger
}

// Registry owns all window records
type Registry struct {
	windows  map[string]*types.WindowState
	order    []string // Insertion order, used by the taskbar
	focus    *string
	zCounter int
	viewport types.Viewport

	defaults geometry.DefaultProvider
	catalog  Catalog

	listeners    map[int]Listener
	nextListener int

	logger *zap.Logger
}

// New creates an empty registry
func New(cfg Config) *Registry {
	if cfg.InitialZ == 0 {
		cfg.InitialZ = DefaultInitialZ
	}
	if cfg.Defaults == nil {
		cfg.Defaults = geometry.DefaultCascade()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Viewport.Class == "" {
		cfg.Viewport.Class = types.ViewportDesktop
	}

	return &Registry{
		windows:   make(map[string]*types.WindowState),
		zCounter:  cfg.InitialZ,
		viewport:  cfg.Viewport,
		defaults:  cfg.Defaults,
		catalog:   cfg.Catalog,
		listeners: make(map[int]Listener),
		logger:    cfg.Logger,
	}
}

// Subscribe registers a listener and returns a function that removes it
func (r *Registry) Subscribe(l Listener) func() {
	id := r.nextListener
	r.nextListener++
	r.listeners[id] = l

	return func() {
		delete(r.listeners, id)
	}
}

// Open creates, restores, focuses or toggles a window depending on its
// current state and where the request came from.
func (r *Registry) Open(id string, opts OpenOptions) Outcome {
	if id == "" {
		r.reject("open", id, fmt.Errorf("%w: empty id", ErrUnknownWindow))
		return OutcomeRejected
	}

	w, exists := r.windows[id]
	switch {
	case !exists:
		w = r.create(id, opts)
		r.windows[id] = w
		r.order = append(r.order, id)
		r.activate(w)
		r.notify(types.ChangeOpened, id)
		return OutcomeOpened

	case !w.IsOpen:
		r.applyHints(w, opts)
		w.IsOpen = true
		w.IsMinimized = false
		w.IsMaximized = false
		w.Scale = 1
		r.activate(w)
		r.notify(types.ChangeOpened, id)
		return OutcomeOpened

	case w.IsMinimized:
		w.IsMinimized = false
		r.activate(w)
		r.notify(types.ChangeRestored, id)
		return OutcomeRestored

	case r.isFocused(id) && opts.Source.Reactivates():
		w.IsMinimized = true
		r.focus = nil
		r.notify(types.ChangeMinimized, id)
		return OutcomeMinimized

	default:
		r.activate(w)
		r.notify(types.ChangeFocused, id)
		return OutcomeFocused
	}
}

// Close hides a window and keeps its geometry. Closing a closed window is a
// no-op.
func (r *Registry) Close(id string) bool {
	w, ok := r.windows[id]
	if !ok {
		r.reject("close", id, ErrUnknownWindow)
		return false
	}
	if !w.IsOpen {
		return false
	}

	w.IsOpen = false
	if r.isFocused(id) {
		r.focus = nil
	}
	r.notify(types.ChangeClosed, id)
	return true
}

// Minimize hides an open window without forgetting whether it was maximized
func (r *Registry) Minimize(id string) bool {
	w, err := r.lookupVisible(id)
	if err != nil {
		r.reject("minimize", id, err)
		return false
	}

	w.IsMinimized = true
	if r.isFocused(id) {
		r.focus = nil
	}
	r.notify(types.ChangeMinimized, id)
	return true
}

// ToggleMaximize flips the maximized flag and focuses the window
func (r *Registry) ToggleMaximize(id string) bool {
	w, err := r.lookupVisible(id)
	if err != nil {
		r.reject("toggle_maximize", id, err)
		return false
	}

	w.IsMaximized = !w.IsMaximized
	r.activate(w)

	kind := types.ChangeMaximized
	if !w.IsMaximized {
		kind = types.ChangeUnmaximized
	}
	r.notify(kind, id)
	return true
}

// Focus raises a visible window above all others
func (r *Registry) Focus(id string) bool {
	w, err := r.lookupVisible(id)
	if err != nil {
		r.reject("focus", id, err)
		return false
	}

	r.activate(w)
	r.notify(types.ChangeFocused, id)
	return true
}

// SetGeometry stores a new position and size. Only the gesture controller
// calls it, and only for visible windows that are not maximized.
func (r *Registry) SetGeometry(id string, rect types.Rect) bool {
	w, err := r.lookupVisible(id)
	if err != nil {
		r.reject("set_geometry", id, err)
		return false
	}
	if w.IsMaximized {
		r.reject("set_geometry", id, fmt.Errorf("%w: window is maximized", ErrInvalidTransition))
		return false
	}

	w.Position = rect.Position
	w.Size = rect.Size
	r.notify(types.ChangeGeometry, id)
	return true
}

// Zoom applies one wheel step to the content scale and returns the result
func (r *Registry) Zoom(id string, deltaY float64) (float64, bool) {
	w, err := r.lookupVisible(id)
	if err != nil {
		r.reject("zoom", id, err)
		return 0, false
	}
	return r.setScale(w, geometry.Zoom(w.Scale, deltaY)), true
}

// SetScale sets the content scale, clamped to the allowed range. Like every
// other command it requires a visible window.
func (r *Registry) SetScale(id string, scale float64) (float64, bool) {
	w, err := r.lookupVisible(id)
	if err != nil {
		r.reject("set_scale", id, err)
		return 0, false
	}
	return r.setScale(w, geometry.ClampScale(scale)), true
}

// ResetScale returns the content scale to 1
func (r *Registry) ResetScale(id string) bool {
	_, ok := r.SetScale(id, 1)
	return ok
}

func (r *Registry) setScale(w *types.WindowState, scale float64) float64 {
	if w.Scale == scale {
		return scale
	}
	w.Scale = scale
	r.notify(types.ChangeScaled, w.ID)
	return scale
}

// SetViewport records the display size. While the viewport is mobile,
// every size change refits open windows that are not maximized.
func (r *Registry) SetViewport(vp types.Viewport) {
	prev := r.viewport
	r.viewport = vp

	if prev == vp {
		return
	}

	for _, id := range r.order {
		w := r.windows[id]
		if !w.IsOpen || w.IsMaximized {
			continue
		}
		if size, ok := r.defaults.Refit(w.Size, vp); ok {
			w.Size = size
		}
	}
	r.notify(types.ChangeViewport, "")
}

// Viewport returns the current display description
func (r *Registry) Viewport() types.Viewport {
	return r.viewport
}

// create builds a record with catalog metadata and cascade geometry. The
// geometry is keyed on the z index the window is about to receive.
func (r *Registry) create(id string, opts OpenOptions) *types.WindowState {
	rect := r.defaults.Default(r.zCounter+1, r.viewport)

	w := &types.WindowState{
		ID:       id,
		Position: rect.Position,
		Size:     rect.Size,
		Scale:    1,
		IsOpen:   true,
	}
	r.applyHints(w, opts)
	return w
}

func (r *Registry) applyHints(w *types.WindowState, opts OpenOptions) {
	var entry types.CatalogEntry
	found := false
	if r.catalog != nil {
		entry, found = r.catalog.Lookup(w.ID)
	}

	switch {
	case opts.Title != "":
		w.Title = opts.Title
	case found && entry.Name != "":
		w.Title = entry.Name
	case w.Title == "":
		w.Title = w.ID
	}

	switch {
	case opts.Icon != "":
		w.Icon = opts.Icon
	case found && entry.Icon != "":
		w.Icon = entry.Icon
	case w.Icon == "":
		w.Icon = "fa-cube"
	}

	if !found && opts.Title == "" {
		r.logger.Debug("Opening window without catalog entry",
			zap.String("id", w.ID),
			zap.Error(ErrUnknownWindow))
	}
}

// activate assigns a fresh z index and moves focus to the window
func (r *Registry) activate(w *types.WindowState) {
	r.zCounter++
	w.ZIndex = r.zCounter
	id := w.ID
	r.focus = &id
}

func (r *Registry) isFocused(id string) bool {
	return r.focus != nil && *r.focus == id
}

func (r *Registry) lookupVisible(id string) (*types.WindowState, error) {
	w, ok := r.windows[id]
	if !ok {
		return nil, ErrUnknownWindow
	}
	if !w.IsOpen {
		return nil, fmt.Errorf("%w: window is closed", ErrInvalidTransition)
	}
	if w.IsMinimized {
		return nil, fmt.Errorf("%w: window is minimized", ErrInvalidTransition)
	}
	return w, nil
}

func (r *Registry) reject(op, id string, err error) {
	r.logger.Debug("Window command ignored",
		zap.String("op", op),
		zap.String("id", id),
		zap.Error(err))
}

func (r *Registry) notify(kind types.ChangeKind, id string) {
	if len(r.listeners) == 0 {
		return
	}

	// Listeners may unsubscribe while being called
	ids := make([]int, 0, len(r.listeners))
	for lid := range r.listeners {
		ids = append(ids, lid)
	}
	slices.Sort(ids)

	ev := types.ChangeEvent{Kind: kind, WindowID: id}
	for _, lid := range ids {
		if l, ok := r.listeners[lid]; ok {
			l(ev)
		}
	}
}

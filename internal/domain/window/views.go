package window

import (
	"fmt"
	"slices"

	"github.com/mechdyane/desktop/internal/domain/geometry"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// Get returns a copy of a window record
func (r *Registry) Get(id string) (types.WindowState, bool) {
	w, ok := r.windows[id]
	if !ok {
		return types.WindowState{}, false
	}
	return *w, true
}

// Focused returns the focused window, if any
func (r *Registry) Focused() (types.WindowState, bool) {
	if r.focus == nil {
		return types.WindowState{}, false
	}
	return r.Get(*r.focus)
}

// FocusID returns the focused window id or nil
func (r *Registry) FocusID() *string {
	if r.focus == nil {
		return nil
	}
	id := *r.focus
	return &id
}

// ListByZ returns open windows ordered bottom to top
func (r *Registry) ListByZ() []types.WindowState {
	out := r.ListTaskbar()
	slices.SortStableFunc(out, func(a, b types.WindowState) int {
		return a.ZIndex - b.ZIndex
	})
	return out
}

// ListTaskbar returns open windows in the order they were first opened
func (r *Registry) ListTaskbar() []types.WindowState {
	out := make([]types.WindowState, 0, len(r.order))
	for _, id := range r.order {
		if w := r.windows[id]; w.IsOpen {
			out = append(out, *w)
		}
	}
	return out
}

// Stats returns registry statistics
func (r *Registry) Stats() types.Stats {
	stats := types.Stats{
		TotalWindows:    len(r.windows),
		FocusedWindowID: r.FocusID(),
		ZCounter:        r.zCounter,
	}
	for _, w := range r.windows {
		if !w.IsOpen {
			continue
		}
		stats.OpenWindows++
		if w.IsMinimized {
			stats.MinimizedWindows++
		}
		if w.IsMaximized {
			stats.MaximizedWindows++
		}
	}
	return stats
}

// Snapshot returns a deep copy of the registry state
func (r *Registry) Snapshot() types.RegistrySnapshot {
	snap := types.RegistrySnapshot{
		Windows:  make([]types.WindowState, 0, len(r.order)),
		Focus:    r.FocusID(),
		ZCounter: r.zCounter,
	}
	for _, id := range r.order {
		snap.Windows = append(snap.Windows, *r.windows[id])
	}
	return snap
}

// Restore replaces the registry contents with a snapshot. The stored state
// is repaired rather than trusted: scales are clamped, open windows get
// distinct z indices, the z counter never goes below the highest stored
// index, and a focus that points at a hidden window is dropped.
func (r *Registry) Restore(snap types.RegistrySnapshot) error {
	windows := make(map[string]*types.WindowState, len(snap.Windows))
	order := make([]string, 0, len(snap.Windows))

	if snap.ZCounter < 0 || snap.ZCounter > MaxZIndex {
		return fmt.Errorf("%w: z counter %d out of range", ErrInvalidSnapshot, snap.ZCounter)
	}

	zCounter := snap.ZCounter
	for i := range snap.Windows {
		w := snap.Windows[i]
		if w.ID == "" {
			return fmt.Errorf("%w: window %d has no id", ErrInvalidSnapshot, i)
		}
		if _, dup := windows[w.ID]; dup {
			return fmt.Errorf("%w: duplicate window %q", ErrInvalidSnapshot, w.ID)
		}
		if w.ZIndex < 0 || w.ZIndex > MaxZIndex {
			return fmt.Errorf("%w: window %q z index %d out of range", ErrInvalidSnapshot, w.ID, w.ZIndex)
		}
		if w.Scale == 0 {
			w.Scale = 1
		}
		w.Scale = geometry.ClampScale(w.Scale)
		zCounter = max(zCounter, w.ZIndex)

		windows[w.ID] = &w
		order = append(order, w.ID)
	}

	r.windows = windows
	r.order = order
	r.zCounter = zCounter
	r.focus = nil

	r.renumberOpen()

	if snap.Focus != nil {
		if w, ok := r.windows[*snap.Focus]; ok && w.Visible() {
			if top := r.topOpen(); top == nil || top.ID != w.ID {
				r.zCounter++
				w.ZIndex = r.zCounter
			}
			id := w.ID
			r.focus = &id
		}
	}

	r.notify(types.ChangeReplaced, "")
	return nil
}

// renumberOpen gives open windows strictly increasing z indices above the
// counter when the stored ones collide, keeping their relative order.
func (r *Registry) renumberOpen() {
	open := r.ListByZ()
	distinct := true
	for i := 1; i < len(open); i++ {
		if open[i].ZIndex == open[i-1].ZIndex {
			distinct = false
			break
		}
	}
	if distinct {
		return
	}

	for _, w := range open {
		r.zCounter++
		r.windows[w.ID].ZIndex = r.zCounter
	}
}

func (r *Registry) topOpen() *types.WindowState {
	var top *types.WindowState
	for _, w := range r.windows {
		if w.IsOpen && (top == nil || w.ZIndex > top.ZIndex) {
			top = w
		}
	}
	return top
}

// Validate checks the registry invariants and reports the first violation
func (r *Registry) Validate() error {
	seen := make(map[int]string)
	maxOpen := 0
	for _, id := range r.order {
		w := r.windows[id]
		if w.Scale < geometry.MinScale || w.Scale > geometry.MaxScale {
			return fmt.Errorf("window %q scale %v out of range", id, w.Scale)
		}
		if !w.IsOpen {
			continue
		}
		if other, dup := seen[w.ZIndex]; dup {
			return fmt.Errorf("windows %q and %q share z index %d", other, id, w.ZIndex)
		}
		seen[w.ZIndex] = id
		if w.ZIndex > r.zCounter {
			return fmt.Errorf("window %q z index %d above counter %d", id, w.ZIndex, r.zCounter)
		}
		maxOpen = max(maxOpen, w.ZIndex)
	}

	if r.focus != nil {
		w, ok := r.windows[*r.focus]
		if !ok || !w.Visible() {
			return fmt.Errorf("focus %q is not a visible window", *r.focus)
		}
		if w.ZIndex != maxOpen {
			return fmt.Errorf("focused window %q is not on top", *r.focus)
		}
	}
	return nil
}

package desktop

import (
	"context"

	"github.com/mechdyane/desktop/internal/domain/window"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// Open runs the registry's open command
func (e *Engine) Open(ctx context.Context, id string, opts window.OpenOptions) (window.Outcome, error) {
	var outcome window.Outcome
	err := e.exec(ctx, func() {
		outcome = e.registry.Open(id, opts)
	})
	return outcome, err
}

// Close closes a window. Closing an already closed window reports false.
func (e *Engine) Close(ctx context.Context, id string) (bool, error) {
	return e.command(ctx, func() bool { return e.registry.Close(id) })
}

// Minimize minimizes a visible window
func (e *Engine) Minimize(ctx context.Context, id string) (bool, error) {
	return e.command(ctx, func() bool { return e.registry.Minimize(id) })
}

// ToggleMaximize maximizes or restores a visible window
func (e *Engine) ToggleMaximize(ctx context.Context, id string) (bool, error) {
	return e.command(ctx, func() bool { return e.registry.ToggleMaximize(id) })
}

// Focus raises a visible window
func (e *Engine) Focus(ctx context.Context, id string) (bool, error) {
	return e.command(ctx, func() bool { return e.registry.Focus(id) })
}

// ResetScale returns a window's content scale to 1
func (e *Engine) ResetScale(ctx context.Context, id string) (bool, error) {
	return e.command(ctx, func() bool { return e.registry.ResetScale(id) })
}

// SetScale sets a window's content scale and returns the clamped value
func (e *Engine) SetScale(ctx context.Context, id string, scale float64) (float64, bool, error) {
	var (
		applied float64
		ok      bool
	)
	err := e.exec(ctx, func() {
		applied, ok = e.registry.SetScale(id, scale)
	})
	return applied, ok, err
}

// SetViewport classifies and applies a new display size
func (e *Engine) SetViewport(ctx context.Context, width, height int) (types.Viewport, error) {
	vp := e.classifier.Classify(width, height)
	err := e.exec(ctx, func() {
		e.registry.SetViewport(vp)
	})
	return vp, err
}

// Click identifies the shell element a click came from
type Click string

const (
	ClickTaskbar      Click = "taskbar"
	ClickTaskbarClose Click = "taskbar_close"
	ClickSidebar      Click = "sidebar"
	ClickDesktop      Click = "desktop"
	ClickSearch       Click = "search"
	ClickShortcut     Click = "shortcut"
)

// HandleClick routes a shell click to the matching registry command. The
// second result is false when the click was not recognised.
func (e *Engine) HandleClick(ctx context.Context, click Click, target string) (window.Outcome, bool, error) {
	var (
		outcome = window.OutcomeRejected
		known   = true
	)
	err := e.exec(ctx, func() {
		switch click {
		case ClickTaskbar:
			outcome = e.router.TaskbarClick(target)
		case ClickTaskbarClose:
			if e.router.TaskbarClose(target) {
				outcome = window.OutcomeClosed
			}
		case ClickSidebar:
			outcome = e.router.SidebarClick(target)
		case ClickDesktop:
			outcome = e.router.DesktopClick(target)
		case ClickSearch:
			outcome = e.router.SearchLaunch(target)
		case ClickShortcut:
			var err error
			if outcome, err = e.router.Shortcut(target); err != nil {
				known = false
			}
		default:
			known = false
		}
	})
	return outcome, known, err
}

// Snapshot returns a copy of the registry state
func (e *Engine) Snapshot(ctx context.Context) (types.RegistrySnapshot, error) {
	var snap types.RegistrySnapshot
	err := e.exec(ctx, func() {
		snap = e.registry.Snapshot()
	})
	return snap, err
}

// Restore replaces the registry with a snapshot. Any gesture in progress is
// abandoned and panel content is reloaded for open windows.
func (e *Engine) Restore(ctx context.Context, snap types.RegistrySnapshot) error {
	var restoreErr error
	if err := e.exec(ctx, func() {
		restoreErr = e.registry.Restore(snap)
	}); err != nil {
		return err
	}
	return restoreErr
}

func (e *Engine) command(ctx context.Context, fn func() bool) (bool, error) {
	var ok bool
	err := e.exec(ctx, func() {
		ok = fn()
	})
	return ok, err
}

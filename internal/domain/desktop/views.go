package desktop

import (
	"context"

	"github.com/mechdyane/desktop/internal/domain/content"
	"github.com/mechdyane/desktop/internal/domain/shell"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// Order selects how window listings are sorted
type Order string

const (
	OrderZ       Order = "z"
	OrderTaskbar Order = "taskbar"
)

// Windows lists open windows bottom to top, or in taskbar order
func (e *Engine) Windows(ctx context.Context, order Order) ([]types.WindowState, error) {
	var out []types.WindowState
	err := e.exec(ctx, func() {
		if order == OrderTaskbar {
			out = e.registry.ListTaskbar()
			return
		}
		out = e.registry.ListByZ()
	})
	return out, err
}

// Window returns one window record
func (e *Engine) Window(ctx context.Context, id string) (types.WindowState, bool, error) {
	var (
		w  types.WindowState
		ok bool
	)
	err := e.exec(ctx, func() {
		w, ok = e.registry.Get(id)
	})
	return w, ok, err
}

// Panel returns the loaded content of an open window
func (e *Engine) Panel(ctx context.Context, id string) (content.Panel, bool, error) {
	var (
		p  content.Panel
		ok bool
	)
	err := e.exec(ctx, func() {
		p, ok = e.panels[id]
	})
	return p, ok, err
}

// State returns the current shell state
func (e *Engine) State(ctx context.Context) (types.ShellState, error) {
	var state types.ShellState
	err := e.exec(ctx, func() {
		state = e.buildState()
	})
	return state, err
}

// Stats returns registry statistics
func (e *Engine) Stats(ctx context.Context) (types.Stats, error) {
	var stats types.Stats
	err := e.exec(ctx, func() {
		stats = e.registry.Stats()
	})
	return stats, err
}

// Validate checks registry invariants on the loop goroutine
func (e *Engine) Validate(ctx context.Context) error {
	var verr error
	if err := e.exec(ctx, func() {
		verr = e.registry.Validate()
	}); err != nil {
		return err
	}
	return verr
}

// Catalog returns every catalog entry. The catalog is safe for concurrent
// use and is read without going through the loop.
func (e *Engine) Catalog() []types.CatalogEntry {
	return e.catalog.List()
}

// Search runs the launcher search over the catalog
func (e *Engine) Search(query string) []types.SearchResult {
	return shell.Search(e.catalog.List(), query)
}

// DesktopIcons returns the launchable icons shown on the desktop
func (e *Engine) DesktopIcons() []types.DesktopIcon {
	return shell.DesktopIcons(e.catalog.List(), e.installed)
}

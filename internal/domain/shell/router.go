package shell

import (
	"fmt"

	"github.com/mechdyane/desktop/internal/domain/window"
)

// Commands is the part of the registry that UI clicks drive
type Commands interface {
	Open(id string, opts window.OpenOptions) window.Outcome
	Close(id string) bool
}

// Tray shortcuts open fixed system windows
var shortcuts = map[string]string{
	"control-panel": "control-panel",
	"calendar":      "calendar",
}

// Router maps shell clicks onto registry commands
type Router struct {
	cmds Commands
}

// NewRouter creates a router for a registry
func NewRouter(cmds Commands) *Router {
	return &Router{cmds: cmds}
}

// TaskbarClick toggles, restores or focuses a taskbar entry
func (r *Router) TaskbarClick(id string) window.Outcome {
	return r.cmds.Open(id, window.OpenOptions{Source: window.SourceTaskbar})
}

// TaskbarClose closes a window from its taskbar entry
func (r *Router) TaskbarClose(id string) bool {
	return r.cmds.Close(id)
}

// SidebarClick launches or toggles an app from the sidebar
func (r *Router) SidebarClick(id string) window.Outcome {
	return r.cmds.Open(id, window.OpenOptions{Source: window.SourceSidebar})
}

// DesktopClick launches an app from its desktop icon
func (r *Router) DesktopClick(id string) window.Outcome {
	return r.cmds.Open(id, window.OpenOptions{Source: window.SourceDesktop})
}

// SearchLaunch opens the app picked in the launcher search
func (r *Router) SearchLaunch(id string) window.Outcome {
	return r.cmds.Open(id, window.OpenOptions{Source: window.SourceSearch})
}

// Shortcut opens the window behind a tray shortcut
func (r *Router) Shortcut(name string) (window.Outcome, error) {
	id, ok := shortcuts[name]
	if !ok {
		return window.OutcomeRejected, fmt.Errorf("unknown shortcut %q", name)
	}
	return r.cmds.Open(id, window.OpenOptions{Source: window.SourceShortcut}), nil
}

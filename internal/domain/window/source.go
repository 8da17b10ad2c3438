package window

import "fmt"

// Source identifies the UI surface that issued an Open
type Source string

const (
	SourceAPI      Source = "api"
	SourceTaskbar  Source = "taskbar"
	SourceSidebar  Source = "sidebar"
	SourceDesktop  Source = "desktop"
	SourceSearch   Source = "search"
	SourceShortcut Source = "shortcut"
)

// ParseSource converts a wire value into a Source. Empty means SourceAPI.
func ParseSource(s string) (Source, error) {
	switch src := Source(s); src {
	case "":
		return SourceAPI, nil
	case SourceAPI, SourceTaskbar, SourceSidebar, SourceDesktop, SourceSearch, SourceShortcut:
		return src, nil
	default:
		return "", fmt.Errorf("unknown open source %q", s)
	}
}

// Reactivates reports whether clicking an already focused window from this
// source minimizes it instead of focusing it again.
func (s Source) Reactivates() bool {
	return s == SourceTaskbar || s == SourceSidebar
}

// OpenOptions carries optional hints for Open
type OpenOptions struct {
	Title  string
	Icon   string
	Source Source
}

// Outcome is what an Open call did
type Outcome string

const (
	OutcomeOpened    Outcome = "opened"
	OutcomeRestored  Outcome = "restored"
	OutcomeFocused   Outcome = "focused"
	OutcomeMinimized Outcome = "minimized"
	OutcomeRejected  Outcome = "rejected"
	OutcomeClosed    Outcome = "closed" // Taskbar close clicks only
)

package shell

import "github.com/mechdyane/desktop/internal/shared/types"

// Visibility is the outcome of the sidebar policy
type Visibility uint8

const (
	Retain Visibility = iota
	Hide
	Show
)

func (v Visibility) String() string {
	switch v {
	case Hide:
		return "hide"
	case Show:
		return "show"
	default:
		return "retain"
	}
}

// Decide evaluates the sidebar policy for the open windows and focus.
//
// The sidebar hides when a visible window is maximized, or when a window
// other than home has focus. It shows when nothing is visible. Any other
// state keeps whatever the sidebar currently shows.
func Decide(open []types.WindowState, focus *string, home string) Visibility {
	visible := 0
	for _, w := range open {
		if !w.Visible() {
			continue
		}
		visible++
		if w.IsMaximized {
			return Hide
		}
	}

	if len(open) > 0 && focus != nil && *focus != home {
		for _, w := range open {
			if w.ID == *focus && w.Visible() {
				return Hide
			}
		}
	}

	if visible == 0 {
		return Show
	}
	return Retain
}

// Sidebar holds the current sidebar visibility
type Sidebar struct {
	home   string
	hidden bool
}

// NewSidebar creates a visible sidebar that treats home as the desktop's
// landing window
func NewSidebar(home string) *Sidebar {
	return &Sidebar{home: home}
}

// Recompute applies the policy and reports the decision
func (s *Sidebar) Recompute(open []types.WindowState, focus *string) Visibility {
	v := Decide(open, focus, s.home)
	switch v {
	case Hide:
		s.hidden = true
	case Show:
		s.hidden = false
	}
	return v
}

// Hidden reports whether the sidebar is hidden
func (s *Sidebar) Hidden() bool {
	return s.hidden
}

// Home returns the home window id
func (s *Sidebar) Home() string {
	return s.home
}

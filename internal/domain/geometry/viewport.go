package geometry

import "github.com/mechdyane/desktop/internal/shared/types"

// Limits holds the minimum window size for each viewport class
type Limits struct {
	Desktop types.Size
	Mobile  types.Size
}

// DefaultLimits returns the minimum sizes used by the desktop shell
func DefaultLimits() Limits {
	return Limits{
		Desktop: types.Size{Width: 320, Height: 180},
		Mobile:  types.Size{Width: 260, Height: 120},
	}
}

// For returns the minimum size for a viewport class
func (l Limits) For(class types.ViewportClass) types.Size {
	if class == types.ViewportMobile {
		return l.Mobile
	}
	return l.Desktop
}

// Classifier resolves a display size into a viewport class
type Classifier struct {
	Breakpoint int // Widths below this are mobile
}

// Classify builds a Viewport with its class resolved
func (c Classifier) Classify(width, height int) types.Viewport {
	class := types.ViewportDesktop
	if width < c.Breakpoint {
		class = types.ViewportMobile
	}
	return types.Viewport{Width: width, Height: height, Class: class}
}

// MaximizedRect is the geometry of a maximized window. It is derived from the
// viewport every time and never stored.
func MaximizedRect(vp types.Viewport, taskbarHeight int) types.Rect {
	return types.Rect{
		Position: types.Position{X: 0, Y: 0},
		Size: types.Size{
			Width:  vp.Width,
			Height: max(0, vp.Height-taskbarHeight),
		},
	}
}

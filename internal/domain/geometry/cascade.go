package geometry

import "github.com/mechdyane/desktop/internal/shared/types"

// DefaultProvider assigns the initial geometry of a newly created window
type DefaultProvider interface {
	Default(zIndex int, vp types.Viewport) types.Rect
	// Refit returns the size an open window takes when the viewport
	// switches class. ok is false when the size should be left alone.
	Refit(current types.Size, vp types.Viewport) (size types.Size, ok bool)
}

// Cascade staggers new desktop windows diagonally so they never open exactly
// on top of each other. Mobile windows fill the viewport minus a margin.
type Cascade struct {
	Origin      types.Position
	Step        int
	Steps       int // Offsets repeat every Steps windows
	DesktopSize types.Size

	MobileMargin      int
	MobileBottomInset int        // Room kept free for the taskbar on first open
	MobileRefitInset  int        // Room kept free when refitting after a viewport change
	MobileMin         types.Size // Mobile sizes never go below this
}

// DefaultCascade returns the cascade used by the desktop shell
func DefaultCascade() Cascade {
	return Cascade{
		Origin:            types.Position{X: 100, Y: 60},
		Step:              15,
		Steps:             15,
		DesktopSize:       types.Size{Width: 800, Height: 550},
		MobileMargin:      8,
		MobileBottomInset: 120,
		MobileRefitInset:  130,
		MobileMin:         DefaultLimits().Mobile,
	}
}

// Default implements DefaultProvider
func (c Cascade) Default(zIndex int, vp types.Viewport) types.Rect {
	if vp.Class == types.ViewportMobile {
		return types.Rect{
			Position: types.Position{X: c.MobileMargin, Y: c.MobileMargin},
			Size:     c.mobileSize(vp, c.MobileBottomInset),
		}
	}

	steps := c.Steps
	if steps <= 0 {
		steps = 1
	}
	offset := mod(zIndex, steps) * c.Step

	return types.Rect{
		Position: types.Position{X: c.Origin.X + offset, Y: c.Origin.Y + offset},
		Size:     c.DesktopSize,
	}
}

// Refit implements DefaultProvider
func (c Cascade) Refit(current types.Size, vp types.Viewport) (types.Size, bool) {
	if vp.Class != types.ViewportMobile {
		return current, false
	}
	return c.mobileSize(vp, c.MobileRefitInset), true
}

func (c Cascade) mobileSize(vp types.Viewport, inset int) types.Size {
	return types.Size{
		Width:  max(c.MobileMin.Width, vp.Width-2*c.MobileMargin),
		Height: max(c.MobileMin.Height, vp.Height-inset),
	}
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

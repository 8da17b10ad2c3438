package gesture

import (
	"github.com/mechdyane/desktop/internal/domain/geometry"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// Mode is the kind of gesture in progress
type Mode uint8

const (
	ModeNone Mode = iota
	ModeDragging
	ModeResizing
)

func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	default:
		return "none"
	}
}

// Session is the state captured at pointer-down
type Session struct {
	Mode      Mode
	WindowID  string
	PointerID int64
	Pointer   types.Position     // Pointer at gesture start
	Origin    types.Rect         // Window geometry at gesture start
	Direction geometry.Direction // Resize only
	Limit     types.Size         // Minimum size for the viewport class at start
}

// apply computes the window geometry for the pointer at the given position
func (s Session) apply(at types.Position) types.Rect {
	dx := at.X - s.Pointer.X
	dy := at.Y - s.Pointer.Y

	switch s.Mode {
	case ModeDragging:
		return types.Rect{Position: geometry.Translate(s.Origin.Position, dx, dy), Size: s.Origin.Size}
	case ModeResizing:
		return geometry.Resize(s.Origin, s.Direction, dx, dy, s.Limit)
	default:
		return s.Origin
	}
}

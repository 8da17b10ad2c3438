package geometry

import (
	"math"

	"github.com/mechdyane/desktop/internal/shared/types"
)

const (
	// MinScale and MaxScale bound the per-window content scale
	MinScale = 0.4
	MaxScale = 2.0

	// wheelNotch is the wheel delta of one detent on most mice
	wheelNotch = 120.0
	zoomBase   = 1.1
)

// Translate moves a position by a pointer delta. Drags are never clamped,
// so windows may leave the viewport entirely.
func Translate(start types.Position, dx, dy int) types.Position {
	return types.Position{X: start.X + dx, Y: start.Y + dy}
}

// Resize applies a directional resize to the geometry captured at gesture start.
// The opposite edge of every moved west/north edge stays fixed once the
// minimum clamps.
func Resize(start types.Rect, dir Direction, dx, dy int, limit types.Size) types.Rect {
	out := start

	if dir.Has(East) {
		out.Width = max(limit.Width, start.Width+dx)
	}
	if dir.Has(South) {
		out.Height = max(limit.Height, start.Height+dy)
	}
	if dir.Has(West) {
		delta := min(start.Width-limit.Width, dx)
		out.Width = start.Width - delta
		out.X = start.X + delta
	}
	if dir.Has(North) {
		delta := min(start.Height-limit.Height, dy)
		out.Height = start.Height - delta
		out.Y = start.Y + delta
	}

	return out
}

// ClampScale bounds a content scale to [MinScale, MaxScale]
func ClampScale(scale float64) float64 {
	if math.IsNaN(scale) {
		return 1
	}
	return math.Max(MinScale, math.Min(MaxScale, scale))
}

// Zoom returns the scale after a wheel delta. Scrolling up (negative deltaY)
// zooms in; one notch changes the scale by 10%.
func Zoom(scale float64, deltaY float64) float64 {
	factor := math.Pow(zoomBase, -deltaY/wheelNotch)
	return ClampScale(scale * factor)
}

package desktop

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mechdyane/desktop/internal/domain/gesture"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// Region is the part of a window frame a pointer went down on
type Region string

const (
	RegionContent  Region = "content"
	RegionTitleBar Region = "titlebar"
	RegionResize   Region = "resize"
)

// PointerDown describes a pointer press on a window
type PointerDown struct {
	WindowID  string
	PointerID int64
	At        types.Position
	Region    Region
	Direction string // Resize handle token, e.g. "se"
}

// PointerDown focuses the window and, for the title bar or a resize handle,
// starts a gesture. Focus is applied before the gesture captures geometry.
func (e *Engine) PointerDown(ctx context.Context, ev PointerDown) error {
	return e.exec(ctx, func() {
		if !e.registry.Focus(ev.WindowID) {
			return
		}

		var (
			kind string
			err  error
		)
		switch ev.Region {
		case RegionTitleBar:
			kind = "drag"
			err = e.gestures.BeginDrag(ev.WindowID, ev.PointerID, ev.At)
		case RegionResize:
			kind = "resize"
			err = e.gestures.BeginResize(ev.WindowID, ev.PointerID, ev.At, ev.Direction)
		default:
			return
		}

		if err != nil {
			e.gestureRejected(kind, ev.WindowID, err)
			return
		}
		e.dirty = true
		e.recordGesture(kind, "started")
	})
}

// PointerMove updates the active gesture
func (e *Engine) PointerMove(ctx context.Context, pointerID int64, at types.Position) error {
	return e.exec(ctx, func() {
		if _, err := e.gestures.Move(pointerID, at); err != nil {
			e.logger.Debug("Pointer move ignored", zap.Int64("pointer", pointerID), zap.Error(err))
			return
		}
		if e.metrics != nil {
			e.metrics.IncGestureMoves()
		}
	})
}

// PointerUp commits the final position and ends the gesture
func (e *Engine) PointerUp(ctx context.Context, pointerID int64, at types.Position) error {
	return e.exec(ctx, func() {
		s, active := e.gestures.Active()
		if _, err := e.gestures.End(pointerID, at); err != nil {
			e.logger.Debug("Pointer up ignored", zap.Int64("pointer", pointerID), zap.Error(err))
			return
		}
		e.dirty = true
		if active {
			e.recordGesture(gestureKind(s.Mode), "completed")
		}
	})
}

// PointerCancel ends the gesture, keeping geometry committed so far
func (e *Engine) PointerCancel(ctx context.Context, pointerID int64) error {
	return e.endWithout(ctx, pointerID, "cancelled", e.gestures.Cancel)
}

// LostCapture ends the gesture when the pointer capture is lost
func (e *Engine) LostCapture(ctx context.Context, pointerID int64) error {
	return e.endWithout(ctx, pointerID, "lost_capture", e.gestures.LostCapture)
}

func (e *Engine) endWithout(ctx context.Context, pointerID int64, outcome string, end func(int64) error) error {
	return e.exec(ctx, func() {
		s, active := e.gestures.Active()
		if err := end(pointerID); err != nil {
			e.logger.Debug("Pointer release ignored",
				zap.String("outcome", outcome),
				zap.Int64("pointer", pointerID),
				zap.Error(err))
			return
		}
		e.dirty = true
		if active {
			e.recordGesture(gestureKind(s.Mode), outcome)
		}
	})
}

// Wheel applies a zoom-intent wheel event and returns the resulting scale.
// ok is false when the event was not treated as zoom.
func (e *Engine) Wheel(ctx context.Context, windowID string, deltaY float64, ctrl bool) (scale float64, ok bool, err error) {
	err = e.exec(ctx, func() {
		scale, ok = e.gestures.Wheel(windowID, deltaY, ctrl)
	})
	return scale, ok, err
}

func (e *Engine) gestureRejected(kind, windowID string, err error) {
	outcome := "rejected"
	if errors.Is(err, gesture.ErrInvalidDirection) {
		outcome = "invalid_direction"
	}
	e.recordGesture(kind, outcome)
	e.logger.Debug("Gesture not started",
		zap.String("kind", kind),
		zap.String("window", windowID),
		zap.Error(err))
}

func (e *Engine) recordGesture(kind, outcome string) {
	if e.metrics != nil {
		e.metrics.RecordGesture(kind, outcome)
	}
}

func gestureKind(m gesture.Mode) string {
	if m == gesture.ModeResizing {
		return "resize"
	}
	return "drag"
}

package gesture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechdyane/desktop/internal/domain/geometry"
	"github.com/mechdyane/desktop/internal/domain/window"
	"github.com/mechdyane/desktop/internal/shared/types"
)

func setup(t *testing.T) (*window.Registry, *Controller) {
	t.Helper()

	reg := window.New(window.Config{
		Viewport: types.Viewport{Width: 1440, Height: 900, Class: types.ViewportDesktop},
	})
	ctrl := NewController(reg, geometry.DefaultLimits(), nil)
	reg.Subscribe(ctrl.HandleChange)

	reg.Open("calc", window.OpenOptions{})
	require.True(t, reg.SetGeometry("calc", types.Rect{
		Position: types.Position{X: 100, Y: 60},
		Size:     types.Size{Width: 800, Height: 550},
	}))
	return reg, ctrl
}

func pt(x, y int) types.Position { return types.Position{X: x, Y: y} }

func TestDragIsUnclamped(t *testing.T) {
	reg, ctrl := setup(t)

	require.NoError(t, ctrl.BeginDrag("calc", 1, pt(300, 70)))
	assert.Equal(t, ModeDragging, ctrl.Mode())

	_, err := ctrl.Move(1, pt(250, 50))
	require.NoError(t, err)

	rect, err := ctrl.End(1, pt(-200, -400))
	require.NoError(t, err)
	assert.Equal(t, pt(100-500, 60-470), rect.Position)
	assert.Equal(t, ModeNone, ctrl.Mode())

	w, _ := reg.Get("calc")
	assert.Equal(t, pt(-400, -410), w.Position)
	assert.Equal(t, types.Size{Width: 800, Height: 550}, w.Size)
}

func TestDragUsesStartSnapshot(t *testing.T) {
	reg, ctrl := setup(t)

	require.NoError(t, ctrl.BeginDrag("calc", 1, pt(0, 0)))
	for i := 1; i <= 10; i++ {
		_, err := ctrl.Move(1, pt(i, i))
		require.NoError(t, err)
	}
	require.NoError(t, ctrl.Cancel(1))

	w, _ := reg.Get("calc")
	assert.Equal(t, pt(110, 70), w.Position)
}

func TestResizeSouthEast(t *testing.T) {
	reg, ctrl := setup(t)

	require.NoError(t, ctrl.BeginResize("calc", 7, pt(900, 610), "se"))
	rect, err := ctrl.End(7, pt(1400, 1110))
	require.NoError(t, err)

	assert.Equal(t, types.Size{Width: 1300, Height: 1050}, rect.Size)
	w, _ := reg.Get("calc")
	assert.Equal(t, types.Size{Width: 1300, Height: 1050}, w.Size)
	assert.Equal(t, pt(100, 60), w.Position)
}

func TestResizeWestClampKeepsRightEdge(t *testing.T) {
	reg, ctrl := setup(t)
	before, _ := reg.Get("calc")

	require.NoError(t, ctrl.BeginResize("calc", 1, pt(100, 300), "w"))
	rect, err := ctrl.End(1, pt(100+900, 300))
	require.NoError(t, err)

	assert.Equal(t, 320, rect.Width)
	assert.Equal(t, before.Rect().Right(), rect.Right())
}

func TestResizeUsesMobileLimits(t *testing.T) {
	reg, ctrl := setup(t)
	reg.SetViewport(geometry.Classifier{Breakpoint: 768}.Classify(390, 844))

	require.NoError(t, ctrl.BeginResize("calc", 1, pt(0, 0), "e"))
	rect, err := ctrl.End(1, pt(-5000, 0))
	require.NoError(t, err)
	assert.Equal(t, 260, rect.Width)
}

func TestOnlyOneSession(t *testing.T) {
	reg, ctrl := setup(t)
	reg.Open("timer", window.OpenOptions{})

	require.NoError(t, ctrl.BeginDrag("calc", 1, pt(0, 0)))

	err := ctrl.BeginResize("timer", 2, pt(0, 0), "n")
	assert.True(t, errors.Is(err, ErrSessionActive))
	assert.True(t, errors.Is(err, ErrIntegrity))

	_, err = ctrl.Move(2, pt(5, 5))
	assert.True(t, errors.Is(err, ErrNoSession))

	require.NoError(t, ctrl.LostCapture(1))
	assert.NoError(t, ctrl.BeginResize("timer", 2, pt(0, 0), "n"))
}

func TestIneligibleWindows(t *testing.T) {
	reg, ctrl := setup(t)
	reg.Open("timer", window.OpenOptions{})
	reg.Open("journal", window.OpenOptions{})
	require.True(t, reg.ToggleMaximize("calc"))
	require.True(t, reg.Minimize("timer"))
	require.True(t, reg.Close("journal"))

	for _, id := range []string{"calc", "timer", "journal", "unknown"} {
		assert.True(t, errors.Is(ctrl.BeginDrag(id, 1, pt(0, 0)), ErrNotEligible), id)
		assert.True(t, errors.Is(ctrl.BeginResize(id, 1, pt(0, 0), "e"), ErrNotEligible), id)
	}
	assert.Equal(t, ModeNone, ctrl.Mode())
}

func TestMalformedDirection(t *testing.T) {
	_, ctrl := setup(t)

	err := ctrl.BeginResize("calc", 1, pt(0, 0), "north")
	assert.True(t, errors.Is(err, ErrInvalidDirection))
	assert.True(t, errors.Is(err, geometry.ErrInvalidDirection))
	assert.Equal(t, ModeNone, ctrl.Mode())
}

func TestCloseDuringGestureEndsSession(t *testing.T) {
	reg, ctrl := setup(t)

	require.NoError(t, ctrl.BeginDrag("calc", 1, pt(0, 0)))
	_, err := ctrl.Move(1, pt(10, 10))
	require.NoError(t, err)

	require.True(t, reg.Close("calc"))
	assert.Equal(t, ModeNone, ctrl.Mode())

	_, err = ctrl.Move(1, pt(50, 50))
	assert.True(t, errors.Is(err, ErrNoSession))

	w, _ := reg.Get("calc")
	assert.Equal(t, pt(110, 70), w.Position)

	reg.Open("timer", window.OpenOptions{})
	assert.NoError(t, ctrl.BeginDrag("timer", 2, pt(0, 0)))
}

func TestMoveDetectsClosedTargetWithoutNotification(t *testing.T) {
	reg := window.New(window.Config{})
	ctrl := NewController(reg, geometry.DefaultLimits(), nil)
	var aborted []Session
	ctrl.OnAbort(func(s Session) { aborted = append(aborted, s) })
	reg.Open("calc", window.OpenOptions{})

	require.NoError(t, ctrl.BeginDrag("calc", 1, pt(0, 0)))
	reg.Close("calc")

	_, err := ctrl.Move(1, pt(10, 10))
	assert.True(t, errors.Is(err, ErrNotEligible))
	assert.Equal(t, ModeNone, ctrl.Mode())
	require.Len(t, aborted, 1)
	assert.Equal(t, "calc", aborted[0].WindowID)
}

func TestOnAbort(t *testing.T) {
	reg, ctrl := setup(t)
	var aborted []Session
	ctrl.OnAbort(func(s Session) { aborted = append(aborted, s) })

	require.NoError(t, ctrl.BeginResize("calc", 3, pt(0, 0), "se"))
	require.True(t, reg.Close("calc"))
	require.Len(t, aborted, 1)
	assert.Equal(t, ModeResizing, aborted[0].Mode)
	assert.Equal(t, int64(3), aborted[0].PointerID)

	// Sessions ended by the pointer are not aborts
	reg.Open("timer", window.OpenOptions{})
	require.NoError(t, ctrl.BeginDrag("timer", 4, pt(0, 0)))
	_, err := ctrl.End(4, pt(5, 5))
	require.NoError(t, err)
	require.NoError(t, ctrl.BeginDrag("timer", 5, pt(0, 0)))
	require.NoError(t, ctrl.Cancel(5))

	ctrl.Abort()
	assert.Len(t, aborted, 1)
}

func TestEndWithoutSession(t *testing.T) {
	_, ctrl := setup(t)

	_, err := ctrl.End(1, pt(0, 0))
	assert.True(t, errors.Is(err, ErrNoSession))
	assert.True(t, errors.Is(ctrl.Cancel(1), ErrNoSession))
}

func TestWheel(t *testing.T) {
	reg, ctrl := setup(t)

	_, ok := ctrl.Wheel("calc", -120, false)
	assert.False(t, ok)

	scale, ok := ctrl.Wheel("calc", -120, true)
	require.True(t, ok)
	assert.InDelta(t, 1.1, scale, 1e-9)

	reg.SetViewport(geometry.Classifier{Breakpoint: 768}.Classify(390, 844))
	scale, ok = ctrl.Wheel("calc", 120, false)
	require.True(t, ok)
	assert.InDelta(t, 1.0, scale, 1e-9)

	w, _ := reg.Get("calc")
	assert.Equal(t, types.Size{Width: 374, Height: 714}, w.Size)
}

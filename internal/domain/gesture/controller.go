package gesture

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mechdyane/desktop/internal/domain/geometry"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// Target is the window registry as seen by the controller
type Target interface {
	Get(id string) (types.WindowState, bool)
	SetGeometry(id string, rect types.Rect) bool
	Zoom(id string, deltaY float64) (float64, bool)
	Viewport() types.Viewport
}

// Controller tracks the single active gesture
type Controller struct {
	target  Target
	limits  geometry.Limits
	session *Session
	onAbort func(Session)
	logger  *zap.Logger
}

// NewController creates a gesture controller for a registry
func NewController(target Target, limits geometry.Limits, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		target: target,
		limits: limits,
		logger: logger,
	}
}

// Active returns a copy of the current session
func (c *Controller) Active() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// OnAbort registers a callback run whenever a session ends without a pointer
// release
func (c *Controller) OnAbort(fn func(Session)) {
	c.onAbort = fn
}

// Mode returns the current gesture mode
func (c *Controller) Mode() Mode {
	if c.session == nil {
		return ModeNone
	}
	return c.session.Mode
}

// BeginDrag starts moving a window by its title bar
func (c *Controller) BeginDrag(windowID string, pointerID int64, at types.Position) error {
	return c.begin(ModeDragging, windowID, pointerID, at, 0)
}

// BeginResize starts resizing a window from the handle named by token
func (c *Controller) BeginResize(windowID string, pointerID int64, at types.Position, token string) error {
	dir, err := geometry.ParseDirection(token)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, token)
	}
	return c.begin(ModeResizing, windowID, pointerID, at, dir)
}

func (c *Controller) begin(mode Mode, windowID string, pointerID int64, at types.Position, dir geometry.Direction) error {
	if c.session != nil {
		return fmt.Errorf("%w: %s on %q", ErrSessionActive, c.session.Mode, c.session.WindowID)
	}

	w, ok := c.target.Get(windowID)
	if !ok || !w.Visible() {
		return fmt.Errorf("%w: %q is not visible", ErrNotEligible, windowID)
	}
	if w.IsMaximized {
		return fmt.Errorf("%w: %q is maximized", ErrNotEligible, windowID)
	}

	c.session = &Session{
		Mode:      mode,
		WindowID:  windowID,
		PointerID: pointerID,
		Pointer:   at,
		Origin:    w.Rect(),
		Direction: dir,
		Limit:     c.limits.For(c.target.Viewport().Class),
	}

	c.logger.Debug("Gesture started",
		zap.String("mode", mode.String()),
		zap.String("window", windowID),
		zap.String("direction", dir.String()))
	return nil
}

// Move applies the pointer position to the session's window and returns the
// committed geometry. If the window stopped being eligible since the gesture
// began, the session is discarded.
func (c *Controller) Move(pointerID int64, at types.Position) (types.Rect, error) {
	s, err := c.current(pointerID)
	if err != nil {
		return types.Rect{}, err
	}

	rect := s.apply(at)
	if !c.target.SetGeometry(s.WindowID, rect) {
		c.Abort()
		return types.Rect{}, fmt.Errorf("%w: %q closed during %s", ErrNotEligible, s.WindowID, s.Mode)
	}
	return rect, nil
}

// End commits the final pointer position and closes the session
func (c *Controller) End(pointerID int64, at types.Position) (types.Rect, error) {
	rect, err := c.Move(pointerID, at)
	if err != nil {
		return rect, err
	}
	c.session = nil
	return rect, nil
}

// Cancel ends the session without a final position. Geometry already
// committed by moves is kept.
func (c *Controller) Cancel(pointerID int64) error {
	if _, err := c.current(pointerID); err != nil {
		return err
	}
	c.session = nil
	return nil
}

// LostCapture is treated as an implicit pointer-up
func (c *Controller) LostCapture(pointerID int64) error {
	return c.Cancel(pointerID)
}

// Abort drops any session unconditionally
func (c *Controller) Abort() {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil

	c.logger.Debug("Gesture aborted", zap.String("window", s.WindowID))
	if c.onAbort != nil {
		c.onAbort(*s)
	}
}

// HandleChange ends the session when its window is closed, hidden,
// maximized or replaced. It is registered as a registry listener.
func (c *Controller) HandleChange(ev types.ChangeEvent) {
	if c.session == nil {
		return
	}

	switch ev.Kind {
	case types.ChangeReplaced:
		c.Abort()
	case types.ChangeClosed, types.ChangeMinimized, types.ChangeMaximized:
		if ev.WindowID == c.session.WindowID {
			c.Abort()
		}
	}
}

// Wheel turns a zoom-intent wheel event into a content scale change. Any
// wheel counts as zoom intent on mobile viewports; on desktop the ctrl
// modifier is required.
func (c *Controller) Wheel(windowID string, deltaY float64, ctrl bool) (float64, bool) {
	if !ctrl && c.target.Viewport().Class != types.ViewportMobile {
		return 0, false
	}
	return c.target.Zoom(windowID, deltaY)
}

func (c *Controller) current(pointerID int64) (*Session, error) {
	if c.session == nil {
		return nil, ErrNoSession
	}
	if c.session.PointerID != pointerID {
		return nil, fmt.Errorf("%w: pointer %d does not own the session", ErrNoSession, pointerID)
	}
	return c.session, nil
}

// Package gesture turns pointer input into window drags, resizes and
// content zoom.
//
// At most one session exists at a time. A session starts on pointer-down
// over a title bar (drag) or a resize handle (resize), follows moves from
// the same pointer, and ends on pointer-up, pointer-cancel or lost capture.
// Geometry is computed from the snapshot taken when the session began, never
// accumulated from previous moves, so dropped or coalesced move events do not
// drift the window.
//
// The controller holds no locks; it runs on the desktop engine's goroutine.
package gesture

// Package window implements the window registry, the single owner of every
// application window's lifecycle flags, stacking order and geometry.
//
// The registry is not safe for concurrent use. The desktop engine owns it
// and calls it from one goroutine only, so commands never interleave.
//
// Lifecycle per window id:
//
//	Closed    --Open-->           Open (focused, fresh z)
//	Open      --Close-->          Closed (geometry remembered)
//	Open      --Minimize-->       Minimized (IsMaximized kept)
//	Open      --ToggleMaximize--> Open (IsMaximized flipped, focused)
//	Minimized --Open-->           Open (IsMaximized restored, focused, fresh z)
//
// Every mutation is followed by a synchronous ChangeEvent to subscribers.
// Commands that do not apply to the window's current state are no-ops and
// report false.
package window

// Package geometry implements the pure window math of the desktop.
//
// Nothing in here holds state. The registry and the gesture controller call
// these functions to derive cascade defaults, apply drag translations and
// clamp directional resizes against the viewport class minimums.
//
// Resize rules (dx, dy are the pointer deltas since the gesture started):
//
//	e: width  = max(minWidth, w0+dx)
//	w: delta  = min(w0-minWidth, dx); width = w0-delta; x = x0+delta
//	s: height = max(minHeight, h0+dy)
//	n: delta  = min(h0-minHeight, dy); height = h0-delta; y = y0+delta
//
// Corner handles apply both of their component rules independently.
package geometry

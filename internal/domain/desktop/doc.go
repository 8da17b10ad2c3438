// Package desktop runs the windowing engine on a single goroutine.
//
// The Engine owns the window registry, the gesture controller, the sidebar
// policy and loaded panel content. Nothing else touches them. HTTP handlers
// and WebSocket readers submit work through the Engine's methods, which queue
// a closure and wait for the loop to run it. Commands and pointer events are
// therefore applied strictly in arrival order, and a pointer-down focus always
// completes before the gesture captures the window geometry.
//
// After every queued job that changed something, the engine rebuilds the
// shell state and hands it to subscribers. Slow subscribers only ever see
// the latest state.
//
// Example Usage:
//
//	engine := desktop.New(cfg)
//	go engine.Run(ctx)
//	outcome, err := engine.Open(ctx, "calc", window.OpenOptions{})
package desktop

// Package ws streams desktop state over WebSocket and accepts pointer and
// window commands from the shell client.
//
// Every connection gets one writer goroutine. It forwards coalesced shell
// states from the engine, replies to inbound messages and keep-alive pings.
// Pointer moves are rate limited per connection; presses, releases and
// commands are never dropped.
//
// Message Types (Client → Server):
//   - pointer_down: press on a window region (content, titlebar, resize)
//   - pointer_move: move the active pointer
//   - pointer_up: release and commit the gesture
//   - pointer_cancel: cancel the active gesture
//   - lost_capture: the client lost pointer capture
//   - wheel: wheel event over a window, zoom when ctrl is held or on mobile
//   - command: open, close, minimize, maximize, focus, reset_scale or click
//   - viewport: the display size changed
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - welcome: connection accepted, carries the connection id
//   - state: full shell state after a change
//   - result: outcome of a command, wheel or viewport message
//   - pong: reply to ping
//   - error: the message could not be handled
//
// Example Usage:
//
//	handler := ws.NewHandler(engine, ws.Config{EventsPerSecond: 240, Burst: 60}, logger, metrics)
//	router.GET("/stream", handler.HandleConnection)
package ws

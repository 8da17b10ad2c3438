// Package http provides the REST API for the desktop engine.
//
// Every handler goes through the engine's queue, so HTTP commands interleave
// with WebSocket pointer input in arrival order. Command responses always
// carry the shell state after the command ran. Domain rejections (unknown
// window, invalid transition) are reported as success=false, never as HTTP
// errors; only malformed requests and a stopped engine produce 4xx/5xx.
//
// Endpoints:
//   - Health: / and /health
//   - Windows: /windows, /windows/:id, /windows/:id/{open,close,minimize,maximize,focus,reset-scale}
//   - Scale: PUT /windows/:id/scale
//   - Content: /windows/:id/content
//   - Shell: /shell, /shell/click, /viewport, /desktop/icons, /stats
//   - Catalog: /catalog, /catalog/search?q=
//   - Sessions: /sessions, /sessions/:id, /sessions/:id/restore
//   - Logs: /logs, /logs/level
//   - Metrics: /metrics/json
//
// Example Usage:
//
//	handlers := http.NewHandlers(engine, sessions, logger, metrics)
//	handlers.Register(router)
package http

/*
Package monitoring provides Prometheus metrics for the desktop service.

# Overview

Metrics cover the HTTP API, registry commands, gestures, panel content
loads, stored sessions and the WebSocket stream. Collectors are registered
on an injected prometheus.Registerer so several instances can coexist in
tests.

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewTimer(metrics, "open")
	outcome := registry.Open("calc", window.OpenOptions{})
	timer.Stop(string(outcome))

# Exported Series

	desktop_http_requests_total{method,path,status}
	desktop_window_commands_total{command,outcome}
	desktop_windows_open, desktop_windows_minimized, desktop_sidebar_hidden
	desktop_gestures_total{kind,outcome}, desktop_gesture_moves_total
	desktop_content_loads_total{source,outcome}
	desktop_sessions_saved_total, desktop_sessions_restored_total
	desktop_ws_connections, desktop_ws_messages_total{direction,type}
*/
package monitoring

// Package content loads the panel shown inside each window.
//
// Panel content is opaque to the windowing engine. The Dispatcher is the
// only asynchronous boundary: it runs loads on their own goroutines with a
// timeout, guards the primary loader with a circuit breaker, falls back to a
// secondary loader, and hands the result to a callback. The engine's
// callback re-enters its event loop, so results are applied in order with
// every other command and dropped if the window closed in the meantime.
package content

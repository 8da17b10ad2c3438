// Package middleware provides the gin middleware stack for the desktop API.
//
// Middleware stack includes:
//   - RequestID: Assigns or propagates an X-Request-ID per request
//   - Logger: Structured access log through zap
//   - Recovery: Panic recovery logged through zap
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with idle cleanup
//
// The WebSocket stream applies its own per-connection limiter, so the HTTP
// limiter only sees the upgrade request.
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware

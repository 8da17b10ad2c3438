// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Engine components receive a named child logger so every line carries the
// component that wrote it (registry, gesture, engine, content, session, ws).
// Rejected window commands and gesture sequencing errors are logged at debug;
// they are expected during normal pointer input.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	reg := window.New(window.Config{Logger: logger.Component("registry")})
//	logger.Info("Server starting", zap.String("port", "8000"))
package logging

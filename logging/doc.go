// Package logging provides a minimal logging interface and adapters.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the engine, server and CLI use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter and StructuredLogger wrapping Go's structured logging
//   - ZapAdapter for applications standardized on go.uber.org/zap
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelDebug, "text", false)
//	bot, err := engine.New("Eliza", script.Doctor(), func(o *engine.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging

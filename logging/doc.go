// Package logging provides a minimal logging interface and adapters.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that agents and the debate loop use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - StructuredLogger wrapping Go's structured logging with run / component context
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", os.Stderr)
//	d := debate.New(schedule, func(o *debate.Options) { o.Logger = logger })
//
// Arguments after the message are slog key/value pairs.
package logging

// Package logging provides a minimal logging interface and adapters for chatmem.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that agents and the CLI use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - ZerologAdapter, the default backend used by the CLI
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.New(logging.Config{Level: "info", Format: "console"})
//	chat, err := agent.NewChatAgent("assistant", store, models, func(o *agent.ChatAgentOptions) {
//		o.Logger = logger
//	})
package logging

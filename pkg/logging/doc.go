// Package logging provides structured logging for the scheduler, built on
// Go's standard log/slog package.
//
// # Overview
//
// Loggers are immutable and chainable: With* methods return a new Logger
// carrying the added field, leaving the receiver untouched. A Logger
// pulled from context.Context via FromContext lets deeply nested code
// (node invocations, policy callbacks) log with the same execution-scoped
// fields as the scheduler that dispatched them, without threading a
// Logger through every function signature.
//
// # Basic Usage
//
//	logger := logging.New(logging.DefaultConfig())
//	logger = logger.WithExecutionID(execID).WithNodeID(nodeID)
//	logger.Info("node dispatched")
package logging

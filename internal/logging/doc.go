// Package logging provides structured logging utilities for the gdocs CLI.
//
// It centralizes logging patterns to keep structured logging consistent
// throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "docs.create")
//	logger.Info("document created", logging.Account(account))
//
// # Security Considerations
//
// OAuth tokens are never logged directly; use SanitizeToken when a token
// must appear in a log line.
package logging

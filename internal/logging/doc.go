// Package logging provides structured logging utilities for the fathom-mcp application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Sensitive-data sanitization (query and email anonymization)
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "fathom.list_meetings")
//	logger.Info("listing meetings",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("search completed",
//	    logging.QueryHash(query))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - Search queries are hashed to prevent meeting content leakage while allowing correlation
//   - Emails are hashed to prevent PII leakage
//   - API keys are never logged directly
package logging

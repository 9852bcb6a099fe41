// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Logs go to stderr so that commands writing an Atom document to stdout keep
// the document clean.
//
// Example usage:
//
//	import "atomfeed/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger("info", "json")
//	    slog.SetDefault(logger)
//	    logger.Info("feed server started", slog.Int("port", 8080))
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, logging.FromContext(ctx))
//	    logger.Info("rendering feed")
//	}
package logging

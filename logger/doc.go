// Package logger provides structured logging for streamext using zerolog.
//
// Shaping combinators log their lifecycle (source exhausted, final item
// drained, finished) at debug level through a component-scoped logger, so
// the polling hot path stays silent unless debug logging is enabled.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("stream").WithStage("search-debounce", id)
//	log.Debug("source exhausted", logger.Fields(logger.FieldState, "finishing"))
package logger

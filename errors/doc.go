// Package errors provides the coded error type used across streamext.
//
// Shaping combinators have no recoverable runtime errors. Two families of
// failures remain and both are reported as *AppError:
//
//   - configuration errors (INVALID_CONFIG, MISSING_FIELD), returned by the
//     config package when a throttle or debounce configuration is rejected
//   - contract violations (CONTRACT_VIOLATION), raised with panic when a
//     driver polls a finished combinator or calls a throttler out of order
//
// A contract violation always indicates a bug in the code driving the
// stream, never bad input data.
package errors

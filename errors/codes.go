package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates a configuration value is out of range.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeMissingField indicates a required configuration field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeConfigLoad indicates the configuration source could not be read.
	ErrCodeConfigLoad ErrorCode = "CONFIG_LOAD_FAILED"
)

// Usage errors
const (
	// ErrCodeContractViolation indicates a stream or throttler was driven
	// outside its documented polling contract.
	ErrCodeContractViolation ErrorCode = "CONTRACT_VIOLATION"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeContractViolation: true,
}

// IsFatalCode returns true if the error code marks a programming error
// that must not be recovered from.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}

package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors. Both are configuration/programming errors, never
// transient: retrying a resolution with the same registry fails the
// same way.
const (
	// ErrCodeCircularDependency indicates a factory's reference
	// reappeared in its own ancestor chain, or the static validator
	// found a dependency path leading back to a starting reference.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	// ErrCodeMissingDependency indicates a factory declared a
	// dependency for which no factory is registered.
	ErrCodeMissingDependency ErrorCode = "MISSING_DEPENDENCY"
)

// Registry configuration errors
const (
	// ErrCodeDuplicateFactory indicates two factories were registered
	// for the same reference.
	ErrCodeDuplicateFactory ErrorCode = "DUPLICATE_FACTORY"
	// ErrCodeConstructFailed indicates a factory's construct function
	// returned an error.
	ErrCodeConstructFailed ErrorCode = "CONSTRUCT_FAILED"
	// ErrCodeInvalidConfig indicates a configuration struct failed
	// validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

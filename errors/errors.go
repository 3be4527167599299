package errors

import "fmt"

// ResolutionError is the unified apiwire error type.
type ResolutionError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *ResolutionError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *ResolutionError) WithCause(cause error) *ResolutionError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *ResolutionError) WithDetail(key string, value any) *ResolutionError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new ResolutionError.
func New(code ErrorCode, message string) *ResolutionError {
	return &ResolutionError{Code: code, Message: message}
}

// --- Common Error Constructors ---

// CircularDependency creates an error for a reference that reappeared
// in its own dependency chain. The chain is ancestors-first and ends
// with the offending reference.
func CircularDependency(ref string, chain []string) *ResolutionError {
	e := &ResolutionError{
		Code:    ErrCodeCircularDependency,
		Message: fmt.Sprintf("circular dependency detected at %s", ref),
		Details: map[string]any{"ref": ref},
	}
	if len(chain) > 0 {
		e.Details["chain"] = chain
	}
	return e
}

// MissingDependency creates an error for a declared dependency with no
// registered factory, naming both the missing reference and the
// dependent that required it.
func MissingDependency(missing, dependent string) *ResolutionError {
	return &ResolutionError{
		Code:    ErrCodeMissingDependency,
		Message: fmt.Sprintf("no factory registered for %s, required by %s", missing, dependent),
		Details: map[string]any{"missing": missing, "dependent": dependent},
	}
}

// DuplicateFactory creates an error for a second factory registered
// for the same reference.
func DuplicateFactory(ref string) *ResolutionError {
	return &ResolutionError{
		Code:    ErrCodeDuplicateFactory,
		Message: fmt.Sprintf("a factory for %s is already registered", ref),
		Details: map[string]any{"ref": ref},
	}
}

// ConstructFailed creates an error wrapping a construct function failure.
func ConstructFailed(ref string, cause error) *ResolutionError {
	return &ResolutionError{
		Code:    ErrCodeConstructFailed,
		Message: fmt.Sprintf("constructing %s failed", ref),
		Details: map[string]any{"ref": ref},
		Cause:   cause,
	}
}

// InvalidConfig creates an error for a configuration struct that
// failed validation.
func InvalidConfig(reason string) *ResolutionError {
	return &ResolutionError{
		Code:    ErrCodeInvalidConfig,
		Message: reason,
	}
}

// --- Matching helpers ---

// GetCode extracts the ErrorCode from an error, walking the cause
// chain. Returns an empty code for nil or foreign errors.
func GetCode(err error) ErrorCode {
	for err != nil {
		if re, ok := err.(*ResolutionError); ok {
			return re.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ""
}

// IsCode reports whether err carries the given code anywhere in its
// cause chain.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// AsResolutionError extracts a *ResolutionError from err's chain.
func AsResolutionError(err error) (*ResolutionError, bool) {
	for err != nil {
		if re, ok := err.(*ResolutionError); ok {
			return re, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return nil, false
}

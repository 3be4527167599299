// Package errors provides structured error handling for apiwire.
// It implements a small error taxonomy with machine-readable codes so
// callers can assert on the kind of resolution failure instead of
// matching on message text.
package errors

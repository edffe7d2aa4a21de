// Package errors provides the structured error taxonomy for service
// bootstrap. Every failure surfaced to the host is a *BootError carrying a
// machine-readable code for the failing stage, so a host process can react
// to "what failed" without parsing message text.
package errors

import (
	stderrors "errors"
	"fmt"
)

// BootError is the unified bootstrap error type. The first failure anywhere
// in the bootstrap sequence is terminal; no component below the
// bootstrapper retries.
type BootError struct {
	// Code identifies the failing stage.
	Code Code `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *BootError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *BootError) Unwrap() error { return e.Cause }

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *BootError) WithDetail(key string, value any) *BootError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// --- Constructors, one per bootstrap failure mode ---

// SecretMissing reports that a required secret key was absent from the
// secret store. The key recorded is the qualified key that was probed.
func SecretMissing(key string) *BootError {
	return &BootError{
		Code:    CodeSecretMissing,
		Message: fmt.Sprintf("secret %q not found", key),
		Details: map[string]any{"key": key},
	}
}

// LogLevelInvalid reports an unparseable log level. The level is never
// silently defaulted; bootstrap aborts instead.
func LogLevelInvalid(level string, cause error) *BootError {
	return &BootError{
		Code:    CodeLogLevelInvalid,
		Message: fmt.Sprintf("invalid log level %q", level),
		Details: map[string]any{"level": level},
		Cause:   cause,
	}
}

// TaskPanicked reports that a supervised task terminated abnormally.
// The message is the panic value when one was attached, otherwise the
// call site's fallback text.
func TaskPanicked(message string) *BootError {
	return &BootError{
		Code:    CodeTaskPanicked,
		Message: message,
	}
}

// TaskFailed wraps a normal error returned by a supervised task. It is
// distinct from TaskPanicked: the task completed, it just didn't succeed.
func TaskFailed(cause error) *BootError {
	return &BootError{
		Code:    CodeTaskFailed,
		Message: "supervised task failed",
		Cause:   cause,
	}
}

// ResourceProvisionFailed wraps a failure to acquire one of the host
// resources (secret store, database pool, static directory) or to run the
// database initialization batch.
func ResourceProvisionFailed(resource string, cause error) *BootError {
	return &BootError{
		Code:    CodeResourceProvisionFailed,
		Message: fmt.Sprintf("failed to provision %s", resource),
		Details: map[string]any{"resource": resource},
		Cause:   cause,
	}
}

// AlreadyInstalled reports a second attempt to install the process-wide
// logging pipeline.
func AlreadyInstalled() *BootError {
	return &BootError{
		Code:    CodeAlreadyInstalled,
		Message: "logging pipeline already installed",
	}
}

// --- Predicates ---

// AsBootError extracts a *BootError from err's chain.
func AsBootError(err error) (*BootError, bool) {
	var be *BootError
	if stderrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsCode reports whether any error in err's chain carries the given
// bootstrap error code. A wrapped cause keeps its own code visible, so
// TaskFailed wrapping a LogLevelInvalid matches both codes.
func IsCode(err error, code Code) bool {
	for err != nil {
		if be, ok := err.(*BootError); ok && be.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// CodeOf returns the bootstrap error code of err, or "" when err is not a
// *BootError.
func CodeOf(err error) Code {
	if be, ok := AsBootError(err); ok {
		return be.Code
	}
	return ""
}

package stash

import (
	"errors"
	"fmt"
)

// Error type constants for classification and matching
const (
	// ErrorTypeUnsupportedOperation is raised by catalog operations asked
	// to do something they deliberately do not implement, such as
	// backreferences in replace() or splice() with replacement values.
	ErrorTypeUnsupportedOperation = "unsupported_operation"

	// ErrorTypeInvalidAssignment is raised when a value is assigned to a
	// root that supports neither key, index nor setter assignment.
	ErrorTypeInvalidAssignment = "invalid_assignment_target"

	// ErrorTypeUndefinedAccess is raised for an unresolved path segment,
	// but only by stashes created in debug mode.
	ErrorTypeUndefinedAccess = "undefined_access"

	// ErrorTypeInvalidArgument is raised when a catalog operation receives
	// an argument it cannot use, such as a malformed regular expression.
	ErrorTypeInvalidArgument = "invalid_argument"
)

// StashError represents a structured error with classification.
// It supports Go's error wrapping patterns with Unwrap() method
type StashError struct {
	Type    string `json:"type"`
	Cause   string `json:"cause"`
	Details any    `json:"details,omitempty"`
	Wrapped error  `json:"-"`
}

// Error implements the error interface
func (e *StashError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Cause)
}

// Unwrap implements the error unwrapping interface for Go's errors.Is and errors.As
func (e *StashError) Unwrap() error {
	return e.Wrapped
}

// NewStashError creates a new StashError with the specified type and cause.
func NewStashError(errorType, cause string) *StashError {
	return &StashError{
		Type:  errorType,
		Cause: cause,
	}
}

// ClassifyError converts any error into a StashError. Errors that are not
// already stash errors are classified as invalid arguments.
func ClassifyError(err error) *StashError {
	var stashError *StashError
	if errors.As(err, &stashError) {
		return stashError
	}
	return &StashError{
		Type:    ErrorTypeInvalidArgument,
		Cause:   err.Error(),
		Wrapped: err,
	}
}

// MatchesErrorType checks if an error is a stash error of the given type.
func MatchesErrorType(err error, errorType string) bool {
	if err == nil {
		return false
	}
	return ClassifyError(err).Type == errorType
}

func unsupportedOperation(format string, args ...any) *StashError {
	return NewStashError(ErrorTypeUnsupportedOperation, fmt.Sprintf(format, args...))
}

func invalidArgument(op string, err error) *StashError {
	return &StashError{
		Type:    ErrorTypeInvalidArgument,
		Cause:   fmt.Sprintf("%s: %v", op, err),
		Details: op,
		Wrapped: err,
	}
}

func invalidAssignment(root Value, name Value) *StashError {
	return &StashError{
		Type:    ErrorTypeInvalidAssignment,
		Cause:   fmt.Sprintf("don't know how to assign to %s.%s", orUndefined(root).Kind(), Text(name)),
		Details: Text(name),
	}
}

func undefinedAccess(name Value) *StashError {
	return &StashError{
		Type:    ErrorTypeUndefinedAccess,
		Cause:   fmt.Sprintf("%s is undefined", Text(name)),
		Details: Text(name),
	}
}

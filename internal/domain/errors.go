package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is raised before any request is made
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NetworkError wraps a failed request to the backend
type NetworkError struct {
	Op     string // e.g. "GET /admin/user"
	Status int    // HTTP status, 0 if the request never completed
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// PartialFailureError reports a bulk action where some items failed.
// Per-item errors are kept for logging, the UI shows only the counts.
type PartialFailureError struct {
	Action    string
	Succeeded int
	Failed    int
	Errors    []error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: %d succeeded, %d failed", e.Action, e.Succeeded, e.Failed)
}

func (e *PartialFailureError) Unwrap() []error {
	return e.Errors
}

// Detail joins the per-item errors for log output
func (e *PartialFailureError) Detail() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNetwork reports whether err is (or wraps) a NetworkError
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

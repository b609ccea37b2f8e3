package custom_error

import (
	"errors"
	"fmt"
)

// ValidationError is raised when a required query parameter is absent or
// malformed. The message is safe to surface verbatim to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// UpstreamError wraps a failed source-database call. It is logged server
// side; clients only ever see a generic "Internal Server Error".
type UpstreamError struct {
	Source string // logical data source, e.g. "admin", "customer", "ims", "machine"
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s source query failed: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func WrapUpstream(source string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Source: source, Err: err}
}

func IsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

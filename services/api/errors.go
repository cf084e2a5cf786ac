package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by Client implementations.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrHospitalNotFound   = errors.New("hospital not found")
)

// NetworkError covers timeouts, connectivity failures and malformed
// responses from the remote variant. Callers are not expected to
// distinguish the underlying cause.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("network error during %s", e.Op)
	}
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a client-side input rejection that never reaches the
// network. It surfaces as a field-level message, not a session error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors aggregates per-field rejections from a single submission.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// IsValidation reports whether err is a field-level validation failure.
func IsValidation(err error) bool {
	var single *ValidationError
	var multi ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multi)
}

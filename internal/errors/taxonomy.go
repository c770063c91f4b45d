package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrBackendDisabled is returned by the API client when remote access is switched off.
	// It classifies as a network failure.
	ErrBackendDisabled = &NetworkError{Op: "backend", Err: stderrors.New("remote backend disabled")}

	// ErrDataAbsent marks a lookup with no remote or cached value. The resolver turns it
	// into a default value; it never reaches the user.
	ErrDataAbsent = stderrors.New("data absent")

	// ErrNotLoggedIn is returned by operations that need an auth token.
	ErrNotLoggedIn = stderrors.New("not logged in")
)

// NetworkError covers unreachable hosts, timeouts and non-2xx responses.
// It is never fatal: callers fall back to cached or default data.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d - %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError is a user-facing input problem (bad credentials, malformed signup fields).
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

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a failed read or write against the local store.
// It is logged and the operation continues with in-memory defaults.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func IsNetwork(err error) bool {
	var n *NetworkError
	return stderrors.As(err, &n)
}

func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if stderrors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func IsValidation(err error) bool {
	_, ok := AsValidation(err)
	return ok
}

func IsStorage(err error) bool {
	var s *StorageError
	return stderrors.As(err, &s)
}

package registry

import "errors"

// Error kinds. Use errors.Is to classify an error returned by the registry.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence failure")
	ErrInvalid      = errors.New("invalid request")
)

// Error carries a caller-facing message for one of the kinds above. The
// message is shown to users verbatim.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func persistenceError(msg string, err error) *Error {
	return &Error{Kind: ErrPersistence, Message: msg, Err: err}
}

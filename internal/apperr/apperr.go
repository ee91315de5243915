package apperr

import "errors"

// ErrNotFound - record missing or not owned by the caller. Mapped to 404 at
// the HTTP boundary.
var ErrNotFound = errors.New("record not found")

// ValidationError - missing or invalid required input. Mapped to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validation(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

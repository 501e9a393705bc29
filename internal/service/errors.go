package service

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	// ErrNotFound covers both absent resources and resources owned by
	// another user; the two are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers a wrong password as well as an
	// unknown email on sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned on sign-up with an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidResetCode covers expired, used, and unknown codes.
	ErrInvalidResetCode = errors.New("invalid or expired reset code")
)

// ValidationError carries the message surfaced verbatim to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

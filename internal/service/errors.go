package service

import (
	"errors"
	"fmt"

	"github.com/deepinsight/backend/pkg/auth"
)

var (
	// ErrInvalidCredentials is returned for every failed login, whether the
	// email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession is returned when a token does not map to a live session.
	// It wraps auth.ErrInvalidToken so RequireAdmin answers it with 401.
	ErrInvalidSession = fmt.Errorf("invalid session: %w", auth.ErrInvalidToken)
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

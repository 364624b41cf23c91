package services

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks malformed or missing request fields. Handlers map it
// to HTTP 400 with the field-specific message.
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsInvalidInput checks if an error is an "invalid input" error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Package identity wraps the managed identity provider handling signup,
// email confirmation, password recovery and login. User records in the
// document store are keyed by the subject id this provider assigns.
package identity

import (
	"context"
	"errors"
	"fmt"
)

// Session is the token pair returned by a successful login.
type Session struct {
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Provider is the identity provider surface the handlers consume.
type Provider interface {
	// SignUp registers a new identity and returns its stable subject id.
	SignUp(ctx context.Context, email, password string) (string, error)

	// ConfirmSignUp confirms a registration with the emailed code.
	ConfirmSignUp(ctx context.Context, email, code string) error

	// ForgotPassword starts a password recovery flow.
	ForgotPassword(ctx context.Context, email string) error

	// ConfirmForgotPassword completes a recovery flow with the emailed code.
	ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error

	// Login authenticates credentials and returns a token pair.
	Login(ctx context.Context, email, password string) (*Session, error)
}

// Common identity provider errors
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCodeMismatch       = errors.New("confirmation code mismatch")
	ErrUserNotConfirmed   = errors.New("user not confirmed")
)

// ProviderError wraps a provider failure with the operation that produced it.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity %s operation failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError
func NewProviderError(op string, err error) *ProviderError {
	return &ProviderError{Op: op, Err: err}
}

// IsUserExists checks if an error means the email is already registered
func IsUserExists(err error) bool {
	return errors.Is(err, ErrUserExists)
}

// IsAuthFailure checks if an error is a credential or confirmation failure
// the caller should surface as a client error
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrCodeMismatch) ||
		errors.Is(err, ErrUserNotConfirmed)
}

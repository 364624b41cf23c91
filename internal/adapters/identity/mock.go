package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockProvider is an in-memory implementation of Provider for testing and
// the local development server.
type MockProvider struct {
	mu       sync.Mutex
	accounts map[string]*mockAccount
}

type mockAccount struct {
	sub       string
	password  string
	confirmed bool
	code      string
}

// NewMockProvider creates a new MockProvider instance
func NewMockProvider() *MockProvider {
	return &MockProvider{accounts: make(map[string]*mockAccount)}
}

// SignUp implements Provider.SignUp
func (m *MockProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[email]; exists {
		return "", NewProviderError("signup", ErrUserExists)
	}

	sub := uuid.New().String()
	m.accounts[email] = &mockAccount{sub: sub, password: password, code: "123456"}
	return sub, nil
}

// ConfirmSignUp implements Provider.ConfirmSignUp
func (m *MockProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[email]
	if !ok || account.code != code {
		return NewProviderError("confirm signup", ErrCodeMismatch)
	}
	account.confirmed = true
	return nil
}

// ForgotPassword implements Provider.ForgotPassword
func (m *MockProvider) ForgotPassword(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[email]; !ok {
		return NewProviderError("forgot password", fmt.Errorf("unknown account"))
	}
	return nil
}

// ConfirmForgotPassword implements Provider.ConfirmForgotPassword
func (m *MockProvider) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[email]
	if !ok || account.code != code {
		return NewProviderError("confirm password", ErrCodeMismatch)
	}
	account.password = newPassword
	return nil
}

// Login implements Provider.Login
func (m *MockProvider) Login(ctx context.Context, email, password string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[email]
	if !ok || account.password != password {
		return nil, NewProviderError("login", ErrInvalidCredentials)
	}
	if !account.confirmed {
		return nil, NewProviderError("login", ErrUserNotConfirmed)
	}

	return &Session{
		Email:        email,
		Token:        "mock-token-" + account.sub,
		RefreshToken: "mock-refresh-" + account.sub,
	}, nil
}

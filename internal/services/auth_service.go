package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"social-feed-api/internal/adapters/identity"
	"social-feed-api/internal/adapters/storage"
	"social-feed-api/internal/config"
	"social-feed-api/internal/models"
	"social-feed-api/internal/repositories"
)

// authService implements the AuthService interface
type authService struct {
	userRepo  repositories.UserRepository
	provider  identity.Provider
	storage   storage.ObjectStorage
	buckets   config.BucketConfig
	validator *validator.Validate
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo repositories.UserRepository, provider identity.Provider, store storage.ObjectStorage, buckets config.BucketConfig) AuthService {
	return &authService{
		userRepo:  userRepo,
		provider:  provider,
		storage:   store,
		buckets:   buckets,
		validator: validator.New(),
	}
}

// SignUp registers the identity, stores the optional avatar and creates the
// user record keyed by the provider's subject id. The avatar is stored
// before the provider call; a failure after that point leaves the object
// behind without a record, which is accepted (no compensation).
func (s *authService) SignUp(ctx context.Context, req *SignUpRequest) error {
	if req == nil {
		return invalidInput("signup request cannot be nil")
	}
	if err := s.validator.Struct(req); err != nil {
		return invalidInput("%v", err)
	}
	if !models.IsValidEmail(req.Email) {
		return invalidInput("invalid email")
	}
	if !models.IsValidPassword(req.Password) {
		return invalidInput("invalid password")
	}
	if !models.IsValidName(req.Name) {
		return invalidInput("invalid name")
	}
	if req.Avatar != nil && !models.IsAllowedImage(req.Avatar.Name) {
		return invalidInput("invalid file extension")
	}

	var avatarKey string
	if req.Avatar != nil {
		key, err := s.storage.Save(ctx, s.buckets.Avatar, "avatar", req.Avatar)
		if err != nil {
			return fmt.Errorf("failed to store avatar: %w", err)
		}
		avatarKey = key
	}

	sub, err := s.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return fmt.Errorf("failed to register identity: %w", err)
	}

	user := models.NewUser(sub, req.Name, req.Email, avatarKey)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user record: %w", err)
	}

	return nil
}

// ConfirmEmail confirms a registration with the emailed code.
func (s *authService) ConfirmEmail(ctx context.Context, req *ConfirmEmailRequest) error {
	if req == nil {
		return invalidInput("confirm email request cannot be nil")
	}
	if err := s.validator.Struct(req); err != nil {
		return invalidInput("%v", err)
	}
	if !models.IsValidEmail(req.Email) {
		return invalidInput("invalid email")
	}
	if !models.IsValidConfirmationCode(req.Code) {
		return invalidInput("invalid code")
	}

	if err := s.provider.ConfirmSignUp(ctx, req.Email, req.Code); err != nil {
		return fmt.Errorf("failed to confirm email: %w", err)
	}

	return nil
}

// ForgotPassword starts a password recovery flow.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if !models.IsValidEmail(email) {
		return invalidInput("invalid email")
	}

	if err := s.provider.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("failed to start password recovery: %w", err)
	}

	return nil
}

// ConfirmPassword completes a password recovery flow.
func (s *authService) ConfirmPassword(ctx context.Context, req *ConfirmPasswordRequest) error {
	if req == nil {
		return invalidInput("confirm password request cannot be nil")
	}
	if err := s.validator.Struct(req); err != nil {
		return invalidInput("%v", err)
	}
	if !models.IsValidEmail(req.Email) {
		return invalidInput("invalid email")
	}
	if !models.IsValidConfirmationCode(req.Code) {
		return invalidInput("invalid code")
	}
	if !models.IsValidPassword(req.NewPassword) {
		return invalidInput("invalid password")
	}

	if err := s.provider.ConfirmForgotPassword(ctx, req.Email, req.Code, req.NewPassword); err != nil {
		return fmt.Errorf("failed to confirm new password: %w", err)
	}

	return nil
}

// Login authenticates credentials against the identity provider.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*identity.Session, error) {
	if req == nil {
		return nil, invalidInput("login request cannot be nil")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidInput("%v", err)
	}
	if !models.IsValidEmail(req.Login) {
		return nil, invalidInput("invalid email")
	}
	if !models.IsValidPassword(req.Password) {
		return nil, invalidInput("invalid password")
	}

	session, err := s.provider.Login(ctx, req.Login, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	return session, nil
}

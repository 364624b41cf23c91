package services

import (
	"context"

	"social-feed-api/internal/adapters/identity"
	"social-feed-api/internal/adapters/storage"
	"social-feed-api/internal/models"
	"social-feed-api/internal/repositories"
)

// AuthService defines the registration and authentication flows delegated
// to the identity provider
type AuthService interface {
	// SignUp registers a new identity and creates the user record
	SignUp(ctx context.Context, req *SignUpRequest) error

	// ConfirmEmail confirms a registration with the emailed code
	ConfirmEmail(ctx context.Context, req *ConfirmEmailRequest) error

	// ForgotPassword starts a password recovery flow
	ForgotPassword(ctx context.Context, email string) error

	// ConfirmPassword completes a password recovery flow
	ConfirmPassword(ctx context.Context, req *ConfirmPasswordRequest) error

	// Login authenticates credentials and returns the token pair
	Login(ctx context.Context, req *LoginRequest) (*identity.Session, error)
}

// UserService defines profile and social graph operations
type UserService interface {
	// Me returns the viewer's own record with the avatar key resolved to
	// a signed URL
	Me(ctx context.Context, userID string) (*models.User, error)

	// UpdateProfile changes the display name and/or replaces the avatar
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) error

	// DeleteAvatar removes the stored avatar object and clears the field
	DeleteAvatar(ctx context.Context, userID string) error

	// Search pages through users whose name contains the query string
	Search(ctx context.Context, name string, cursor *repositories.UserCursor) (*repositories.UserPage, error)

	// ToggleFollow flips the follow relationship between two users and
	// returns true when the result is "following"
	ToggleFollow(ctx context.Context, followerID, followedID string) (bool, error)
}

// PostService defines publication operations
type PostService interface {
	// CreatePost stores the image, creates the post record and bumps the
	// author's post counter
	CreatePost(ctx context.Context, userID string, req *CreatePostRequest) (*models.Post, error)

	// GetPost returns a post with its image key resolved to a signed URL
	GetPost(ctx context.Context, postID string) (*models.Post, error)

	// ToggleLike flips the requester's like on a post and returns true
	// when the result is "liked"
	ToggleLike(ctx context.Context, userID, postID string) (bool, error)

	// AddComment appends a comment to a post
	AddComment(ctx context.Context, userID, postID, text string) error
}

// FeedService defines the paginated feed assembly operations
type FeedService interface {
	// ByAuthor returns one page of a single author's posts, newest first
	ByAuthor(ctx context.Context, userID string, cursor *repositories.PostCursor) (*repositories.PostPage, error)

	// Home returns one page of posts authored by the viewer or anyone the
	// viewer follows. Ordering follows the store's scan order.
	Home(ctx context.Context, userID string, cursor *repositories.ScanCursor) (*repositories.PostScanPage, error)
}

// Request types for service operations

// SignUpRequest carries the multipart signup form fields
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Avatar   *storage.File
}

// ConfirmEmailRequest carries an email confirmation submission
type ConfirmEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,min=6"`
}

// ConfirmPasswordRequest completes a password recovery flow
type ConfirmPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,min=6"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Login    string `json:"login" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the multipart profile update form fields;
// both fields are optional
type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Avatar *storage.File
}

// CreatePostRequest carries the multipart post creation form fields
type CreatePostRequest struct {
	Description string `json:"description" validate:"required,min=3"`
	Image       *storage.File
}

package repositories

import (
	"context"

	"social-feed-api/internal/models"
)

// PostCursor is the pagination cursor for the by-author feed. It mirrors the
// posts table key plus the author index range key, and must round-trip
// through query parameters unchanged.
type PostCursor struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Date   string `json:"date"`
}

// ScanCursor is the cursor shape for scans over the posts table primary key.
type ScanCursor struct {
	ID string `json:"id"`
}

// UserCursor is the cursor shape for scans over the users table primary key.
type UserCursor struct {
	CognitoID string `json:"cognitoId"`
}

// PostPage is one page of an ordered by-author query. LastKey is nil once
// the result set is exhausted.
type PostPage struct {
	Items   []*models.Post `json:"data"`
	Count   int            `json:"count"`
	LastKey *PostCursor    `json:"lastKey,omitempty"`
}

// PostScanPage is one page of a filtered scan over the posts table.
type PostScanPage struct {
	Items   []*models.Post `json:"data"`
	Count   int            `json:"count"`
	LastKey *ScanCursor    `json:"lastKey,omitempty"`
}

// UserPage is one page of a filtered scan over the users table.
type UserPage struct {
	Items   []*models.User `json:"data"`
	Count   int            `json:"count"`
	LastKey *UserCursor    `json:"lastKey,omitempty"`
}

// UserRepository defines operations on the user record store
type UserRepository interface {
	// Create creates a new user record
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by its identity provider subject id
	GetByID(ctx context.Context, cognitoID string) (*models.User, error)

	// Update persists the full user record
	Update(ctx context.Context, user *models.User) error

	// AddFollowers atomically adds delta (which may be negative) to the
	// denormalized followers counter, avoiding the read-modify-write race
	AddFollowers(ctx context.Context, cognitoID string, delta int) error

	// AddPostCount atomically adds delta to the denormalized post counter
	AddPostCount(ctx context.Context, cognitoID string, delta int) error

	// SearchByName scans for users whose name contains the given substring
	SearchByName(ctx context.Context, name string, limit int, cursor *UserCursor) (*UserPage, error)
}

// PostRepository defines operations on the post record store
type PostRepository interface {
	// Create creates a new post record
	Create(ctx context.Context, post *models.Post) error

	// GetByID retrieves a post by id
	GetByID(ctx context.Context, id string) (*models.Post, error)

	// Update persists the full post record
	Update(ctx context.Context, post *models.Post) error

	// QueryByAuthor returns the author's posts ordered by creation time
	// descending, resuming after cursor when given
	QueryByAuthor(ctx context.Context, userID string, limit int, cursor *PostCursor) (*PostPage, error)

	// ScanByAuthors returns posts whose author is in userIDs. Ordering
	// follows the store's scan order; no recency guarantee across authors.
	ScanByAuthors(ctx context.Context, userIDs []string, limit int, cursor *ScanCursor) (*PostScanPage, error)
}

// RepositoryContainer groups the record stores for dependency injection
type RepositoryContainer struct {
	UserRepo UserRepository
	PostRepo PostRepository
}

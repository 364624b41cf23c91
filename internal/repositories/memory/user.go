// Package memory provides in-memory record stores with the same pagination
// contract as the DynamoDB implementations. They back unit tests and the
// local development server.
package memory

import (
	"context"
	"strings"
	"sync"

	"social-feed-api/internal/models"
	"social-feed-api/internal/repositories"
)

// UserRepository is an in-memory user record store.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
	order []string // insertion order, stands in for the table's scan order
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*models.User)}
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Following = append([]string(nil), u.Following...)
	return &c
}

// Create stores a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.CognitoID]; exists {
		return repositories.DuplicateError("user", user.CognitoID)
	}
	r.users[user.CognitoID] = copyUser(user)
	r.order = append(r.order, user.CognitoID)
	return nil
}

// GetByID retrieves a user record.
func (r *UserRepository) GetByID(ctx context.Context, cognitoID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[cognitoID]
	if !ok {
		return nil, repositories.NotFoundError("user", cognitoID)
	}
	return copyUser(user), nil
}

// Update persists the full user record.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.CognitoID]; !ok {
		return repositories.NotFoundError("user", user.CognitoID)
	}
	r.users[user.CognitoID] = copyUser(user)
	return nil
}

// AddFollowers applies delta to the followers counter atomically.
func (r *UserRepository) AddFollowers(ctx context.Context, cognitoID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[cognitoID]
	if !ok {
		return repositories.NotFoundError("user", cognitoID)
	}
	user.Followers += delta
	return nil
}

// AddPostCount applies delta to the post counter atomically.
func (r *UserRepository) AddPostCount(ctx context.Context, cognitoID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[cognitoID]
	if !ok {
		return repositories.NotFoundError("user", cognitoID)
	}
	user.Post += delta
	return nil
}

// SearchByName scans for users whose name contains the substring, resuming
// after the cursor's primary key.
func (r *UserRepository) SearchByName(ctx context.Context, name string, limit int, cursor *repositories.UserCursor) (*repositories.UserPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := 0
	if cursor != nil && cursor.CognitoID != "" {
		for i, id := range r.order {
			if id == cursor.CognitoID {
				start = i + 1
				break
			}
		}
	}

	page := &repositories.UserPage{Items: []*models.User{}}
	for i := start; i < len(r.order); i++ {
		user := r.users[r.order[i]]
		if !strings.Contains(user.Name, name) {
			continue
		}
		if limit > 0 && len(page.Items) == limit {
			page.LastKey = &repositories.UserCursor{CognitoID: page.Items[len(page.Items)-1].CognitoID}
			break
		}
		page.Items = append(page.Items, copyUser(user))
	}
	page.Count = len(page.Items)

	return page, nil
}

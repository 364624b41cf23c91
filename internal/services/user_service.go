package services

import (
	"context"
	"fmt"

	"social-feed-api/internal/adapters/storage"
	"social-feed-api/internal/config"
	"social-feed-api/internal/models"
	"social-feed-api/internal/repositories"
)

// userService implements the UserService interface
type userService struct {
	userRepo repositories.UserRepository
	storage  storage.ObjectStorage
	buckets  config.BucketConfig
	feed     config.FeedConfig
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.UserRepository, store storage.ObjectStorage, buckets config.BucketConfig, feed config.FeedConfig) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  store,
		buckets:  buckets,
		feed:     feed,
	}
}

// Me returns the viewer's record with a resolved avatar URL.
func (s *userService) Me(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, invalidInput("user id is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.resolveAvatar(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile changes the display name and/or replaces the avatar. Each
// field is persisted as soon as it is applied, matching the one-write-per-
// field behavior of the update endpoint.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) error {
	if req == nil {
		return invalidInput("update request cannot be nil")
	}
	if req.Name == "" && req.Avatar == nil {
		return invalidInput("nothing to update")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if req.Name != "" {
		if !models.IsValidName(req.Name) {
			return invalidInput("invalid name")
		}
		user.Name = req.Name
		if err := s.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
	}

	if req.Avatar != nil {
		if !models.IsAllowedImage(req.Avatar.Name) {
			return invalidInput("invalid file extension")
		}
		if user.HasAvatar() {
			if err := s.storage.Delete(ctx, s.buckets.Avatar, user.Avatar); err != nil {
				return fmt.Errorf("failed to delete previous avatar: %w", err)
			}
		}
		key, err := s.storage.Save(ctx, s.buckets.Avatar, "avatar", req.Avatar)
		if err != nil {
			return fmt.Errorf("failed to store avatar: %w", err)
		}
		user.Avatar = key
		if err := s.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
	}

	return nil
}

// DeleteAvatar removes the stored avatar object and clears the field.
func (s *userService) DeleteAvatar(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasAvatar() {
		return nil
	}

	if err := s.storage.Delete(ctx, s.buckets.Avatar, user.Avatar); err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}

	user.Avatar = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Search pages through users whose name contains the query string, resolving
// avatar keys to signed URLs.
func (s *userService) Search(ctx context.Context, name string, cursor *repositories.UserCursor) (*repositories.UserPage, error) {
	if name == "" {
		return nil, invalidInput("search term is required")
	}

	page, err := s.userRepo.SearchByName(ctx, name, s.feed.SearchPageSize, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	for _, user := range page.Items {
		if err := s.resolveAvatar(ctx, user); err != nil {
			return nil, err
		}
	}

	return page, nil
}

// ToggleFollow flips the follow relationship. The membership list lives on
// the followed user's record ("following") while the denormalized counter
// lives on the follower's own record ("followers"); this cross-record pair
// is kept for compatibility with the existing data. The two writes are not
// transactional: a crash between them leaves the pair inconsistent.
func (s *userService) ToggleFollow(ctx context.Context, followerID, followedID string) (bool, error) {
	if followedID == "" {
		return false, invalidInput("followed user id is required")
	}
	if followerID == followedID {
		return false, invalidInput("cannot follow yourself")
	}

	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return false, fmt.Errorf("failed to get follower: %w", err)
	}
	followed, err := s.userRepo.GetByID(ctx, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to get followed user: %w", err)
	}

	if i := followed.FollowingIndex(follower.CognitoID); i >= 0 {
		followed.RemoveFollowing(i)
		if err := s.userRepo.Update(ctx, followed); err != nil {
			return false, fmt.Errorf("failed to update followed user: %w", err)
		}
		if err := s.userRepo.AddFollowers(ctx, follower.CognitoID, -1); err != nil {
			return false, fmt.Errorf("failed to decrement follower counter: %w", err)
		}
		return false, nil
	}

	followed.Following = append(followed.Following, follower.CognitoID)
	if err := s.userRepo.Update(ctx, followed); err != nil {
		return false, fmt.Errorf("failed to update followed user: %w", err)
	}
	if err := s.userRepo.AddFollowers(ctx, follower.CognitoID, 1); err != nil {
		return false, fmt.Errorf("failed to increment follower counter: %w", err)
	}

	return true, nil
}

func (s *userService) resolveAvatar(ctx context.Context, user *models.User) error {
	if !user.HasAvatar() {
		return nil
	}

	url, err := s.storage.SignedURL(ctx, s.buckets.Avatar, user.Avatar, s.buckets.URLExpiry)
	if err != nil {
		return fmt.Errorf("failed to sign avatar url: %w", err)
	}
	user.Avatar = url

	return nil
}

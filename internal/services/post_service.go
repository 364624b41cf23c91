package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"social-feed-api/internal/adapters/storage"
	"social-feed-api/internal/config"
	"social-feed-api/internal/models"
	"social-feed-api/internal/repositories"
)

// postService implements the PostService interface
type postService struct {
	postRepo  repositories.PostRepository
	userRepo  repositories.UserRepository
	storage   storage.ObjectStorage
	buckets   config.BucketConfig
	validator *validator.Validate
}

// NewPostService creates a new post service instance
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, store storage.ObjectStorage, buckets config.BucketConfig) PostService {
	return &postService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		storage:   store,
		buckets:   buckets,
		validator: validator.New(),
	}
}

// CreatePost stores the image, creates the post record and bumps
// the author's post counter. The counter write happens after the record
// write; a crash between them leaves the counter one short.
func (s *postService) CreatePost(ctx context.Context, userID string, req *CreatePostRequest) (*models.Post, error) {
	if req == nil {
		return nil, invalidInput("post request cannot be nil")
	}
	if userID == "" {
		return nil, invalidInput("user id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidInput("%v", err)
	}
	if len(req.Description) < models.MinDescriptionLength {
		return nil, invalidInput("description must be at least %d characters", models.MinDescriptionLength)
	}
	if req.Image == nil {
		return nil, invalidInput("image file is required")
	}
	if !models.IsAllowedImage(req.Image.Name) {
		return nil, invalidInput("invalid file extension")
	}

	imageKey, err := s.storage.Save(ctx, s.buckets.Post, "post", req.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	post := models.NewPost(userID, req.Description, imageKey)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if err := s.userRepo.AddPostCount(ctx, userID, 1); err != nil {
		return nil, fmt.Errorf("failed to increment post counter: %w", err)
	}

	return post, nil
}

// GetPost returns a post with its image key resolved to a signed URL.
func (s *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	if postID == "" {
		return nil, invalidInput("post id is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if err := resolveImage(ctx, s.storage, s.buckets, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ToggleLike flips the requester's like on a post. The requester must exist;
// the like count is always the length of the likes list, never a cached
// counter.
func (s *postService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if postID == "" {
		return false, invalidInput("post id is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("failed to get post: %w", err)
	}

	liked := true
	if i := post.LikeIndex(user.CognitoID); i >= 0 {
		post.RemoveLike(i)
		liked = false
	} else {
		post.Likes = append(post.Likes, user.CognitoID)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return false, fmt.Errorf("failed to update post: %w", err)
	}

	return liked, nil
}

// AddComment appends a comment to a post.
func (s *postService) AddComment(ctx context.Context, userID, postID, text string) error {
	if postID == "" {
		return invalidInput("post id is required")
	}
	if !models.IsValidComment(text) {
		return invalidInput("comment must be at least %d characters", models.MinCommentLength)
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	post.AddComment(userID, text)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// resolveImage swaps a stored image key for a signed URL in place. Posts
// without an image are left untouched and cost no storage call.
func resolveImage(ctx context.Context, store storage.ObjectStorage, buckets config.BucketConfig, post *models.Post) error {
	if !post.HasImage() {
		return nil
	}

	url, err := store.SignedURL(ctx, buckets.Post, post.Image, buckets.URLExpiry)
	if err != nil {
		return fmt.Errorf("failed to sign image url: %w", err)
	}
	post.Image = url

	return nil
}

package services

import (
	"context"
	"fmt"

	"social-feed-api/internal/adapters/storage"
	"social-feed-api/internal/config"
	"social-feed-api/internal/repositories"
)

// feedService implements the FeedService interface
type feedService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	storage  storage.ObjectStorage
	buckets  config.BucketConfig
	feed     config.FeedConfig
}

// NewFeedService creates a new feed service instance
func NewFeedService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, store storage.ObjectStorage, buckets config.BucketConfig, feed config.FeedConfig) FeedService {
	return &feedService{
		postRepo: postRepo,
		userRepo: userRepo,
		storage:  store,
		buckets:  buckets,
		feed:     feed,
	}
}

// ByAuthor returns one page of a single author's posts, newest first. The
// author must exist; an unknown id surfaces as not found rather than an
// empty page.
func (s *feedService) ByAuthor(ctx context.Context, userID string, cursor *repositories.PostCursor) (*repositories.PostPage, error) {
	if userID == "" {
		return nil, invalidInput("user id is required")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	page, err := s.postRepo.QueryByAuthor(ctx, userID, s.feed.AuthorPageSize, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to query author feed: %w", err)
	}

	for _, post := range page.Items {
		if err := resolveImage(ctx, s.storage, s.buckets, post); err != nil {
			return nil, err
		}
	}

	return page, nil
}

// Home returns one page of posts authored by the viewer or anyone the viewer
// follows. The author set is the viewer's following list plus the viewer
// themselves; ordering follows the store's scan order, not post date.
func (s *feedService) Home(ctx context.Context, userID string, cursor *repositories.ScanCursor) (*repositories.PostScanPage, error) {
	if userID == "" {
		return nil, invalidInput("user id is required")
	}

	viewer, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}

	authors := append([]string{viewer.CognitoID}, viewer.Following...)

	page, err := s.postRepo.ScanByAuthors(ctx, authors, s.feed.HomePageSize, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to scan home feed: %w", err)
	}

	for _, post := range page.Items {
		if err := resolveImage(ctx, s.storage, s.buckets, post); err != nil {
			return nil, err
		}
	}

	return page, nil
}

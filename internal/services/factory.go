package services

import (
	"fmt"

	"social-feed-api/internal/adapters/identity"
	"social-feed-api/internal/adapters/storage"
	"social-feed-api/internal/config"
	"social-feed-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	AuthService AuthService
	UserService UserService
	PostService PostService
	FeedService FeedService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Buckets config.BucketConfig
	Feed    config.FeedConfig
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos *repositories.RepositoryContainer, provider identity.Provider, store storage.ObjectStorage, cfg *ServiceConfig) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository container cannot be nil")
	}
	if provider == nil {
		return nil, fmt.Errorf("identity provider cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("object storage cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("service config cannot be nil")
	}

	return &ServiceContainer{
		AuthService: NewAuthService(repos.UserRepo, provider, store, cfg.Buckets),
		UserService: NewUserService(repos.UserRepo, store, cfg.Buckets, cfg.Feed),
		PostService: NewPostService(repos.PostRepo, repos.UserRepo, store, cfg.Buckets),
		FeedService: NewFeedService(repos.PostRepo, repos.UserRepo, store, cfg.Buckets, cfg.Feed),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.AuthService == nil {
		return fmt.Errorf("auth service is nil")
	}
	if sc.UserService == nil {
		return fmt.Errorf("user service is nil")
	}
	if sc.PostService == nil {
		return fmt.Errorf("post service is nil")
	}
	if sc.FeedService == nil {
		return fmt.Errorf("feed service is nil")
	}

	return nil
}

// Close performs cleanup for all services
func (sc *ServiceContainer) Close() error {
	// Services don't currently need cleanup, but this provides
	// a hook for future cleanup operations like closing connections
	return nil
}

package server

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"social-feed-api/internal/adapters/identity"
	"social-feed-api/internal/adapters/storage"
	"social-feed-api/internal/config"
	"social-feed-api/internal/repositories"
	dynamorepo "social-feed-api/internal/repositories/dynamo"
	memoryrepo "social-feed-api/internal/repositories/memory"
	"social-feed-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	AuthService services.AuthService
	UserService services.UserService
	PostService services.PostService
	FeedService services.FeedService

	// Internal dependencies
	storage  storage.ObjectStorage
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container. The "test"
// environment wires in-memory repositories and the mock identity provider;
// everything else talks to AWS.
func NewContainer(cfg *config.Config) (*Container, error) {
	var (
		repos    *repositories.RepositoryContainer
		provider identity.Provider
		store    storage.ObjectStorage
		err      error
	)

	if cfg.Environment == "test" {
		repos = &repositories.RepositoryContainer{
			UserRepo: memoryrepo.NewUserRepository(),
			PostRepo: memoryrepo.NewPostRepository(),
		}
		provider = identity.NewMockProvider()
		store, err = storage.NewStorage("mock", cfg.Storage.LocalPath, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	} else {
		if err := cfg.Require(
			"USER_TABLE",
			"POST_TABLE",
			"AVATAR_BUCKET",
			"POST_BUCKET",
			"USER_POOL_CLIENT_ID",
		); err != nil {
			return nil, err
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWS.Region),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}

		dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.AWS.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			}
		})
		s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.AWS.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
				o.UsePathStyle = true
			}
		})
		cognitoClient := cognitoidentityprovider.NewFromConfig(awsCfg)

		repos = &repositories.RepositoryContainer{
			UserRepo: dynamorepo.NewUserRepository(dynamoClient, cfg.Tables.Users),
			PostRepo: dynamorepo.NewPostRepository(dynamoClient, cfg.Tables.Posts),
		}
		provider = identity.NewCognitoProvider(cognitoClient, cfg.Cognito.ClientID)
		store, err = storage.NewStorage(cfg.Storage.Type, cfg.Storage.LocalPath, s3Client)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	serviceContainer, err := services.NewServiceContainer(repos, provider, store, &services.ServiceConfig{
		Buckets: cfg.Buckets,
		Feed:    cfg.Feed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:      cfg,
		AuthService: serviceContainer.AuthService,
		UserService: serviceContainer.UserService,
		PostService: serviceContainer.PostService,
		FeedService: serviceContainer.FeedService,
		storage:     store,
		services:    serviceContainer,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.services != nil {
		if err := c.services.Close(); err != nil {
			return fmt.Errorf("failed to close services: %w", err)
		}
	}

	if c.storage != nil {
		if err := c.storage.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	AWS         AWSConfig
	Storage     StorageConfig
	Cognito     CognitoConfig
	Tables      TableConfig
	Buckets     BucketConfig
	Feed        FeedConfig
	JWT         JWTConfig
}

// AWSConfig holds shared AWS client configuration
type AWSConfig struct {
	Region   string
	Endpoint string // optional override, e.g. for dynamodb-local
}

// StorageConfig selects the object storage implementation
type StorageConfig struct {
	Type      string // "s3" or "local"
	LocalPath string
}

// CognitoConfig holds identity provider configuration
type CognitoConfig struct {
	UserPoolID string
	ClientID   string
}

// TableConfig holds DynamoDB table names
type TableConfig struct {
	Users string
	Posts string
}

// BucketConfig holds S3 bucket names and signed URL lifetime
type BucketConfig struct {
	Avatar    string
	Post      string
	URLExpiry time.Duration
}

// FeedConfig holds pagination page sizes
type FeedConfig struct {
	AuthorPageSize int
	HomePageSize   int
	SearchPageSize int
}

// JWTConfig holds token validation configuration for the local server
type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("STORAGE_TYPE", "s3")
	viper.SetDefault("STORAGE_LOCAL_PATH", "./data/files")
	viper.SetDefault("SIGNED_URL_EXPIRY_MINUTES", 15)
	viper.SetDefault("FEED_AUTHOR_PAGE_SIZE", 1)
	viper.SetDefault("FEED_HOME_PAGE_SIZE", 3)
	viper.SetDefault("USER_SEARCH_PAGE_SIZE", 2)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		AWS: AWSConfig{
			Region:   viper.GetString("AWS_REGION"),
			Endpoint: viper.GetString("AWS_ENDPOINT"),
		},
		Storage: StorageConfig{
			Type:      viper.GetString("STORAGE_TYPE"),
			LocalPath: viper.GetString("STORAGE_LOCAL_PATH"),
		},
		Cognito: CognitoConfig{
			UserPoolID: viper.GetString("USER_POOL_ID"),
			ClientID:   viper.GetString("USER_POOL_CLIENT_ID"),
		},
		Tables: TableConfig{
			Users: viper.GetString("USER_TABLE"),
			Posts: viper.GetString("POST_TABLE"),
		},
		Buckets: BucketConfig{
			Avatar:    viper.GetString("AVATAR_BUCKET"),
			Post:      viper.GetString("POST_BUCKET"),
			URLExpiry: time.Duration(viper.GetInt("SIGNED_URL_EXPIRY_MINUTES")) * time.Minute,
		},
		Feed: FeedConfig{
			AuthorPageSize: viper.GetInt("FEED_AUTHOR_PAGE_SIZE"),
			HomePageSize:   viper.GetInt("FEED_HOME_PAGE_SIZE"),
			SearchPageSize: viper.GetInt("USER_SEARCH_PAGE_SIZE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
	}

	return config, nil
}

// Require verifies that the named configuration values are present. Handlers
// call it before doing any work so a misconfigured deployment fails with a
// descriptive message instead of a broken downstream call.
func (c *Config) Require(names ...string) error {
	for _, name := range names {
		var value string
		switch name {
		case "USER_POOL_ID":
			value = c.Cognito.UserPoolID
		case "USER_POOL_CLIENT_ID":
			value = c.Cognito.ClientID
		case "USER_TABLE":
			value = c.Tables.Users
		case "POST_TABLE":
			value = c.Tables.Posts
		case "AVATAR_BUCKET":
			value = c.Buckets.Avatar
		case "POST_BUCKET":
			value = c.Buckets.Post
		default:
			value = os.Getenv(name)
		}
		if value == "" {
			return fmt.Errorf("env %s not found", name)
		}
	}
	return nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

package storage

import (
	"context"
	"time"
)

// File is an uploaded file ready for storage.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ObjectStorage provides an abstraction over the blob store holding avatars
// and post media. Keys are opaque; records store the key and resolve it to a
// time-limited URL only at read time.
type ObjectStorage interface {
	// Save stores the file under a generated key and returns that key.
	// The key embeds the prefix so a bucket can hold several object kinds.
	Save(ctx context.Context, bucket, prefix string, file *File) (string, error)

	// SignedURL returns a time-limited access URL for a stored object.
	SignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)

	// Delete removes an object by its storage key.
	Delete(ctx context.Context, bucket, key string) error

	// Close cleans up any resources used by the storage implementation
	Close() error
}

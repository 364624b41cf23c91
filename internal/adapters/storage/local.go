package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalStorage implements ObjectStorage on the local filesystem. It serves
// the development server; deployed handlers always use S3.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a filesystem-backed object storage adapter rooted
// at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (l *LocalStorage) objectFile(bucket, key string) string {
	return filepath.Join(l.basePath, bucket, key)
}

// Save implements ObjectStorage.Save
func (l *LocalStorage) Save(ctx context.Context, bucket, prefix string, file *File) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", NewStorageError("Save", bucket, "", ErrInvalidFile)
	}

	key := ObjectKey(prefix, file.Name)
	path := l.objectFile(bucket, key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", NewStorageError("Save", bucket, key, err)
	}
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", NewStorageError("Save", bucket, key, err)
	}

	return key, nil
}

// SignedURL implements ObjectStorage.SignedURL. Local files are not signed;
// the returned URL is a file path usable by the development server only.
func (l *LocalStorage) SignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if key == "" {
		return "", NewStorageError("SignedURL", bucket, key, ErrInvalidKey)
	}

	path := l.objectFile(bucket, key)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewStorageError("SignedURL", bucket, key, ErrObjectNotFound)
		}
		return "", NewStorageError("SignedURL", bucket, key, err)
	}

	return "file://" + path, nil
}

// Delete implements ObjectStorage.Delete
func (l *LocalStorage) Delete(ctx context.Context, bucket, key string) error {
	if key == "" {
		return NewStorageError("Delete", bucket, key, ErrInvalidKey)
	}

	if err := os.Remove(l.objectFile(bucket, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewStorageError("Delete", bucket, key, ErrObjectNotFound)
		}
		return NewStorageError("Delete", bucket, key, err)
	}

	return nil
}

// Close implements ObjectStorage.Close
func (l *LocalStorage) Close() error {
	return nil
}

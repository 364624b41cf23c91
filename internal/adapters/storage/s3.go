package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Storage implements ObjectStorage against AWS S3, using the presign
// client for time-limited GET URLs.
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
}

// NewS3Storage creates an S3-backed object storage adapter.
func NewS3Storage(client *s3.Client) *S3Storage {
	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
	}
}

// Save uploads the file under a generated "prefix-uuid.ext" key and returns
// the key.
func (s *S3Storage) Save(ctx context.Context, bucket, prefix string, file *File) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", NewStorageError("Save", bucket, "", ErrInvalidFile)
	}

	key := ObjectKey(prefix, file.Name)

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(file.Data),
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", NewStorageError("Save", bucket, key, err)
	}

	return key, nil
}

// SignedURL returns a presigned GET URL valid for the given expiry.
func (s *S3Storage) SignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if key == "" {
		return "", NewStorageError("SignedURL", bucket, key, ErrInvalidKey)
	}

	out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", NewStorageError("SignedURL", bucket, key, err)
	}

	return out.URL, nil
}

// Delete removes an object.
func (s *S3Storage) Delete(ctx context.Context, bucket, key string) error {
	if key == "" {
		return NewStorageError("Delete", bucket, key, ErrInvalidKey)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return NewStorageError("Delete", bucket, key, err)
	}

	return nil
}

// Close implements ObjectStorage.Close
func (s *S3Storage) Close() error {
	return nil
}

// ObjectKey builds the storage key for an uploaded file: the object kind
// prefix, a fresh uuid, and the original file's extension.
func ObjectKey(prefix, filename string) string {
	ext := extensionOf(filename)
	return fmt.Sprintf("%s-%s%s", prefix, uuid.New().String(), ext)
}

func extensionOf(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
		if filename[i] == '/' {
			break
		}
	}
	return ""
}

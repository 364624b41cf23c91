package storage

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewStorage creates the ObjectStorage implementation selected by
// storageType: "s3", "local" or "mock". The S3 client is only required for
// the "s3" type.
func NewStorage(storageType, localPath string, client *s3.Client) (ObjectStorage, error) {
	switch strings.ToLower(storageType) {
	case "s3":
		if client == nil {
			return nil, fmt.Errorf("s3 storage requires a configured client")
		}
		return NewS3Storage(client), nil
	case "local":
		return NewLocalStorage(localPath)
	case "mock":
		return NewMockObjectStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

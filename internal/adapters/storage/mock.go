package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockObjectStorage is an in-memory implementation of ObjectStorage for
// testing and the local development server.
type MockObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]*mockObject

	// SignedURLCalls counts SignedURL invocations, letting tests assert
	// that records without an image key skip the storage round trip.
	SignedURLCalls int
}

type mockObject struct {
	data        []byte
	contentType string
	storedAt    time.Time
}

// NewMockObjectStorage creates a new MockObjectStorage instance
func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{objects: make(map[string]*mockObject)}
}

func objectPath(bucket, key string) string {
	return bucket + "/" + key
}

// Save implements ObjectStorage.Save
func (m *MockObjectStorage) Save(ctx context.Context, bucket, prefix string, file *File) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", NewStorageError("Save", bucket, "", ErrInvalidFile)
	}

	key := ObjectKey(prefix, file.Name)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectPath(bucket, key)] = &mockObject{
		data:        append([]byte(nil), file.Data...),
		contentType: file.ContentType,
		storedAt:    time.Now(),
	}

	return key, nil
}

// SignedURL implements ObjectStorage.SignedURL
func (m *MockObjectStorage) SignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if key == "" {
		return "", NewStorageError("SignedURL", bucket, key, ErrInvalidKey)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignedURLCalls++

	if _, ok := m.objects[objectPath(bucket, key)]; !ok {
		return "", NewStorageError("SignedURL", bucket, key, ErrObjectNotFound)
	}

	return fmt.Sprintf("https://%s.mock.local/%s?expires=%d", bucket, key, int(expiry.Seconds())), nil
}

// Delete implements ObjectStorage.Delete
func (m *MockObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	if key == "" {
		return NewStorageError("Delete", bucket, key, ErrInvalidKey)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[objectPath(bucket, key)]; !ok {
		return NewStorageError("Delete", bucket, key, ErrObjectNotFound)
	}
	delete(m.objects, objectPath(bucket, key))

	return nil
}

// Close implements ObjectStorage.Close
func (m *MockObjectStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = make(map[string]*mockObject)
	return nil
}

// Exists reports whether an object is stored, for test assertions.
func (m *MockObjectStorage) Exists(bucket, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[objectPath(bucket, key)]
	return ok
}

// Put seeds an object directly, for test setup.
func (m *MockObjectStorage) Put(bucket, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectPath(bucket, key)] = &mockObject{
		data:     append([]byte(nil), data...),
		storedAt: time.Now(),
	}
}

package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dtroode/lostfound-server/internal/model"
)

var _ model.PhotoStorage = (*PhotoStorage)(nil)

type object struct {
	data        []byte
	contentType string
}

// PhotoStorage is an in-memory object store used when no MinIO endpoint is configured.
type PhotoStorage struct {
	mu      sync.RWMutex
	objects map[string]object
}

func NewPhotoStorage() *PhotoStorage {
	return &PhotoStorage{
		objects: make(map[string]object),
	}
}

func (s *PhotoStorage) Upload(_ context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read object data: %w", err)
	}
	if size >= 0 && int64(len(data)) != size {
		return fmt.Errorf("object size mismatch: expected %d bytes, got %d", size, len(data))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = object{data: data, contentType: contentType}

	return nil
}

func (s *PhotoStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, model.ErrNotFound
	}

	return io.NopCloser(bytes.NewReader(bytes.Clone(obj.data))), nil
}

func (s *PhotoStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)

	return nil
}

func (s *PhotoStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[key]

	return ok, nil
}

package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-health-uk/internal/ports/storage"
)

type blobStore struct {
	mu    sync.RWMutex
	byKey map[string][]byte
}

func NewBlobStore() storage.BlobStore {
	return &blobStore{
		byKey: make(map[string][]byte),
	}
}

func (s *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	// copia: el llamador no debe poder mutar lo guardado
	return append([]byte(nil), v...), nil
}

func (s *blobStore) Put(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("blob key required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKey[key] = append([]byte(nil), value...)
	return nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byKey, key)
	return nil
}

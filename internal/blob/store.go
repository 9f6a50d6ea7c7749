package blob

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrNotExist is returned when no blob is stored under the requested key.
var ErrNotExist = errors.New("blob does not exist")

// Store is a whole-value object store keyed by slash-separated paths.
// Get and Put always move complete documents; there are no partial reads
// or writes, and no conditional writes. Two concurrent read-modify-write
// cycles over the same key can lose an update.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

type memoryEntry struct {
	data        []byte
	contentType string
}

// MemoryStore keeps blobs in process memory. Used in tests and as the
// default backend when nothing else is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string]memoryEntry{}}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotExist
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = memoryEntry{data: cp, contentType: contentType}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; !ok {
		return ErrNotExist
	}
	delete(s.blobs, key)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.blobs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process LocalStore used in tests and for ephemeral
// runs. Values round-trip through JSON so it behaves like the SQLite store.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Save(key string, value any) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = blob
	return nil
}

func (s *MemoryStore) Load(key string, dest any) (bool, error) {
	s.mu.Lock()
	blob, ok := s.blobs[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(blob, dest); err != nil {
		return false, nil
	}
	return true, nil
}

// SaveCount reports how many keys currently hold a value.
func (s *MemoryStore) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

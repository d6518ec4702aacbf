// Package memory provides process-local repositories. Records are lost on
// restart, so this backend suits development and tests.
package memory

import (
	"context"
	"sync"
)

type recordKey struct {
	userID int64
	key    string
}

// KVStore implements repository.KeyValueStore in memory
type KVStore struct {
	mu      sync.RWMutex
	records map[recordKey]string
}

// NewKVStore creates an empty store
func NewKVStore() *KVStore {
	return &KVStore{records: make(map[recordKey]string)}
}

func (s *KVStore) Get(_ context.Context, userID int64, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[recordKey{userID, key}]
	return value, ok, nil
}

func (s *KVStore) Set(_ context.Context, userID int64, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[recordKey{userID, key}] = value
	return nil
}

func (s *KVStore) Delete(_ context.Context, userID int64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, recordKey{userID, key})
	return nil
}

// Package keystore holds the operator-supplied provider API key, the one
// piece of state the console keeps across restarts when redis is configured.
package keystore

import (
	"context"
	"sync"
)

// StorageKey is the fixed name the API key persists under.
const StorageKey = "eko-api-key"

// Store reads and writes the provider API key.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, apiKey string) error
	Clear(ctx context.Context) error
}

// InMemoryStore keeps the key for the life of the process.
type InMemoryStore struct {
	mu  sync.RWMutex
	key string
}

// NewInMemoryStore seeds the store, typically from the EKO_API_KEY env var.
func NewInMemoryStore(seed string) *InMemoryStore {
	return &InMemoryStore{key: seed}
}

func (s *InMemoryStore) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key, nil
}

func (s *InMemoryStore) Set(_ context.Context, apiKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = apiKey
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	return nil
}

// Mask renders the key for display without revealing it: first four
// characters plus a fixed tail.
func Mask(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 4 {
		return "****"
	}
	return apiKey[:4] + "************"
}

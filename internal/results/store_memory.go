package results

import (
	"context"
	"sync"
	"time"
)

// Store is the result sink contract shared by the in-memory and postgres
// implementations.
type Store interface {
	Append(ctx context.Context, r Result) (Result, error)
	List(ctx context.Context) ([]Result, error)
	Query(ctx context.Context, f Filter) ([]Result, error)
	Delete(ctx context.Context, ids []int64) (int, error)
	Clear(ctx context.Context) error
}

// InMemoryStore keeps results in insertion order. IDs are wall-clock unix
// milliseconds; back-to-back appends within the same millisecond bump the ID
// so it stays unique.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []Result
	lastID  int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, r Result) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	r.ID = id
	r.Timestamp = now
	s.records = append(s.records, r)
	return r, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Result, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *InMemoryStore) Query(_ context.Context, f Filter) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Result
	for _, r := range s.records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, ids []int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := s.records[:0]
	deleted := 0
	for _, r := range s.records {
		if _, ok := drop[r.ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return deleted, nil
}

func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

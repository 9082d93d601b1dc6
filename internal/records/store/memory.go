package store

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/csvjson/internal/records/entity"
)

// InMemoryStore holds the current dataset. The slice it guards is never
// mutated in place; Replace swaps in a fresh one.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []entity.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: []entity.Record{}}
}

// Read returns a copy of the current dataset, never nil.
func (s *InMemoryStore) Read(ctx context.Context) []entity.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records)
}

// Replace swaps the whole dataset. Readers started afterwards see records.
func (s *InMemoryStore) Replace(ctx context.Context, records []entity.Record) {
	next := slices.Clone(records)
	if next == nil {
		next = []entity.Record{}
	}

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
}

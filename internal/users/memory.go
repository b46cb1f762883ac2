package users

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and when no backing
// database is configured (single-process development mode).
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]interface{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]map[string]interface{})}
}

func (s *MemoryStore) Get(_ context.Context, sub string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[sub]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) Set(_ context.Context, sub string, record map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sub] = cloneRecord(record)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]map[string]interface{}, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func cloneRecord(rec map[string]interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		cp[k] = v
	}
	return cp
}

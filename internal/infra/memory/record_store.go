package memory

import (
	"context"
	"sync"
)

// RecordStore is an in-memory implementation of app.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]string
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]string),
	}
}

func (s *RecordStore) Read(_ context.Context, userID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.records[userID]
	return raw, ok, nil
}

func (s *RecordStore) Write(_ context.Context, userID, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = raw
	return nil
}

// Delete drops a user's record, as an external reset would.
func (s *RecordStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
	return nil
}

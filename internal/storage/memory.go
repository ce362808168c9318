package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"vj-go/internal/journal"
	"vj-go/internal/model"
)

// MemoryStorage keeps the last saved snapshot in memory, useful for testing.
// Snapshots are stored encoded so later mutation by the caller cannot leak in.
// This implementation is safe for concurrent use.
type MemoryStorage struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

var _ journal.Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	var snap model.Snapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

func (s *MemoryStorage) Save(snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *MemoryStorage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStorage) Close() error {
	return nil
}

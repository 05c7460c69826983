// Package memory provides an in-memory SnapshotStore for tests and dev
// environments.
package memory

import (
	"context"
	"sync"

	"parking-ledger/internal/parking"
)

type SnapshotStore struct {
	mu       sync.Mutex
	snapshot []parking.Vehicle
	saves    int
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Save(_ context.Context, vehicles []parking.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = make([]parking.Vehicle, len(vehicles))
	copy(s.snapshot, vehicles)
	s.saves++
	return nil
}

func (s *SnapshotStore) Load(_ context.Context) ([]parking.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]parking.Vehicle, len(s.snapshot))
	copy(out, s.snapshot)
	return out, nil
}

// Saves returns how many times Save has been called. Test-only helper.
func (s *SnapshotStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

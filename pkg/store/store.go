// Package store persists day sheets (the reservations and tables for one
// service day) so the server can serve layout requests without callers
// re-uploading inputs.
//
// Two backends: MongoStore for deployments, MemoryStore for tests and
// single-process use. The engine itself never touches the store; layout
// stays a pure function of its inputs.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no day sheet exists for a date.
	ErrNotFound = errors.New("day sheet not found")
)

// Store is the interface for day-sheet persistence backends.
type Store interface {
	// Get retrieves the day sheet for a date ("YYYY-MM-DD").
	// Returns ErrNotFound if none exists.
	Get(ctx context.Context, date string) (timeline.DaySheet, error)

	// Put stores a day sheet, replacing any existing sheet for its date.
	Put(ctx context.Context, sheet timeline.DaySheet) error

	// Delete removes the day sheet for a date. Deleting a missing date
	// is not an error.
	Delete(ctx context.Context, date string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// =============================================================================
// MemoryStore
// =============================================================================

// MemoryStore is an in-memory Store for tests and development.
type MemoryStore struct {
	mu     sync.RWMutex
	sheets map[string]timeline.DaySheet
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string]timeline.DaySheet)}
}

// Get retrieves a day sheet by date.
func (s *MemoryStore) Get(ctx context.Context, date string) (timeline.DaySheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet, ok := s.sheets[date]
	if !ok {
		return timeline.DaySheet{}, ErrNotFound
	}
	return sheet, nil
}

// Put stores a day sheet keyed by its date.
func (s *MemoryStore) Put(ctx context.Context, sheet timeline.DaySheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet.Date] = sheet
	return nil
}

// Delete removes a day sheet.
func (s *MemoryStore) Delete(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sheets, date)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

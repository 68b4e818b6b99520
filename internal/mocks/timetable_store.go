package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/timetable-api/internal/domain"
	"github.com/phrazzld/timetable-api/internal/store"
)

// MockTimetableStore implements store.TimetableStore for testing
type MockTimetableStore struct {
	// Function fields for customizable behavior
	GetByOwnerFn func(ctx context.Context, ownerID uuid.UUID) (*domain.Timetable, error)
	CreateFn     func(ctx context.Context, timetable *domain.Timetable) error
	SaveFn       func(ctx context.Context, timetable *domain.Timetable) error

	// Data for default implementation
	Timetables  map[uuid.UUID]*domain.Timetable
	CreateError error
	SaveError   error

	// Call counters for test verification
	CreateCallCount int
	SaveCallCount   int
}

// NewMockTimetableStore creates a new mock store with initialized defaults
func NewMockTimetableStore() *MockTimetableStore {
	return &MockTimetableStore{
		Timetables: make(map[uuid.UUID]*domain.Timetable),
	}
}

// GetByOwner implements the TimetableStore interface
func (m *MockTimetableStore) GetByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) (*domain.Timetable, error) {
	if m.GetByOwnerFn != nil {
		return m.GetByOwnerFn(ctx, ownerID)
	}

	timetable, exists := m.Timetables[ownerID]
	if !exists {
		return nil, store.ErrTimetableNotFound
	}

	return timetable, nil
}

// Create implements the TimetableStore interface
func (m *MockTimetableStore) Create(ctx context.Context, timetable *domain.Timetable) error {
	m.CreateCallCount++

	if m.CreateFn != nil {
		return m.CreateFn(ctx, timetable)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Timetables[timetable.OwnerID]; exists {
		return store.ErrDuplicate
	}

	m.Timetables[timetable.OwnerID] = timetable
	return nil
}

// Save implements the TimetableStore interface
func (m *MockTimetableStore) Save(ctx context.Context, timetable *domain.Timetable) error {
	m.SaveCallCount++

	if m.SaveFn != nil {
		return m.SaveFn(ctx, timetable)
	}

	if m.SaveError != nil {
		return m.SaveError
	}

	if _, exists := m.Timetables[timetable.OwnerID]; !exists {
		return store.ErrTimetableNotFound
	}

	m.Timetables[timetable.OwnerID] = timetable
	return nil
}

// WithTx implements the TimetableStore interface for transaction support
func (m *MockTimetableStore) WithTx(tx *sql.Tx) store.TimetableStore {
	// For mock purposes, just return the same mock
	return m
}

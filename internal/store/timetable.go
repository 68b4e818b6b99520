package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/timetable-api/internal/domain"
)

// TimetableStore defines the interface for timetable persistence. A
// timetable is loaded and saved as a whole document: the service layer runs
// the conflict checks in memory and the store's only job is to make the
// resulting state durable atomically.
type TimetableStore interface {
	// GetByOwner retrieves the timetable owned by the given user, items in
	// insertion order.
	// Returns ErrTimetableNotFound if the owner has no timetable yet;
	// lazy creation is the service layer's decision, not the store's.
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Timetable, error)

	// Create persists a new, typically empty, timetable.
	// Returns ErrDuplicate if the owner already has one.
	Create(ctx context.Context, timetable *domain.Timetable) error

	// Save replaces the stored item list and last-updated timestamp with
	// the timetable's current state. Callers are expected to run Save
	// inside a transaction together with the load that produced the state.
	// Returns ErrTimetableNotFound if the timetable does not exist.
	Save(ctx context.Context, timetable *domain.Timetable) error

	// WithTx returns a new TimetableStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TimetableStore
}

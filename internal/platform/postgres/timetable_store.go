package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/timetable-api/internal/domain"
	"github.com/phrazzld/timetable-api/internal/platform/logger"
	"github.com/phrazzld/timetable-api/internal/store"
)

// PostgresTimetableStore implements the store.TimetableStore interface
// using a PostgreSQL database as the storage backend. Items live in a child
// table ordered by an explicit position column, so insertion order survives
// round trips.
type PostgresTimetableStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresTimetableStore implements store.TimetableStore interface.
var _ store.TimetableStore = (*PostgresTimetableStore)(nil)

// NewPostgresTimetableStore creates a new PostgreSQL implementation of the
// TimetableStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTimetableStore(db store.DBTX, logger *slog.Logger) *PostgresTimetableStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTimetableStore{
		db:     db,
		logger: logger.With(slog.String("component", "timetable_store")),
	}
}

// WithTx returns a new TimetableStore instance that uses the provided
// transaction.
func (s *PostgresTimetableStore) WithTx(tx *sql.Tx) store.TimetableStore {
	return &PostgresTimetableStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetByOwner implements store.TimetableStore.GetByOwner
// Returns store.ErrTimetableNotFound if the owner has no timetable yet.
func (s *PostgresTimetableStore) GetByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) (*domain.Timetable, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, last_updated
		FROM timetables
		WHERE user_id = $1
	`

	var timetable domain.Timetable
	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(
		&timetable.ID,
		&timetable.OwnerID,
		&timetable.LastUpdated,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("timetable not found",
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrTimetableNotFound
		}
		log.Error("failed to get timetable by owner",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	items, err := s.loadItems(ctx, timetable.ID)
	if err != nil {
		log.Error("failed to load schedule items",
			slog.String("error", err.Error()),
			slog.String("timetable_id", timetable.ID.String()))
		return nil, err
	}
	timetable.Items = items

	return &timetable, nil
}

// Create implements store.TimetableStore.Create
// Returns store.ErrDuplicate if the owner already has a timetable.
func (s *PostgresTimetableStore) Create(ctx context.Context, timetable *domain.Timetable) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := timetable.Validate(); err != nil {
		log.Warn("timetable validation failed during create",
			slog.String("error", err.Error()),
			slog.String("timetable_id", timetable.ID.String()))
		return err
	}

	query := `
		INSERT INTO timetables (id, user_id, last_updated)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		timetable.ID,
		timetable.OwnerID,
		timetable.LastUpdated,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("owner already has a timetable",
				slog.String("owner_id", timetable.OwnerID.String()))
			return store.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, timetable.OwnerID)
		}

		log.Error("failed to create timetable",
			slog.String("error", err.Error()),
			slog.String("timetable_id", timetable.ID.String()))
		return err
	}

	if err := s.insertItems(ctx, timetable.ID, timetable.Items); err != nil {
		return err
	}

	log.Info("timetable created successfully",
		slog.String("timetable_id", timetable.ID.String()),
		slog.String("owner_id", timetable.OwnerID.String()))
	return nil
}

// Save implements store.TimetableStore.Save
// It replaces the stored item list wholesale and refreshes last_updated.
// Callers run Save inside the same transaction as the load that produced
// the state, so the conflict check and the commit observe one snapshot.
// Returns store.ErrTimetableNotFound if the timetable does not exist.
func (s *PostgresTimetableStore) Save(ctx context.Context, timetable *domain.Timetable) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := timetable.Validate(); err != nil {
		log.Warn("timetable validation failed during save",
			slog.String("error", err.Error()),
			slog.String("timetable_id", timetable.ID.String()))
		return err
	}

	query := `
		UPDATE timetables
		SET last_updated = $1
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, timetable.LastUpdated, timetable.ID)
	if err != nil {
		log.Error("failed to update timetable",
			slog.String("error", err.Error()),
			slog.String("timetable_id", timetable.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("timetable_id", timetable.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("timetable not found for save",
			slog.String("timetable_id", timetable.ID.String()))
		return store.ErrTimetableNotFound
	}

	deleteQuery := `DELETE FROM schedule_items WHERE timetable_id = $1`
	if _, err := s.db.ExecContext(ctx, deleteQuery, timetable.ID); err != nil {
		log.Error("failed to clear schedule items",
			slog.String("error", err.Error()),
			slog.String("timetable_id", timetable.ID.String()))
		return err
	}

	if err := s.insertItems(ctx, timetable.ID, timetable.Items); err != nil {
		return err
	}

	log.Info("timetable saved successfully",
		slog.String("timetable_id", timetable.ID.String()),
		slog.Int("item_count", len(timetable.Items)))
	return nil
}

func (s *PostgresTimetableStore) loadItems(
	ctx context.Context,
	timetableID uuid.UUID,
) ([]*domain.ScheduleItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, subject, teacher, day, section,
		       start_time, end_time, start_minutes, end_minutes, time_slot_label
		FROM schedule_items
		WHERE timetable_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, timetableID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []*domain.ScheduleItem{}
	for rows.Next() {
		var item domain.ScheduleItem
		var day, section string

		err := rows.Scan(
			&item.ID,
			&item.Subject,
			&item.Teacher,
			&day,
			&section,
			&item.StartTime,
			&item.EndTime,
			&item.StartMinutes,
			&item.EndMinutes,
			&item.TimeSlotLabel,
		)
		if err != nil {
			return nil, err
		}

		item.Day = domain.Weekday(day)
		item.Section = domain.Section(section)
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (s *PostgresTimetableStore) insertItems(
	ctx context.Context,
	timetableID uuid.UUID,
	items []*domain.ScheduleItem,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO schedule_items (
			id, timetable_id, position, subject, teacher, day, section,
			start_time, end_time, start_minutes, end_minutes, time_slot_label
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for position, item := range items {
		_, err := s.db.ExecContext(
			ctx,
			query,
			item.ID,
			timetableID,
			position,
			item.Subject,
			item.Teacher,
			string(item.Day),
			string(item.Section),
			item.StartTime,
			item.EndTime,
			item.StartMinutes,
			item.EndMinutes,
			item.TimeSlotLabel,
		)
		if err != nil {
			log.Error("failed to insert schedule item",
				slog.String("error", err.Error()),
				slog.String("item_id", item.ID.String()),
				slog.String("timetable_id", timetableID.String()))
			return err
		}
	}

	return nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/phrazzld/timetable-api/internal/domain"
	"github.com/phrazzld/timetable-api/internal/platform/logger"
	"github.com/phrazzld/timetable-api/internal/store"
)

// SlotInput carries the caller-supplied fields for a new schedule item.
// Syntactic validation (enum membership, time format) happens at the API
// boundary; the domain still enforces its own semantic checks.
type SlotInput struct {
	Subject       string
	Teacher       string
	Day           domain.Weekday
	Section       domain.Section
	StartTime     string
	EndTime       string
	TimeSlotLabel string
}

// TimetableService provides timetable-related operations. Every mutation is
// atomic from the caller's perspective: either the invariant-preserving new
// state is committed, or the prior state is observed unchanged.
type TimetableService interface {
	// GetTimetable returns the owner's timetable, creating an empty one on
	// first access.
	GetTimetable(ctx context.Context, ownerID uuid.UUID) (*domain.Timetable, error)

	// AddSlot adds a new schedule item, lazily creating the timetable if
	// the owner has none. Returns a *domain.ConflictError if the item would
	// double-book a teacher or section.
	AddSlot(ctx context.Context, ownerID uuid.UUID, input SlotInput) (*domain.Timetable, error)

	// UpdateSlot applies a partial update to an existing item. The item
	// being updated is excluded from its own conflict comparison set.
	// Returns ErrSlotNotFound if the item does not exist and a
	// *domain.ConflictError if the update would double-book.
	UpdateSlot(
		ctx context.Context,
		ownerID uuid.UUID,
		slotID uuid.UUID,
		patch domain.ScheduleItemPatch,
	) (*domain.Timetable, error)

	// RemoveSlot deletes an item. Removing an ID that is absent from an
	// existing timetable is a harmless no-op; a missing timetable is
	// ErrTimetableNotFound.
	RemoveSlot(ctx context.Context, ownerID uuid.UUID, slotID uuid.UUID) (*domain.Timetable, error)

	// ClearTimetable removes every item from an existing timetable.
	// Returns ErrTimetableNotFound if the owner has none.
	ClearTimetable(ctx context.Context, ownerID uuid.UUID) (*domain.Timetable, error)
}

// timetableServiceImpl implements the TimetableService interface.
//
// Mutations are read-modify-write over the whole collection, so they are
// serialized per owner with an in-process mutex; operations on different
// owners proceed in parallel. The read path keeps a short-lived per-owner
// cache that every mutation invalidates under the same lock.
type timetableServiceImpl struct {
	db             *sql.DB
	timetableStore store.TimetableStore
	cache          *gocache.Cache
	cacheTTL       time.Duration
	logger         *slog.Logger

	locks sync.Map // owner uuid.UUID -> *sync.Mutex
}

// Ensure timetableServiceImpl implements TimetableService.
var _ TimetableService = (*timetableServiceImpl)(nil)

// NewTimetableService creates a new TimetableService.
func NewTimetableService(
	db *sql.DB,
	timetableStore store.TimetableStore,
	cacheTTL time.Duration,
	cacheCleanupInterval time.Duration,
	log *slog.Logger,
) TimetableService {
	if log == nil {
		log = slog.Default()
	}

	return &timetableServiceImpl{
		db:             db,
		timetableStore: timetableStore,
		cache:          gocache.New(cacheTTL, cacheCleanupInterval),
		cacheTTL:       cacheTTL,
		logger:         log.With(slog.String("component", "timetable_service")),
	}
}

// ownerLock returns the mutex serializing operations for one owner.
func (s *timetableServiceImpl) ownerLock(ownerID uuid.UUID) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(ownerID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// GetTimetable implements TimetableService.GetTimetable.
func (s *timetableServiceImpl) GetTimetable(
	ctx context.Context,
	ownerID uuid.UUID,
) (*domain.Timetable, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if cached, ok := s.cache.Get(ownerID.String()); ok {
		log.Debug("timetable cache hit", slog.String("owner_id", ownerID.String()))
		return cached.(*domain.Timetable), nil
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	// Another request may have populated the cache while we waited.
	if cached, ok := s.cache.Get(ownerID.String()); ok {
		return cached.(*domain.Timetable), nil
	}

	var timetable *domain.Timetable
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		ts := s.timetableStore.WithTx(tx)

		loaded, err := ts.GetByOwner(ctx, ownerID)
		if err == nil {
			timetable = loaded
			return nil
		}
		if !errors.Is(err, store.ErrTimetableNotFound) {
			return err
		}

		// First access: create an empty timetable. Creation itself never
		// conflicts.
		created, err := domain.NewTimetable(ownerID)
		if err != nil {
			return err
		}
		if err := ts.Create(ctx, created); err != nil {
			return err
		}

		log.Info("created timetable on first access",
			slog.String("owner_id", ownerID.String()))
		timetable = created
		return nil
	})
	if err != nil {
		return nil, NewTimetableServiceError("get_timetable", "failed to load timetable", err)
	}

	s.cache.Set(ownerID.String(), timetable, s.cacheTTL)
	return timetable, nil
}

// AddSlot implements TimetableService.AddSlot.
func (s *timetableServiceImpl) AddSlot(
	ctx context.Context,
	ownerID uuid.UUID,
	input SlotInput,
) (*domain.Timetable, error) {
	item, err := domain.NewScheduleItem(
		input.Subject,
		input.Teacher,
		input.Day,
		input.Section,
		input.StartTime,
		input.EndTime,
		input.TimeSlotLabel,
	)
	if err != nil {
		return nil, NewTimetableServiceError("add_slot", "invalid schedule item", err)
	}

	return s.mutate(ctx, ownerID, "add_slot", true, func(t *domain.Timetable) error {
		return t.Add(item)
	})
}

// UpdateSlot implements TimetableService.UpdateSlot.
func (s *timetableServiceImpl) UpdateSlot(
	ctx context.Context,
	ownerID uuid.UUID,
	slotID uuid.UUID,
	patch domain.ScheduleItemPatch,
) (*domain.Timetable, error) {
	return s.mutate(ctx, ownerID, "update_slot", false, func(t *domain.Timetable) error {
		_, err := t.Update(slotID, patch)
		return err
	})
}

// RemoveSlot implements TimetableService.RemoveSlot.
func (s *timetableServiceImpl) RemoveSlot(
	ctx context.Context,
	ownerID uuid.UUID,
	slotID uuid.UUID,
) (*domain.Timetable, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return s.mutate(ctx, ownerID, "remove_slot", false, func(t *domain.Timetable) error {
		// Removing an absent ID filters nothing and saves the unchanged
		// list: a deliberate idempotent delete, not an error.
		if removed := t.Remove(slotID); !removed {
			log.Debug("remove of absent schedule item treated as no-op",
				slog.String("owner_id", ownerID.String()),
				slog.String("slot_id", slotID.String()))
		}
		return nil
	})
}

// ClearTimetable implements TimetableService.ClearTimetable.
func (s *timetableServiceImpl) ClearTimetable(
	ctx context.Context,
	ownerID uuid.UUID,
) (*domain.Timetable, error) {
	return s.mutate(ctx, ownerID, "clear_timetable", false, func(t *domain.Timetable) error {
		t.Clear()
		return nil
	})
}

// mutate runs one read-modify-write cycle under the owner's lock: load the
// timetable (optionally lazy-creating it), apply the domain mutation, and
// save — all inside a single transaction. On any error nothing is committed
// and the cache is left alone; on success the cached copy is invalidated.
func (s *timetableServiceImpl) mutate(
	ctx context.Context,
	ownerID uuid.UUID,
	operation string,
	createIfMissing bool,
	fn func(*domain.Timetable) error,
) (*domain.Timetable, error) {
	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	var timetable *domain.Timetable
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		ts := s.timetableStore.WithTx(tx)

		loaded, err := ts.GetByOwner(ctx, ownerID)
		switch {
		case err == nil:
			timetable = loaded
		case errors.Is(err, store.ErrTimetableNotFound) && createIfMissing:
			created, err := domain.NewTimetable(ownerID)
			if err != nil {
				return err
			}
			if err := ts.Create(ctx, created); err != nil {
				return err
			}
			timetable = created
		default:
			return err
		}

		if err := fn(timetable); err != nil {
			return err
		}

		return ts.Save(ctx, timetable)
	})
	if err != nil {
		return nil, NewTimetableServiceError(operation, "mutation failed", err)
	}

	s.cache.Delete(ownerID.String())
	return timetable, nil
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Timetable.
var (
	ErrTimetableIDEmpty    = errors.New("timetable ID cannot be empty")
	ErrTimetableOwnerEmpty = errors.New("timetable owner ID cannot be empty")
	ErrSlotNotFound        = errors.New("schedule item not found")
	ErrDuplicateSlotID     = errors.New("duplicate schedule item ID")
)

// Timetable is one user's ordered collection of schedule items. Insertion
// order is display order. All mutations enforce the conflict rules before
// committing: either the invariant-preserving new state is fully applied, or
// the prior state is left unchanged.
//
// A Timetable is not safe for concurrent use; callers must serialize
// mutations per owner.
type Timetable struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	Items       []*ScheduleItem `json:"items"`
	LastUpdated time.Time       `json:"last_updated"`
}

// NewTimetable creates an empty timetable for the given owner. Creation
// itself never conflicts.
func NewTimetable(ownerID uuid.UUID) (*Timetable, error) {
	t := &Timetable{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Items:       []*ScheduleItem{},
		LastUpdated: time.Now().UTC(),
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks the timetable's own fields plus the collection invariants:
// valid items, unique item IDs, and no teacher or section double-booking.
func (t *Timetable) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTimetableIDEmpty
	}

	if t.OwnerID == uuid.Nil {
		return ErrTimetableOwnerEmpty
	}

	seen := make(map[uuid.UUID]struct{}, len(t.Items))
	for idx, item := range t.Items {
		if err := item.Validate(); err != nil {
			return err
		}

		if _, dup := seen[item.ID]; dup {
			return ErrDuplicateSlotID
		}
		seen[item.ID] = struct{}{}

		if conflict := CheckConflict(item, t.Items[:idx]); conflict != nil {
			return conflict
		}
	}

	return nil
}

// Add appends the item to the timetable after checking it against every
// existing item. On conflict it returns a *ConflictError and leaves the
// timetable unchanged.
func (t *Timetable) Add(item *ScheduleItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	if conflict := CheckConflict(item, t.Items); conflict != nil {
		return conflict
	}

	t.Items = append(t.Items, item)
	t.touch()
	return nil
}

// Update applies the patch onto a copy of the identified item, checks the
// copy against every other item (the item may legally overlap its own old
// interval), and only then replaces the stored item in place.
// Returns ErrSlotNotFound if no item has the given ID, or a *ConflictError
// if the updated item would double-book; the stored item is unchanged in
// either case.
func (t *Timetable) Update(id uuid.UUID, patch ScheduleItemPatch) (*ScheduleItem, error) {
	idx := t.indexOf(id)
	if idx < 0 {
		return nil, ErrSlotNotFound
	}

	updated, err := t.Items[idx].WithPatch(patch)
	if err != nil {
		return nil, err
	}

	others := make([]*ScheduleItem, 0, len(t.Items)-1)
	others = append(others, t.Items[:idx]...)
	others = append(others, t.Items[idx+1:]...)

	if conflict := CheckConflict(updated, others); conflict != nil {
		return nil, conflict
	}

	t.Items[idx] = updated
	t.touch()
	return updated, nil
}

// Remove deletes the item with the given ID, preserving the order of the
// rest. Removing an absent ID is a harmless no-op, not an error; the
// returned bool reports whether anything was removed. LastUpdated is
// refreshed either way, matching the original filter-and-save behavior.
func (t *Timetable) Remove(id uuid.UUID) bool {
	idx := t.indexOf(id)
	if idx >= 0 {
		t.Items = append(t.Items[:idx], t.Items[idx+1:]...)
	}
	t.touch()
	return idx >= 0
}

// Clear empties the item sequence. An empty timetable has no overlaps by
// construction, so any valid item can be added afterwards.
func (t *Timetable) Clear() {
	t.Items = []*ScheduleItem{}
	t.touch()
}

func (t *Timetable) indexOf(id uuid.UUID) int {
	for i, item := range t.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (t *Timetable) touch() {
	t.LastUpdated = time.Now().UTC()
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/timetable-api/internal/domain"
)

// AddSlot validates the item before opening a transaction, so nil database
// and store dependencies are safe for these cases.
func TestAddSlotRejectsInvalidInput(t *testing.T) {
	svc := NewTimetableService(nil, nil, 0, 0, nil)
	ownerID := uuid.New()

	tests := []struct {
		name    string
		input   SlotInput
		wantErr error
	}{
		{
			name: "malformed start time",
			input: SlotInput{
				Subject: "Math", Teacher: "Mr. Smith",
				Day: domain.Monday, Section: domain.SectionB,
				StartTime: "9am", EndTime: "10:00", TimeSlotLabel: "morning",
			},
			wantErr: domain.ErrMalformedTime,
		},
		{
			name: "end not after start",
			input: SlotInput{
				Subject: "Math", Teacher: "Mr. Smith",
				Day: domain.Monday, Section: domain.SectionB,
				StartTime: "10:00", EndTime: "10:00", TimeSlotLabel: "morning",
			},
			wantErr: domain.ErrEndNotAfterStart,
		},
		{
			name: "empty subject",
			input: SlotInput{
				Subject: "", Teacher: "Mr. Smith",
				Day: domain.Monday, Section: domain.SectionB,
				StartTime: "09:00", EndTime: "10:00", TimeSlotLabel: "morning",
			},
			wantErr: domain.ErrItemSubjectEmpty,
		},
		{
			name: "invalid day",
			input: SlotInput{
				Subject: "Math", Teacher: "Mr. Smith",
				Day: "Sun", Section: domain.SectionB,
				StartTime: "09:00", EndTime: "10:00", TimeSlotLabel: "morning",
			},
			wantErr: domain.ErrItemDayInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			timetable, err := svc.AddSlot(context.Background(), ownerID, tc.input)
			require.Error(t, err)
			assert.Nil(t, timetable)
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
		})
	}
}

func TestOwnerLockIsStablePerOwner(t *testing.T) {
	svc := NewTimetableService(nil, nil, 0, 0, nil).(*timetableServiceImpl)

	ownerA := uuid.New()
	ownerB := uuid.New()

	lockA1 := svc.ownerLock(ownerA)
	lockA2 := svc.ownerLock(ownerA)
	lockB := svc.ownerLock(ownerB)

	assert.Same(t, lockA1, lockA2, "same owner must map to the same mutex")
	assert.NotSame(t, lockA1, lockB, "different owners must not share a mutex")
}

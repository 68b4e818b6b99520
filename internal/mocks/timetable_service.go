package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/timetable-api/internal/domain"
	"github.com/phrazzld/timetable-api/internal/service"
)

// MockTimetableService implements service.TimetableService for testing
type MockTimetableService struct {
	// Function fields for customizable behavior
	GetTimetableFn func(ctx context.Context, ownerID uuid.UUID) (*domain.Timetable, error)
	AddSlotFn      func(
		ctx context.Context,
		ownerID uuid.UUID,
		input service.SlotInput,
	) (*domain.Timetable, error)
	UpdateSlotFn func(
		ctx context.Context,
		ownerID uuid.UUID,
		slotID uuid.UUID,
		patch domain.ScheduleItemPatch,
	) (*domain.Timetable, error)
	RemoveSlotFn func(
		ctx context.Context,
		ownerID uuid.UUID,
		slotID uuid.UUID,
	) (*domain.Timetable, error)
	ClearTimetableFn func(ctx context.Context, ownerID uuid.UUID) (*domain.Timetable, error)

	// Default values used when functions aren't explicitly defined
	Timetable *domain.Timetable
	Err       error
}

// GetTimetable implements the service.TimetableService interface
func (m *MockTimetableService) GetTimetable(
	ctx context.Context,
	ownerID uuid.UUID,
) (*domain.Timetable, error) {
	if m.GetTimetableFn != nil {
		return m.GetTimetableFn(ctx, ownerID)
	}

	return m.Timetable, m.Err
}

// AddSlot implements the service.TimetableService interface
func (m *MockTimetableService) AddSlot(
	ctx context.Context,
	ownerID uuid.UUID,
	input service.SlotInput,
) (*domain.Timetable, error) {
	if m.AddSlotFn != nil {
		return m.AddSlotFn(ctx, ownerID, input)
	}

	return m.Timetable, m.Err
}

// UpdateSlot implements the service.TimetableService interface
func (m *MockTimetableService) UpdateSlot(
	ctx context.Context,
	ownerID uuid.UUID,
	slotID uuid.UUID,
	patch domain.ScheduleItemPatch,
) (*domain.Timetable, error) {
	if m.UpdateSlotFn != nil {
		return m.UpdateSlotFn(ctx, ownerID, slotID, patch)
	}

	return m.Timetable, m.Err
}

// RemoveSlot implements the service.TimetableService interface
func (m *MockTimetableService) RemoveSlot(
	ctx context.Context,
	ownerID uuid.UUID,
	slotID uuid.UUID,
) (*domain.Timetable, error) {
	if m.RemoveSlotFn != nil {
		return m.RemoveSlotFn(ctx, ownerID, slotID)
	}

	return m.Timetable, m.Err
}

// ClearTimetable implements the service.TimetableService interface
func (m *MockTimetableService) ClearTimetable(
	ctx context.Context,
	ownerID uuid.UUID,
) (*domain.Timetable, error) {
	if m.ClearTimetableFn != nil {
		return m.ClearTimetableFn(ctx, ownerID)
	}

	return m.Timetable, m.Err
}

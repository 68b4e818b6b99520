package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/timetable-api/internal/api/shared"
	"github.com/phrazzld/timetable-api/internal/domain"
	"github.com/phrazzld/timetable-api/internal/mocks"
	"github.com/phrazzld/timetable-api/internal/service"
)

func testTimetable(t *testing.T, ownerID uuid.UUID, items ...*domain.ScheduleItem) *domain.Timetable {
	t.Helper()

	timetable, err := domain.NewTimetable(ownerID)
	require.NoError(t, err)
	for _, item := range items {
		require.NoError(t, timetable.Add(item))
	}
	return timetable
}

func testSlot(t *testing.T, teacher string, section domain.Section, start, end string) *domain.ScheduleItem {
	t.Helper()

	item, err := domain.NewScheduleItem(
		"Math", teacher, domain.Monday, section, start, end, start+" - "+end,
	)
	require.NoError(t, err)
	return item
}

// newTimetableRequest builds a request with the user ID in context and, if
// slotID is non-empty, a chi route parameter named "id".
func newTimetableRequest(
	t *testing.T,
	method, path string,
	body interface{},
	userID uuid.UUID,
	slotID string,
) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	if slotID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", slotID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	if userID != uuid.Nil {
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
	}

	return req
}

func TestGetTimetable(t *testing.T) {
	userID := uuid.New()
	item := testSlot(t, "Mr. Smith", domain.SectionB, "09:00", "10:00")
	timetable := testTimetable(t, userID, item)

	mockService := &mocks.MockTimetableService{Timetable: timetable}
	handler := NewTimetableHandler(mockService, nil)

	req := newTimetableRequest(t, http.MethodGet, "/api/timetable", nil, userID, "")
	rr := httptest.NewRecorder()

	handler.GetTimetable(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp TimetableResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Timetable, 1)
	assert.Equal(t, item.ID.String(), resp.Timetable[0].ID)
	assert.Equal(t, "Mr. Smith", resp.Timetable[0].Teacher)
	assert.Equal(t, "09:00", resp.Timetable[0].StartTime)
	assert.Equal(t, "B", resp.Timetable[0].Section)
}

func TestGetTimetableMissingUserID(t *testing.T) {
	handler := NewTimetableHandler(&mocks.MockTimetableService{}, nil)

	req := newTimetableRequest(t, http.MethodGet, "/api/timetable", nil, uuid.Nil, "")
	rr := httptest.NewRecorder()

	handler.GetTimetable(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAddSlot(t *testing.T) {
	userID := uuid.New()
	item := testSlot(t, "Mr. Smith", domain.SectionB, "09:00", "10:00")
	timetable := testTimetable(t, userID, item)

	var gotInput service.SlotInput
	mockService := &mocks.MockTimetableService{
		AddSlotFn: func(
			ctx context.Context,
			ownerID uuid.UUID,
			input service.SlotInput,
		) (*domain.Timetable, error) {
			gotInput = input
			return timetable, nil
		},
	}
	handler := NewTimetableHandler(mockService, nil)

	body := CreateSlotRequest{
		Subject:       "Math",
		Teacher:       "Mr. Smith",
		Day:           "Mon",
		Section:       "B",
		StartTime:     "09:00",
		EndTime:       "10:00",
		TimeSlotLabel: "09:00 - 10:00",
	}
	req := newTimetableRequest(t, http.MethodPost, "/api/timetable/slots", body, userID, "")
	rr := httptest.NewRecorder()

	handler.AddSlot(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, domain.Monday, gotInput.Day)
	assert.Equal(t, domain.SectionB, gotInput.Section)

	var resp TimetableResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Timetable, 1)
}

func TestAddSlotConflict(t *testing.T) {
	userID := uuid.New()
	existing := testSlot(t, "Mr. Smith", domain.SectionB, "09:00", "10:00")

	conflict := &domain.ConflictError{
		Rule:        domain.ConflictRuleTeacher,
		Message:     "Teacher Mr. Smith is already teaching in Section B at this time!",
		Conflicting: existing,
	}
	mockService := &mocks.MockTimetableService{Err: conflict}
	handler := NewTimetableHandler(mockService, nil)

	body := CreateSlotRequest{
		Subject:       "Physics",
		Teacher:       "Mr. Smith",
		Day:           "Mon",
		Section:       "D",
		StartTime:     "09:30",
		EndTime:       "10:30",
		TimeSlotLabel: "09:30 - 10:30",
	}
	req := newTimetableRequest(t, http.MethodPost, "/api/timetable/slots", body, userID, "")
	rr := httptest.NewRecorder()

	handler.AddSlot(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)

	var resp ConflictResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.HasConflict)
	assert.Equal(t, conflict.Message, resp.Error)
	assert.Equal(t, "teacher", resp.Rule)
	assert.Equal(t, existing.ID.String(), resp.ConflictingSlotID)
}

func TestAddSlotValidation(t *testing.T) {
	userID := uuid.New()
	handler := NewTimetableHandler(&mocks.MockTimetableService{}, nil)

	tests := []struct {
		name string
		body CreateSlotRequest
	}{
		{
			"invalid day",
			CreateSlotRequest{
				Subject: "Math", Teacher: "Mr. Smith", Day: "Sunday", Section: "B",
				StartTime: "09:00", EndTime: "10:00", TimeSlotLabel: "l",
			},
		},
		{
			"invalid section",
			CreateSlotRequest{
				Subject: "Math", Teacher: "Mr. Smith", Day: "Mon", Section: "Q",
				StartTime: "09:00", EndTime: "10:00", TimeSlotLabel: "l",
			},
		},
		{
			"bad time format",
			CreateSlotRequest{
				Subject: "Math", Teacher: "Mr. Smith", Day: "Mon", Section: "B",
				StartTime: "9am", EndTime: "10:00", TimeSlotLabel: "l",
			},
		},
		{
			"missing subject",
			CreateSlotRequest{
				Teacher: "Mr. Smith", Day: "Mon", Section: "B",
				StartTime: "09:00", EndTime: "10:00", TimeSlotLabel: "l",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := newTimetableRequest(
				t, http.MethodPost, "/api/timetable/slots", tc.body, userID, "",
			)
			rr := httptest.NewRecorder()

			handler.AddSlot(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestAddSlotMalformedJSON(t *testing.T) {
	userID := uuid.New()
	handler := NewTimetableHandler(&mocks.MockTimetableService{}, nil)

	req := httptest.NewRequest(
		http.MethodPost, "/api/timetable/slots", bytes.NewBufferString("{not json"),
	)
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
	rr := httptest.NewRecorder()

	handler.AddSlot(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateSlot(t *testing.T) {
	userID := uuid.New()
	item := testSlot(t, "Mr. Smith", domain.SectionB, "11:00", "12:00")
	timetable := testTimetable(t, userID, item)

	var gotSlotID uuid.UUID
	var gotPatch domain.ScheduleItemPatch
	mockService := &mocks.MockTimetableService{
		UpdateSlotFn: func(
			ctx context.Context,
			ownerID uuid.UUID,
			slotID uuid.UUID,
			patch domain.ScheduleItemPatch,
		) (*domain.Timetable, error) {
			gotSlotID = slotID
			gotPatch = patch
			return timetable, nil
		},
	}
	handler := NewTimetableHandler(mockService, nil)

	newTeacher := "Ms. Jones"
	newDay := "Tue"
	body := UpdateSlotRequest{Teacher: &newTeacher, Day: &newDay}
	req := newTimetableRequest(
		t, http.MethodPut, "/api/timetable/slots/"+item.ID.String(),
		body, userID, item.ID.String(),
	)
	rr := httptest.NewRecorder()

	handler.UpdateSlot(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, item.ID, gotSlotID)
	require.NotNil(t, gotPatch.Teacher)
	assert.Equal(t, "Ms. Jones", *gotPatch.Teacher)
	require.NotNil(t, gotPatch.Day)
	assert.Equal(t, domain.Tuesday, *gotPatch.Day)
	assert.Nil(t, gotPatch.StartTime)
}

func TestUpdateSlotNotFound(t *testing.T) {
	userID := uuid.New()
	mockService := &mocks.MockTimetableService{Err: service.ErrSlotNotFound}
	handler := NewTimetableHandler(mockService, nil)

	slotID := uuid.New().String()
	body := UpdateSlotRequest{}
	req := newTimetableRequest(
		t, http.MethodPut, "/api/timetable/slots/"+slotID, body, userID, slotID,
	)
	rr := httptest.NewRecorder()

	handler.UpdateSlot(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateSlotInvalidID(t *testing.T) {
	userID := uuid.New()
	handler := NewTimetableHandler(&mocks.MockTimetableService{}, nil)

	body := UpdateSlotRequest{}
	req := newTimetableRequest(
		t, http.MethodPut, "/api/timetable/slots/not-a-uuid", body, userID, "not-a-uuid",
	)
	rr := httptest.NewRecorder()

	handler.UpdateSlot(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRemoveSlot(t *testing.T) {
	userID := uuid.New()
	timetable := testTimetable(t, userID)

	mockService := &mocks.MockTimetableService{Timetable: timetable}
	handler := NewTimetableHandler(mockService, nil)

	slotID := uuid.New().String()
	req := newTimetableRequest(
		t, http.MethodDelete, "/api/timetable/slots/"+slotID, nil, userID, slotID,
	)
	rr := httptest.NewRecorder()

	handler.RemoveSlot(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp TimetableResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Empty(t, resp.Timetable)
}

func TestRemoveSlotTimetableNotFound(t *testing.T) {
	userID := uuid.New()
	mockService := &mocks.MockTimetableService{Err: service.ErrTimetableNotFound}
	handler := NewTimetableHandler(mockService, nil)

	slotID := uuid.New().String()
	req := newTimetableRequest(
		t, http.MethodDelete, "/api/timetable/slots/"+slotID, nil, userID, slotID,
	)
	rr := httptest.NewRecorder()

	handler.RemoveSlot(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestClearTimetable(t *testing.T) {
	userID := uuid.New()
	timetable := testTimetable(t, userID)

	mockService := &mocks.MockTimetableService{Timetable: timetable}
	handler := NewTimetableHandler(mockService, nil)

	req := newTimetableRequest(t, http.MethodDelete, "/api/timetable/clear", nil, userID, "")
	rr := httptest.NewRecorder()

	handler.ClearTimetable(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp TimetableResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Empty(t, resp.Timetable)
}

func TestClearTimetableNotFound(t *testing.T) {
	userID := uuid.New()
	mockService := &mocks.MockTimetableService{Err: service.ErrTimetableNotFound}
	handler := NewTimetableHandler(mockService, nil)

	req := newTimetableRequest(t, http.MethodDelete, "/api/timetable/clear", nil, userID, "")
	rr := httptest.NewRecorder()

	handler.ClearTimetable(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTimetableMutationUnexpectedError(t *testing.T) {
	userID := uuid.New()
	mockService := &mocks.MockTimetableService{Err: errors.New("database gone")}
	handler := NewTimetableHandler(mockService, nil)

	req := newTimetableRequest(t, http.MethodDelete, "/api/timetable/clear", nil, userID, "")
	rr := httptest.NewRecorder()

	handler.ClearTimetable(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	// The raw error string must never reach the client
	assert.NotContains(t, rr.Body.String(), "database gone")
}

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/timetable-api/internal/api/shared"
	"github.com/phrazzld/timetable-api/internal/domain"
	"github.com/phrazzld/timetable-api/internal/platform/logger"
	"github.com/phrazzld/timetable-api/internal/service"
)

// CreateSlotRequest represents the request body for adding a schedule item.
// Day and section values mirror the configured domain label sets.
type CreateSlotRequest struct {
	Subject       string `json:"subject"         validate:"required,min=1"`
	Teacher       string `json:"teacher"         validate:"required,min=1"`
	Day           string `json:"day"             validate:"required,oneof=Mon Tue Wed Thu Fri"`
	Section       string `json:"section"         validate:"required,oneof=B D"`
	StartTime     string `json:"start_time"      validate:"required,datetime=15:04"`
	EndTime       string `json:"end_time"        validate:"required,datetime=15:04"`
	TimeSlotLabel string `json:"time_slot_label" validate:"required"`
}

// UpdateSlotRequest represents the request body for partially updating a
// schedule item. Absent fields leave the stored values untouched.
type UpdateSlotRequest struct {
	Subject       *string `json:"subject"         validate:"omitempty,min=1"`
	Teacher       *string `json:"teacher"         validate:"omitempty,min=1"`
	Day           *string `json:"day"             validate:"omitempty,oneof=Mon Tue Wed Thu Fri"`
	Section       *string `json:"section"         validate:"omitempty,oneof=B D"`
	StartTime     *string `json:"start_time"      validate:"omitempty,datetime=15:04"`
	EndTime       *string `json:"end_time"        validate:"omitempty,datetime=15:04"`
	TimeSlotLabel *string `json:"time_slot_label" validate:"omitempty"`
}

// SlotResponse represents the response data for one schedule item.
type SlotResponse struct {
	ID            string `json:"id"`
	Subject       string `json:"subject"`
	Teacher       string `json:"teacher"`
	Day           string `json:"day"`
	Section       string `json:"section"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	TimeSlotLabel string `json:"time_slot_label"`
}

// TimetableResponse represents the response data for a whole timetable.
type TimetableResponse struct {
	Timetable   []SlotResponse `json:"timetable"`
	LastUpdated time.Time      `json:"last_updated"`
}

// ConflictResponse is the payload returned when a mutation would
// double-book a teacher or section.
type ConflictResponse struct {
	Error             string `json:"error"`
	HasConflict       bool   `json:"has_conflict"`
	Rule              string `json:"rule"`
	ConflictingSlotID string `json:"conflicting_slot_id,omitempty"`
	TraceID           string `json:"trace_id,omitempty"`
}

// TimetableHandler handles timetable-related HTTP requests.
type TimetableHandler struct {
	timetableService service.TimetableService
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewTimetableHandler creates a new TimetableHandler.
func NewTimetableHandler(
	timetableService service.TimetableService,
	log *slog.Logger,
) *TimetableHandler {
	if log == nil {
		log = slog.Default()
	}

	return &TimetableHandler{
		timetableService: timetableService,
		validator:        validator.New(),
		logger:           log.With(slog.String("component", "timetable_handler")),
	}
}

// GetTimetable handles GET /api/timetable requests.
// The timetable is created empty on first access.
func (h *TimetableHandler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	timetable, err := h.timetableService.GetTimetable(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch timetable")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, timetableToResponse(timetable))
}

// AddSlot handles POST /api/timetable/slots requests.
func (h *TimetableHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateSlotRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	timetable, err := h.timetableService.AddSlot(r.Context(), userID, service.SlotInput{
		Subject:       req.Subject,
		Teacher:       req.Teacher,
		Day:           domain.Weekday(req.Day),
		Section:       domain.Section(req.Section),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		TimeSlotLabel: req.TimeSlotLabel,
	})
	if err != nil {
		h.respondMutationError(w, r, err, "Failed to add time slot")
		return
	}

	log.Debug("time slot added",
		slog.String("user_id", userID.String()),
		slog.Int("item_count", len(timetable.Items)))
	shared.RespondWithJSON(w, r, http.StatusCreated, timetableToResponse(timetable))
}

// UpdateSlot handles PUT /api/timetable/slots/{id} requests.
func (h *TimetableHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	slotID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateSlotRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	patch := domain.ScheduleItemPatch{
		Subject:       req.Subject,
		Teacher:       req.Teacher,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		TimeSlotLabel: req.TimeSlotLabel,
	}
	if req.Day != nil {
		day := domain.Weekday(*req.Day)
		patch.Day = &day
	}
	if req.Section != nil {
		section := domain.Section(*req.Section)
		patch.Section = &section
	}

	timetable, err := h.timetableService.UpdateSlot(r.Context(), userID, slotID, patch)
	if err != nil {
		h.respondMutationError(w, r, err, "Failed to update time slot")
		return
	}

	log.Debug("time slot updated",
		slog.String("user_id", userID.String()),
		slog.String("slot_id", slotID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, timetableToResponse(timetable))
}

// RemoveSlot handles DELETE /api/timetable/slots/{id} requests.
// Removing an ID that is no longer present succeeds with the unchanged
// list; deletion is idempotent.
func (h *TimetableHandler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	slotID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	timetable, err := h.timetableService.RemoveSlot(r.Context(), userID, slotID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove time slot")
		return
	}

	log.Debug("time slot removed",
		slog.String("user_id", userID.String()),
		slog.String("slot_id", slotID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, timetableToResponse(timetable))
}

// ClearTimetable handles DELETE /api/timetable/clear requests.
func (h *TimetableHandler) ClearTimetable(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	timetable, err := h.timetableService.ClearTimetable(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to clear timetable")
		return
	}

	log.Debug("timetable cleared", slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, timetableToResponse(timetable))
}

// respondMutationError handles errors from add/update: conflicts get their
// dedicated payload, everything else goes through the generic mapping.
func (h *TimetableHandler) respondMutationError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	fallbackMessage string,
) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		resp := ConflictResponse{
			Error:       conflict.Message,
			HasConflict: true,
			Rule:        string(conflict.Rule),
			TraceID:     shared.GetTraceID(r.Context()),
		}
		if conflict.Conflicting != nil {
			resp.ConflictingSlotID = conflict.Conflicting.ID.String()
		}
		shared.RespondWithJSON(w, r, http.StatusConflict, resp)
		return
	}

	HandleAPIError(w, r, err, fallbackMessage)
}

// timetableToResponse converts a domain.Timetable to a TimetableResponse.
func timetableToResponse(timetable *domain.Timetable) TimetableResponse {
	slots := make([]SlotResponse, 0, len(timetable.Items))
	for _, item := range timetable.Items {
		slots = append(slots, slotToResponse(item))
	}

	return TimetableResponse{
		Timetable:   slots,
		LastUpdated: timetable.LastUpdated,
	}
}

// slotToResponse converts a domain.ScheduleItem to a SlotResponse.
func slotToResponse(item *domain.ScheduleItem) SlotResponse {
	return SlotResponse{
		ID:            item.ID.String(),
		Subject:       item.Subject,
		Teacher:       item.Teacher,
		Day:           string(item.Day),
		Section:       string(item.Section),
		StartTime:     item.StartTime,
		EndTime:       item.EndTime,
		TimeSlotLabel: item.TimeSlotLabel,
	}
}

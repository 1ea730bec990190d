package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/usecase"
	"institute-admin-console/pkg/response"
	"institute-admin-console/pkg/validator"

	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
	validator   *validator.CustomValidator
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase, validator *validator.CustomValidator) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

// decodeSlotQuery reads and validates the slot window from the query string.
// It writes the error response itself and reports whether the caller may go on.
func (h *SlotHandler) decodeSlotQuery(w http.ResponseWriter, r *http.Request) (*dto.SlotListQuery, bool) {
	var query dto.SlotListQuery
	if err := decodeQuery(r, &query); err != nil {
		response.BadRequest(w, "Invalid query parameters")
		return nil, false
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}
	return &query, true
}

func (h *SlotHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}
	query, ok := h.decodeSlotQuery(w, r)
	if !ok {
		return
	}

	slots, err := h.slotUsecase.List(r.Context(), session, query)
	if err != nil {
		writeUpstreamError(w, err, "Failed to get slots")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Slots retrieved successfully", slots, pageMeta(slots.Page))
}

func (h *SlotHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	query, ok := h.decodeSlotQuery(w, r)
	if !ok {
		return
	}

	stats, err := h.slotUsecase.Stats(r.Context(), query.StartDate, query.EndDate)
	if err != nil {
		writeUpstreamError(w, err, "Failed to get slot statistics")
		return
	}

	response.Success(w, http.StatusOK, "Slot statistics retrieved successfully", stats)
}

// GetOverview returns the stats cards and the slot list of one window in a single call
func (h *SlotHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}
	query, ok := h.decodeSlotQuery(w, r)
	if !ok {
		return
	}

	overview, err := h.slotUsecase.Overview(r.Context(), session, query)
	if err != nil {
		writeUpstreamError(w, err, "Failed to get slot overview")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Slot overview retrieved successfully", overview, pageMeta(overview.Page))
}

func (h *SlotHandler) decodeBulkRequest(w http.ResponseWriter, r *http.Request) (*dto.BulkSlotRequest, bool) {
	var req dto.BulkSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return nil, false
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}
	return &req, true
}

func (h *SlotHandler) PreviewBulk(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeBulkRequest(w, r)
	if !ok {
		return
	}

	preview, err := h.slotUsecase.PreviewBulk(req)
	if err != nil {
		writeSlotPlanError(w, err, "Failed to preview slots")
		return
	}

	response.Success(w, http.StatusOK, "Slot preview generated successfully", preview)
}

func (h *SlotHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeBulkRequest(w, r)
	if !ok {
		return
	}

	result, err := h.slotUsecase.BulkCreate(r.Context(), session, req)
	if err != nil {
		writeSlotPlanError(w, err, "Failed to create slots")
		return
	}

	response.Success(w, http.StatusCreated, "Slots created successfully", result)
}

func (h *SlotHandler) SetBlocked(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req dto.SetSlotBlockedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.slotUsecase.SetBlocked(r.Context(), session, mux.Vars(r)["id"], *req.IsBlocked); err != nil {
		writeSlotError(w, err, "Failed to update slot")
		return
	}

	message := "Slot unblocked successfully"
	if *req.IsBlocked {
		message = "Slot blocked successfully"
	}
	response.Success(w, http.StatusOK, message, nil)
}

func (h *SlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.slotUsecase.Delete(r.Context(), session, mux.Vars(r)["id"]); err != nil {
		writeSlotError(w, err, "Failed to delete slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}

func writeSlotError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrSlotNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrSlotBooked), errors.Is(err, usecase.ErrSlotAlreadyInState):
		response.UnprocessableEntity(w, err.Error())
	default:
		writeUpstreamError(w, err, fallback)
	}
}

func writeSlotPlanError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, entity.ErrInvalidSlotDate),
		errors.Is(err, entity.ErrInvalidSlotTime),
		errors.Is(err, entity.ErrSlotDateRange),
		errors.Is(err, entity.ErrSlotTimeRange),
		errors.Is(err, entity.ErrNoTimeTemplates),
		errors.Is(err, entity.ErrSlotPlanTooLarge):
		response.BadRequest(w, err.Error())
	default:
		writeUpstreamError(w, err, fallback)
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/delivery/http/middleware"
	"institute-admin-console/internal/usecase"
	"institute-admin-console/pkg/response"
	"institute-admin-console/pkg/validator"

	"github.com/gorilla/mux"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var query dto.ListQuery
	if err := decodeQuery(r, &query); err != nil {
		response.BadRequest(w, "Invalid query parameters")
		return
	}

	bookings, err := h.consultationUsecase.List(r.Context(), session, &query)
	if err != nil {
		writeUpstreamError(w, err, "Failed to get consultations")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Consultations retrieved successfully", bookings, pageMeta(bookings.Page))
}

func (h *ConsultationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.consultationUsecase.UpdateStatus(r.Context(), session, mux.Vars(r)["id"], &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found, reload the list")
		case errors.Is(err, usecase.ErrInvalidBookingStatus):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrInvalidStatusTransition),
			errors.Is(err, usecase.ErrNoUploadedFiles),
			errors.Is(err, usecase.ErrConfirmationRequired):
			response.UnprocessableEntity(w, err.Error())
		default:
			writeUpstreamError(w, err, "Failed to update booking status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

// UploadFiles stages documents against a pending booking
func (h *ConsultationHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return
	}

	files, err := readUploads(w, r, "files")
	if err != nil {
		writeUploadError(w, err)
		return
	}

	uploadedBy := session.Profile.Email
	if uploadedBy == "" {
		uploadedBy = session.Profile.ID
	}

	staged, err := h.consultationUsecase.StageFiles(r.Context(), session.ID, mux.Vars(r)["id"], uploadedBy, files)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found, reload the list")
		case errors.Is(err, usecase.ErrNoFiles), errors.Is(err, usecase.ErrEmptyFile):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrBookingNotPending):
			response.UnprocessableEntity(w, err.Error())
		case errors.Is(err, usecase.ErrFileAlreadyStaged):
			response.Conflict(w, err.Error())
		default:
			writeUpstreamError(w, err, "Failed to upload files")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Files uploaded successfully", staged)
}

func (h *ConsultationHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	files, err := h.consultationUsecase.ListFiles(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, usecase.ErrBookingNotFound) {
			response.NotFound(w, "Booking not found, reload the list")
			return
		}
		writeUpstreamError(w, err, "Failed to get files")
		return
	}

	response.Success(w, http.StatusOK, "Files retrieved successfully", files)
}

func (h *ConsultationHandler) RemoveFile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	if err := h.consultationUsecase.RemoveFile(r.Context(), session, vars["id"], vars["fileId"]); err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found, reload the list")
		case errors.Is(err, usecase.ErrStagedFileNotFound):
			response.NotFound(w, "File not found")
		case errors.Is(err, usecase.ErrBookingNotPending):
			response.UnprocessableEntity(w, err.Error())
		default:
			writeUpstreamError(w, err, "Failed to remove file")
		}
		return
	}

	response.Success(w, http.StatusOK, "File removed successfully", nil)
}

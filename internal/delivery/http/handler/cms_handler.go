package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/usecase"
	"institute-admin-console/pkg/response"
	"institute-admin-console/pkg/validator"

	"github.com/gorilla/mux"
)

type CMSHandler struct {
	cmsUsecase    usecase.CMSUsecase
	uploadUsecase usecase.UploadUsecase
	validator     *validator.CustomValidator
}

func NewCMSHandler(cmsUsecase usecase.CMSUsecase, uploadUsecase usecase.UploadUsecase, validator *validator.CustomValidator) *CMSHandler {
	return &CMSHandler{
		cmsUsecase:    cmsUsecase,
		uploadUsecase: uploadUsecase,
		validator:     validator,
	}
}

func (h *CMSHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.cmsUsecase.GetSection(r.Context(), mux.Vars(r)["section"])
	if err != nil {
		writeCMSError(w, err, "Failed to get section")
		return
	}

	response.Success(w, http.StatusOK, "Section retrieved successfully", section)
}

func (h *CMSHandler) UpdateHTML(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateCMSHTMLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	section, err := h.cmsUsecase.UpdateHTML(r.Context(), session, mux.Vars(r)["section"], &req)
	if err != nil {
		writeCMSError(w, err, "Failed to update section")
		return
	}

	response.Success(w, http.StatusOK, "Section updated successfully", section)
}

func (h *CMSHandler) UpdateBanners(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBannersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	section, err := h.cmsUsecase.UpdateBanners(r.Context(), session, mux.Vars(r)["section"], &req)
	if err != nil {
		writeCMSError(w, err, "Failed to update banners")
		return
	}

	response.Success(w, http.StatusOK, "Banners updated successfully", section)
}

// UploadImage stores an image and returns its URL; nothing is saved to a section yet
func (h *CMSHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	files, err := readUploads(w, r, "file")
	if err != nil {
		writeUploadError(w, err)
		return
	}
	if len(files) != 1 {
		response.BadRequest(w, "Exactly one file is required")
		return
	}

	uploaded, err := h.uploadUsecase.UploadImage(r.Context(), files[0])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyFile), errors.Is(err, usecase.ErrUnsupportedFileType):
			response.BadRequest(w, err.Error())
		default:
			writeUpstreamError(w, err, "Failed to upload image")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Image uploaded successfully", uploaded)
}

func writeCMSError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidSection):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrSectionHoldsBanners), errors.Is(err, usecase.ErrSectionHoldsHTML):
		response.UnprocessableEntity(w, err.Error())
	case errors.Is(err, usecase.ErrCorruptBannerList):
		response.BadGateway(w, err.Error())
	default:
		writeUpstreamError(w, err, fallback)
	}
}

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

type BranchHandler struct {
	branchUsecase usecase.BranchUsecase
	validator     *validator.CustomValidator
}

func NewBranchHandler(branchUsecase usecase.BranchUsecase, validator *validator.CustomValidator) *BranchHandler {
	return &BranchHandler{
		branchUsecase: branchUsecase,
		validator:     validator,
	}
}

func (h *BranchHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	branches, err := h.branchUsecase.List(r.Context(), session)
	if err != nil {
		writeUpstreamError(w, err, "Failed to get branches")
		return
	}

	response.Success(w, http.StatusOK, "Branches retrieved successfully", branches)
}

func (h *BranchHandler) ReplaceBranch(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req dto.ReplaceBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	branch, err := h.branchUsecase.Replace(r.Context(), session, mux.Vars(r)["id"], &req)
	if err != nil {
		if errors.Is(err, usecase.ErrBranchNotFound) {
			response.NotFound(w, "Branch not found")
			return
		}
		writeUpstreamError(w, err, "Failed to update branch")
		return
	}

	response.Success(w, http.StatusOK, "Branch updated successfully", branch)
}

package handler

import (
	"errors"
	"net/http"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/usecase"
	"institute-admin-console/pkg/response"

	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
}

func NewReviewHandler(reviewUsecase usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
	}
}

// ListReviews handles listing reviews with search, status and course filters
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Param search query string false "Name, email, comment or id"
// @Param status query string false "pending | approved | ALL"
// @Param course query string false "Course"
// @Param page query int false "Page"
// @Success 200 {object} response.Response
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var query dto.ListQuery
	if err := decodeQuery(r, &query); err != nil {
		response.BadRequest(w, "Invalid query parameters")
		return
	}

	reviews, err := h.reviewUsecase.List(r.Context(), session, &query)
	if err != nil {
		writeUpstreamError(w, err, "Failed to get reviews")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Reviews retrieved successfully", reviews, pageMeta(reviews.Page))
}

func (h *ReviewHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	review, err := h.reviewUsecase.Approve(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		writeReviewError(w, err, "Failed to approve review")
		return
	}

	response.Success(w, http.StatusOK, "Review approved successfully", review)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.reviewUsecase.Delete(r.Context(), session, mux.Vars(r)["id"]); err != nil {
		writeReviewError(w, err, "Failed to delete review")
		return
	}

	response.Success(w, http.StatusOK, "Review deleted successfully", nil)
}

func writeReviewError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrReviewNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrReviewAlreadyApproved):
		response.UnprocessableEntity(w, err.Error())
	default:
		writeUpstreamError(w, err, fallback)
	}
}

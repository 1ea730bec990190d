package handler

import (
	"errors"
	"net/http"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/usecase"
	"institute-admin-console/pkg/response"

	"github.com/gorilla/mux"
)

type StudentHandler struct {
	studentUsecase usecase.StudentUsecase
}

func NewStudentHandler(studentUsecase usecase.StudentUsecase) *StudentHandler {
	return &StudentHandler{
		studentUsecase: studentUsecase,
	}
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	var query dto.ListQuery
	if err := decodeQuery(r, &query); err != nil {
		response.BadRequest(w, "Invalid query parameters")
		return
	}

	students, err := h.studentUsecase.List(r.Context(), session, &query)
	if err != nil {
		writeUpstreamError(w, err, "Failed to get students")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Students retrieved successfully", students, pageMeta(students.Page))
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.studentUsecase.Delete(r.Context(), session, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, usecase.ErrStudentNotFound) {
			response.NotFound(w, "Student not found")
			return
		}
		writeUpstreamError(w, err, "Failed to delete student")
		return
	}

	response.Success(w, http.StatusOK, "Student deleted successfully", nil)
}

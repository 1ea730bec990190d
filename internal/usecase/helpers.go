package usecase

import (
	"errors"
	"strings"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/pkg/listview"

	"github.com/jackc/pgx/v5/pgconn"
)

// Screen names, used as mirror scopes and cursor keys
const (
	screenConsultations = "consultations"
	screenStudents      = "students"
	screenSlots         = "slots"
	screenBranches      = "branches"
	screenReviews       = "reviews"
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// listQuery converts request parameters into pipeline predicates. Only the
// named dimensions are kept.
func listQuery(q *dto.ListQuery, pageSize int, dimensions ...string) listview.Query {
	if q == nil {
		q = &dto.ListQuery{}
	}
	values := map[string]string{
		"status": q.Status,
		"mode":   q.Mode,
		"course": q.Course,
		"type":   q.Type,
	}
	filters := make(map[string]string, len(dimensions))
	for _, name := range dimensions {
		filters[name] = values[name]
	}
	return listview.Query{
		Search:   q.Search,
		Filters:  filters,
		From:     q.From,
		To:       q.To,
		Page:     q.Page,
		PageSize: pageSize,
	}
}

func pageInfo[T any](result listview.Result[T]) dto.PageInfo {
	return dto.PageInfo{
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
		PageSize:    result.PageSize,
		Total:       result.Total,
	}
}

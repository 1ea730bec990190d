package usecase

import (
	"context"
	"net/http"
	"testing"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/infrastructure/remote"
	"institute-admin-console/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudentFixture(t *testing.T, students ...entity.Student) (StudentUsecase, *fakeStudentRepo) {
	repo := &fakeStudentRepo{students: students}
	uc := NewStudentUsecase(quietLogger(), repo, service.NewMirror[entity.Student](), service.NewCursorStore(), newGuard(t), 10)
	return uc, repo
}

func student(id, name, course string, total, paid int64) entity.Student {
	return entity.Student{
		ID:       id,
		Name:     name,
		Course:   course,
		TotalFee: decimal.NewFromInt(total),
		PaidFee:  decimal.NewFromInt(paid),
	}
}

func TestStudentList_FeeSummaryCoversFilteredSet(t *testing.T) {
	students := []entity.Student{
		student("s1", "Asha", "BBA", 1000, 400),
		student("s2", "Bimal", "BCA", 2000, 2000),
		student("s3", "Chandra", "BBA", 1500, 1600),
	}
	uc, _ := newStudentFixture(t, students...)

	got, err := uc.List(context.Background(), session, &dto.ListQuery{Course: "bba"})

	require.NoError(t, err)
	require.Len(t, got.Students, 2)
	assert.True(t, got.FeeSummary.Total.Equal(decimal.NewFromInt(2500)))
	assert.True(t, got.FeeSummary.Paid.Equal(decimal.NewFromInt(2000)))
	assert.True(t, got.FeeSummary.Due.Equal(decimal.NewFromInt(600)), "overpayment does not offset another student's due")
	assert.Equal(t, []string{"ALL", "BBA", "BCA"}, got.Options["course"])
}

func TestStudentList_TwentyThreeRecordsMakeThreePages(t *testing.T) {
	var students []entity.Student
	for i := 0; i < 23; i++ {
		students = append(students, student(string(rune('a'+i)), "Student", "BBA", 0, 0))
	}
	uc, _ := newStudentFixture(t, students...)

	got, err := uc.List(context.Background(), session, &dto.ListQuery{Page: 3})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Page.TotalPages)
	require.Len(t, got.Students, 3)
	assert.Equal(t, "u", got.Students[0].ID)
	assert.Equal(t, "w", got.Students[2].ID)
}

func TestStudentDelete_RefetchesMirror(t *testing.T) {
	uc, repo := newStudentFixture(t, student("s1", "Asha", "BBA", 0, 0), student("s2", "Bimal", "BCA", 0, 0))
	ctx := context.Background()

	_, err := uc.List(ctx, session, nil)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, session, "s1"))
	assert.Equal(t, []string{"s1"}, repo.deleted)

	got, err := uc.List(ctx, session, nil)
	require.NoError(t, err)
	require.Len(t, got.Students, 1)
	assert.Equal(t, "s2", got.Students[0].ID)
	assert.Equal(t, 2, repo.listCalls)
}

func TestStudentDelete_NotFound(t *testing.T) {
	uc, repo := newStudentFixture(t)
	repo.deleteErr = &remote.Error{Kind: remote.KindStatus, StatusCode: http.StatusNotFound}

	assert.ErrorIs(t, uc.Delete(context.Background(), session, "missing"), ErrStudentNotFound)
	assert.Equal(t, 0, repo.listCalls)
}

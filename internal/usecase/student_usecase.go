package usecase

import (
	"context"
	"errors"

	"institute-admin-console/internal/converter"
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
	"institute-admin-console/internal/service"
	"institute-admin-console/pkg/listview"

	"github.com/sirupsen/logrus"
)

var ErrStudentNotFound = errors.New("student not found")

var studentSpec = listview.Spec[entity.Student]{
	SearchFields: func(s entity.Student) []string {
		return []string{s.Name, s.ID, s.Phone, s.Email, s.GuardianName}
	},
	Dimensions: map[string]func(entity.Student) string{
		"course": func(s entity.Student) string { return s.Course },
	},
	Date: func(s entity.Student) string { return s.AdmissionDate },
}

type StudentUsecase interface {
	List(ctx context.Context, sessionID string, q *dto.ListQuery) (*dto.StudentListResponse, error)
	Delete(ctx context.Context, sessionID, studentID string) error
}

type studentUsecase struct {
	log         *logrus.Logger
	studentRepo repository.StudentRepository
	mirror      *service.Mirror[entity.Student]
	cursors     *service.CursorStore
	guard       *service.ActionGuard
	pageSize    int
}

func NewStudentUsecase(
	log *logrus.Logger,
	studentRepo repository.StudentRepository,
	mirror *service.Mirror[entity.Student],
	cursors *service.CursorStore,
	guard *service.ActionGuard,
	pageSize int,
) StudentUsecase {
	return &studentUsecase{
		log:         log,
		studentRepo: studentRepo,
		mirror:      mirror,
		cursors:     cursors,
		guard:       guard,
		pageSize:    pageSize,
	}
}

func (u *studentUsecase) key(sessionID string) service.MirrorKey {
	return service.MirrorKey{Session: sessionID, Scope: screenStudents}
}

func (u *studentUsecase) List(ctx context.Context, sessionID string, q *dto.ListQuery) (*dto.StudentListResponse, error) {
	load := u.mirror.Current
	if q != nil && q.Refresh {
		load = u.mirror.Load
	}
	students, err := load(ctx, u.key(sessionID), u.studentRepo.List)
	if err != nil {
		u.log.Warnf("Failed to fetch students: %+v", err)
		return nil, err
	}

	query := u.cursors.Resolve(sessionID, screenStudents, listQuery(q, u.pageSize, "course"))
	result := listview.Derive(students, studentSpec, query)
	// Fee totals cover every filtered student, not only the current page
	summary := entity.SummarizeFees(listview.Filter(students, studentSpec, query))

	return &dto.StudentListResponse{
		Students:   converter.StudentsToResponses(result.Items),
		FeeSummary: converter.FeeSummaryToResponse(summary),
		Options:    result.Options,
		Page:       pageInfo(result),
	}, nil
}

func (u *studentUsecase) Delete(ctx context.Context, sessionID, studentID string) error {
	release, err := u.guard.Acquire(service.ActionKey(sessionID, screenStudents, studentID))
	if err != nil {
		return err
	}

	err = u.studentRepo.Delete(ctx, studentID)
	release(err)
	if err != nil {
		if remote.IsNotFound(err) {
			return ErrStudentNotFound
		}
		u.log.Warnf("Failed to delete student: %+v", err)
		return err
	}

	if _, err := u.mirror.Refresh(ctx, u.key(sessionID), u.studentRepo.List); err != nil {
		u.log.Warnf("Failed to re-fetch students after delete: %+v", err)
		return err
	}
	return nil
}

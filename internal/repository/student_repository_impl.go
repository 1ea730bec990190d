package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
	domainRepo "institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
)

const studentsPath = "/admin/students"

type studentRepository struct {
	remoteResource
}

func NewStudentRepository(client *remote.Client, baseURL string) domainRepo.StudentRepository {
	return &studentRepository{remoteResource{client: client, baseURL: baseURL}}
}

func (r *studentRepository) List(ctx context.Context) ([]entity.Student, error) {
	var out remote.Envelope[[]entity.Student]
	if err := r.client.Get(ctx, r.endpoint(nil, studentsPath), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.endpoint(nil, studentsPath, id))
}

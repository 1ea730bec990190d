package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
)

type StudentRepository interface {
	List(ctx context.Context) ([]entity.Student, error)
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
)

type ReviewRepository interface {
	List(ctx context.Context) ([]entity.Review, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
)

type BranchRepository interface {
	List(ctx context.Context) ([]entity.Branch, error)
	Replace(ctx context.Context, branch *entity.Branch) error
}

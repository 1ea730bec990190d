package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
)

type CMSRepository interface {
	Get(ctx context.Context, section string) (*entity.CMSSection, error)
	Put(ctx context.Context, section *entity.CMSSection) error
}

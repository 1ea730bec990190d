package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
)

type ConsultationRepository interface {
	List(ctx context.Context) ([]entity.ConsultationRaw, error)
	UpdateStatus(ctx context.Context, id string, remoteStatus string) error
}

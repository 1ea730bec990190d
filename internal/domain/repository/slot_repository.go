package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
)

type SlotRepository interface {
	List(ctx context.Context, filter entity.SlotFilter) ([]entity.TimeSlot, error)
	Stats(ctx context.Context, startDate, endDate string) (*entity.SlotStats, error)
	BulkCreate(ctx context.Context, req entity.BulkSlotRequest) (int, error)
	SetBlocked(ctx context.Context, id string, blocked bool) error
	Delete(ctx context.Context, id string) error
}

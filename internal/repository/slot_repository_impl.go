package repository

import (
	"context"
	"net/url"

	"institute-admin-console/internal/domain/entity"
	domainRepo "institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
)

const slotsPath = "/schedule/slots"

type slotRepository struct {
	remoteResource
}

func NewSlotRepository(client *remote.Client, baseURL string) domainRepo.SlotRepository {
	return &slotRepository{remoteResource{client: client, baseURL: baseURL}}
}

func (r *slotRepository) List(ctx context.Context, filter entity.SlotFilter) ([]entity.TimeSlot, error) {
	query := windowQuery(filter.StartDate, filter.EndDate)
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var out remote.Envelope[[]entity.TimeSlot]
	if err := r.client.Get(ctx, r.endpoint(query, slotsPath), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *slotRepository) Stats(ctx context.Context, startDate, endDate string) (*entity.SlotStats, error) {
	var out remote.Envelope[entity.SlotStats]
	if err := r.client.Get(ctx, r.endpoint(windowQuery(startDate, endDate), slotsPath, "stats"), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// BulkCreate returns the number of slots the backend reports as created
func (r *slotRepository) BulkCreate(ctx context.Context, req entity.BulkSlotRequest) (int, error) {
	var out remote.Envelope[[]entity.TimeSlot]
	if err := r.client.Post(ctx, r.endpoint(nil, slotsPath, "bulk"), req, &out); err != nil {
		return 0, err
	}
	if out.Count == 0 && len(out.Data) > 0 {
		return len(out.Data), nil
	}
	return out.Count, nil
}

func (r *slotRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	body := map[string]bool{"isBlocked": blocked}
	return r.client.Patch(ctx, r.endpoint(nil, slotsPath, id, "block"), body, nil)
}

func (r *slotRepository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.endpoint(nil, slotsPath, id))
}

func windowQuery(startDate, endDate string) url.Values {
	query := url.Values{}
	if startDate != "" {
		query.Set("startDate", startDate)
	}
	if endDate != "" {
		query.Set("endDate", endDate)
	}
	return query
}

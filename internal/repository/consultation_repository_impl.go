package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
	domainRepo "institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
)

const consultationsPath = "/admin/consultations"

type consultationRepository struct {
	remoteResource
}

func NewConsultationRepository(client *remote.Client, baseURL string) domainRepo.ConsultationRepository {
	return &consultationRepository{remoteResource{client: client, baseURL: baseURL}}
}

func (r *consultationRepository) List(ctx context.Context) ([]entity.ConsultationRaw, error) {
	var out remote.Envelope[[]entity.ConsultationRaw]
	if err := r.client.Get(ctx, r.endpoint(nil, consultationsPath), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *consultationRepository) UpdateStatus(ctx context.Context, id string, remoteStatus string) error {
	body := map[string]string{"status": remoteStatus}
	return r.client.Put(ctx, r.endpoint(nil, consultationsPath, id, "status"), body, nil)
}

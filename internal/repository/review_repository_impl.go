package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
	domainRepo "institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
)

const reviewsPath = "/admin/reviews"

type reviewRepository struct {
	remoteResource
}

func NewReviewRepository(client *remote.Client, baseURL string) domainRepo.ReviewRepository {
	return &reviewRepository{remoteResource{client: client, baseURL: baseURL}}
}

func (r *reviewRepository) List(ctx context.Context) ([]entity.Review, error) {
	var out remote.Envelope[[]entity.Review]
	if err := r.client.Get(ctx, r.endpoint(nil, reviewsPath), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *reviewRepository) Approve(ctx context.Context, id string) error {
	return r.client.Patch(ctx, r.endpoint(nil, reviewsPath, id, "approve"), nil, nil)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.endpoint(nil, reviewsPath, id))
}

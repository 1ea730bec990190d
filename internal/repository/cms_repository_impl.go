package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
	domainRepo "institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
)

const cmsPath = "/admin/cms"

type cmsRepository struct {
	remoteResource
}

func NewCMSRepository(client *remote.Client, baseURL string) domainRepo.CMSRepository {
	return &cmsRepository{remoteResource{client: client, baseURL: baseURL}}
}

// Get returns an empty section when the backend has nothing stored under the name yet
func (r *cmsRepository) Get(ctx context.Context, section string) (*entity.CMSSection, error) {
	var out remote.Envelope[entity.CMSSection]
	if err := r.client.Get(ctx, r.endpoint(nil, cmsPath, section), &out); err != nil {
		if remote.IsNotFound(err) {
			return &entity.CMSSection{Name: section}, nil
		}
		return nil, err
	}
	out.Data.Name = section
	return &out.Data, nil
}

func (r *cmsRepository) Put(ctx context.Context, section *entity.CMSSection) error {
	return r.client.Put(ctx, r.endpoint(nil, cmsPath, section.Name), section, nil)
}

package repository

import (
	"context"

	"institute-admin-console/internal/domain/entity"
	domainRepo "institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
)

const branchesPath = "/admin/branches"

type branchRepository struct {
	remoteResource
}

func NewBranchRepository(client *remote.Client, baseURL string) domainRepo.BranchRepository {
	return &branchRepository{remoteResource{client: client, baseURL: baseURL}}
}

func (r *branchRepository) List(ctx context.Context) ([]entity.Branch, error) {
	var out remote.Envelope[[]entity.Branch]
	if err := r.client.Get(ctx, r.endpoint(nil, branchesPath), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Replace sends the whole branch, semesters included
func (r *branchRepository) Replace(ctx context.Context, branch *entity.Branch) error {
	return r.client.Put(ctx, r.endpoint(nil, branchesPath, branch.ID), branch, nil)
}

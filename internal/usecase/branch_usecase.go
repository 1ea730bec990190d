package usecase

import (
	"context"
	"errors"

	"institute-admin-console/internal/converter"
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
	"institute-admin-console/internal/service"

	"github.com/sirupsen/logrus"
)

var ErrBranchNotFound = errors.New("branch not found")

type BranchUsecase interface {
	List(ctx context.Context, sessionID string) ([]dto.BranchResponse, error)
	Replace(ctx context.Context, sessionID, branchID string, req *dto.ReplaceBranchRequest) (*dto.BranchResponse, error)
}

type branchUsecase struct {
	log        *logrus.Logger
	branchRepo repository.BranchRepository
	mirror     *service.Mirror[entity.Branch]
	guard      *service.ActionGuard
}

func NewBranchUsecase(
	log *logrus.Logger,
	branchRepo repository.BranchRepository,
	mirror *service.Mirror[entity.Branch],
	guard *service.ActionGuard,
) BranchUsecase {
	return &branchUsecase{
		log:        log,
		branchRepo: branchRepo,
		mirror:     mirror,
		guard:      guard,
	}
}

func (u *branchUsecase) key(sessionID string) service.MirrorKey {
	return service.MirrorKey{Session: sessionID, Scope: screenBranches}
}

func (u *branchUsecase) List(ctx context.Context, sessionID string) ([]dto.BranchResponse, error) {
	branches, err := u.mirror.Load(ctx, u.key(sessionID), u.branchRepo.List)
	if err != nil {
		u.log.Warnf("Failed to fetch branches: %+v", err)
		return nil, err
	}
	return converter.BranchesToResponses(branches), nil
}

// Replace sends the whole branch and returns it as re-fetched afterwards
func (u *branchUsecase) Replace(ctx context.Context, sessionID, branchID string, req *dto.ReplaceBranchRequest) (*dto.BranchResponse, error) {
	branch := converter.ReplaceBranchRequestToEntity(branchID, req)

	release, err := u.guard.Acquire(service.ActionKey(sessionID, screenBranches, branchID))
	if err != nil {
		return nil, err
	}
	err = u.branchRepo.Replace(ctx, branch)
	release(err)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, ErrBranchNotFound
		}
		u.log.Warnf("Failed to replace branch: %+v", err)
		return nil, err
	}

	branches, err := u.mirror.Refresh(ctx, u.key(sessionID), u.branchRepo.List)
	if err != nil {
		u.log.Warnf("Failed to re-fetch branches after replace: %+v", err)
		return nil, err
	}
	for i := range branches {
		if branches[i].ID == branchID {
			resp := converter.BranchToResponse(&branches[i])
			return &resp, nil
		}
	}
	return nil, ErrBranchNotFound
}

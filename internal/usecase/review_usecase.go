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
	"institute-admin-console/pkg/listview"

	"github.com/sirupsen/logrus"
)

var (
	ErrReviewNotFound        = errors.New("review not found, reload the review list")
	ErrReviewAlreadyApproved = errors.New("review is already approved")
)

var reviewSpec = listview.Spec[entity.Review]{
	SearchFields: func(r entity.Review) []string {
		return []string{r.Name, r.ID, r.Email, r.Comment}
	},
	Dimensions: map[string]func(entity.Review) string{
		"status": func(r entity.Review) string { return r.Status() },
		"course": func(r entity.Review) string { return r.Course },
	},
	Date: func(r entity.Review) string { return r.CreatedAt },
}

type ReviewUsecase interface {
	List(ctx context.Context, sessionID string, q *dto.ListQuery) (*dto.ReviewListResponse, error)
	Approve(ctx context.Context, sessionID, reviewID string) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, sessionID, reviewID string) error
}

type reviewUsecase struct {
	log        *logrus.Logger
	reviewRepo repository.ReviewRepository
	mirror     *service.Mirror[entity.Review]
	cursors    *service.CursorStore
	guard      *service.ActionGuard
	pageSize   int
}

func NewReviewUsecase(
	log *logrus.Logger,
	reviewRepo repository.ReviewRepository,
	mirror *service.Mirror[entity.Review],
	cursors *service.CursorStore,
	guard *service.ActionGuard,
	pageSize int,
) ReviewUsecase {
	return &reviewUsecase{
		log:        log,
		reviewRepo: reviewRepo,
		mirror:     mirror,
		cursors:    cursors,
		guard:      guard,
		pageSize:   pageSize,
	}
}

func (u *reviewUsecase) key(sessionID string) service.MirrorKey {
	return service.MirrorKey{Session: sessionID, Scope: screenReviews}
}

func (u *reviewUsecase) List(ctx context.Context, sessionID string, q *dto.ListQuery) (*dto.ReviewListResponse, error) {
	load := u.mirror.Current
	if q != nil && q.Refresh {
		load = u.mirror.Load
	}
	reviews, err := load(ctx, u.key(sessionID), u.reviewRepo.List)
	if err != nil {
		u.log.Warnf("Failed to fetch reviews: %+v", err)
		return nil, err
	}

	query := u.cursors.Resolve(sessionID, screenReviews, listQuery(q, u.pageSize, "status", "course"))
	result := listview.Derive(reviews, reviewSpec, query)

	pending := 0
	for i := range reviews {
		if reviews[i].CanApprove() {
			pending++
		}
	}

	return &dto.ReviewListResponse{
		Reviews:      converter.ReviewsToResponses(result.Items),
		PendingCount: pending,
		Options:      result.Options,
		Page:         pageInfo(result),
	}, nil
}

// Approve publishes a pending review and returns it as re-fetched afterwards
func (u *reviewUsecase) Approve(ctx context.Context, sessionID, reviewID string) (*dto.ReviewResponse, error) {
	if _, err := u.mirror.Current(ctx, u.key(sessionID), u.reviewRepo.List); err != nil {
		u.log.Warnf("Failed to fetch reviews: %+v", err)
		return nil, err
	}
	listed, ok := u.mirror.Find(u.key(sessionID), func(r entity.Review) bool { return r.ID == reviewID })
	if !ok {
		return nil, ErrReviewNotFound
	}
	if !listed.CanApprove() {
		return nil, ErrReviewAlreadyApproved
	}

	if err := u.dispatch(ctx, sessionID, reviewID, u.reviewRepo.Approve); err != nil {
		return nil, err
	}

	reviews, err := u.refresh(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	review, ok := findReview(reviews, reviewID)
	if !ok {
		return nil, ErrReviewNotFound
	}
	resp := converter.ReviewToResponse(review)
	return &resp, nil
}

func (u *reviewUsecase) Delete(ctx context.Context, sessionID, reviewID string) error {
	if err := u.dispatch(ctx, sessionID, reviewID, u.reviewRepo.Delete); err != nil {
		return err
	}
	_, err := u.refresh(ctx, sessionID)
	return err
}

func (u *reviewUsecase) dispatch(ctx context.Context, sessionID, reviewID string, call func(ctx context.Context, id string) error) error {
	release, err := u.guard.Acquire(service.ActionKey(sessionID, screenReviews, reviewID))
	if err != nil {
		return err
	}
	err = call(ctx, reviewID)
	release(err)
	if err != nil {
		if remote.IsNotFound(err) {
			return ErrReviewNotFound
		}
		u.log.Warnf("Failed to update review %s: %+v", reviewID, err)
		return err
	}
	return nil
}

func (u *reviewUsecase) refresh(ctx context.Context, sessionID string) ([]entity.Review, error) {
	reviews, err := u.mirror.Refresh(ctx, u.key(sessionID), u.reviewRepo.List)
	if err != nil {
		u.log.Warnf("Failed to re-fetch reviews after write: %+v", err)
		return nil, err
	}
	return reviews, nil
}

func findReview(reviews []entity.Review, id string) (*entity.Review, bool) {
	for i := range reviews {
		if reviews[i].ID == id {
			return &reviews[i], true
		}
	}
	return nil, false
}

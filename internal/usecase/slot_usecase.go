package usecase

import (
	"context"
	"errors"
	"strings"

	"institute-admin-console/internal/converter"
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/service"
	"institute-admin-console/pkg/listview"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrSlotNotFound       = errors.New("slot not found, reload the slot list")
	ErrSlotBooked         = errors.New("booked slots cannot be blocked or deleted")
	ErrSlotAlreadyInState = errors.New("slot is already in the requested state")
)

var slotSpec = listview.Spec[entity.TimeSlot]{
	SearchFields: func(s entity.TimeSlot) []string {
		return []string{s.ID, s.SlotType, s.StudentName()}
	},
	Dimensions: map[string]func(entity.TimeSlot) string{
		"type": func(s entity.TimeSlot) string { return s.SlotType },
	},
	Date: func(s entity.TimeSlot) string { return s.Date },
}

type SlotUsecase interface {
	List(ctx context.Context, sessionID string, q *dto.SlotListQuery) (*dto.SlotListResponse, error)
	Stats(ctx context.Context, startDate, endDate string) (*dto.SlotStatsResponse, error)
	Overview(ctx context.Context, sessionID string, q *dto.SlotListQuery) (*dto.SlotOverviewResponse, error)
	PreviewBulk(req *dto.BulkSlotRequest) (*dto.BulkSlotPreviewResponse, error)
	BulkCreate(ctx context.Context, sessionID string, req *dto.BulkSlotRequest) (*dto.BulkSlotResponse, error)
	SetBlocked(ctx context.Context, sessionID, slotID string, blocked bool) error
	Delete(ctx context.Context, sessionID, slotID string) error
}

type slotUsecase struct {
	log      *logrus.Logger
	slotRepo repository.SlotRepository
	mirror   *service.Mirror[entity.TimeSlot]
	cursors  *service.CursorStore
	guard    *service.ActionGuard
	pageSize int
}

func NewSlotUsecase(
	log *logrus.Logger,
	slotRepo repository.SlotRepository,
	mirror *service.Mirror[entity.TimeSlot],
	cursors *service.CursorStore,
	guard *service.ActionGuard,
	pageSize int,
) SlotUsecase {
	return &slotUsecase{
		log:      log,
		slotRepo: slotRepo,
		mirror:   mirror,
		cursors:  cursors,
		guard:    guard,
		pageSize: pageSize,
	}
}

// slotScope encodes the backend window of a slot fetch. Each window is mirrored
// separately.
func slotScope(filter entity.SlotFilter) string {
	return strings.Join([]string{screenSlots, filter.StartDate, filter.EndDate, filter.Status}, "|")
}

func parseSlotScope(scope string) (entity.SlotFilter, bool) {
	parts := strings.Split(scope, "|")
	if len(parts) != 4 || parts[0] != screenSlots {
		return entity.SlotFilter{}, false
	}
	return entity.SlotFilter{StartDate: parts[1], EndDate: parts[2], Status: parts[3]}, true
}

func (u *slotUsecase) fetcher(filter entity.SlotFilter) service.FetchFunc[entity.TimeSlot] {
	return func(ctx context.Context) ([]entity.TimeSlot, error) {
		return u.slotRepo.List(ctx, filter)
	}
}

func (u *slotUsecase) List(ctx context.Context, sessionID string, q *dto.SlotListQuery) (*dto.SlotListResponse, error) {
	if q == nil {
		q = &dto.SlotListQuery{}
	}
	filter := entity.SlotFilter{StartDate: q.StartDate, EndDate: q.EndDate, Status: q.Status}
	key := service.MirrorKey{Session: sessionID, Scope: slotScope(filter)}

	load := u.mirror.Current
	if q.Refresh {
		load = u.mirror.Load
	}
	slots, err := load(ctx, key, u.fetcher(filter))
	if err != nil {
		u.log.Warnf("Failed to fetch slots: %+v", err)
		return nil, err
	}

	// The window is part of the mirror scope, so the cursor only tracks local predicates
	query := u.cursors.Resolve(sessionID, key.Scope, listview.Query{
		Search:   q.Search,
		Filters:  map[string]string{"type": q.Type},
		Page:     q.Page,
		PageSize: u.pageSize,
	})
	result := listview.Derive(slots, slotSpec, query)
	groups, sortedDates := listview.GroupByDate(result.Items, slotSpec.Date)

	return &dto.SlotListResponse{
		Days:    converter.SlotDays(groups, sortedDates),
		Options: result.Options,
		Page:    pageInfo(result),
	}, nil
}

func (u *slotUsecase) Stats(ctx context.Context, startDate, endDate string) (*dto.SlotStatsResponse, error) {
	stats, err := u.slotRepo.Stats(ctx, startDate, endDate)
	if err != nil {
		u.log.Warnf("Failed to fetch slot stats: %+v", err)
		return nil, err
	}
	resp := converter.SlotStatsToResponse(stats)
	return &resp, nil
}

// Overview loads the slot list and the stats of the same window concurrently
func (u *slotUsecase) Overview(ctx context.Context, sessionID string, q *dto.SlotListQuery) (*dto.SlotOverviewResponse, error) {
	if q == nil {
		q = &dto.SlotListQuery{}
	}

	var (
		list  *dto.SlotListResponse
		stats *dto.SlotStatsResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = u.List(gctx, sessionID, q)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = u.Stats(gctx, q.StartDate, q.EndDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.SlotOverviewResponse{
		Stats: *stats,
		Slots: *list,
		Page:  list.Page,
	}, nil
}

// PreviewBulk expands a bulk request locally without calling the backend
func (u *slotUsecase) PreviewBulk(req *dto.BulkSlotRequest) (*dto.BulkSlotPreviewResponse, error) {
	planned, err := converter.BulkSlotRequestToEntity(req).Plan()
	if err != nil {
		return nil, err
	}

	groups, sortedDates := listview.GroupByDate(planned, slotSpec.Date)
	return &dto.BulkSlotPreviewResponse{
		Planned: len(planned),
		Days:    converter.SlotDays(groups, sortedDates),
	}, nil
}

func (u *slotUsecase) BulkCreate(ctx context.Context, sessionID string, req *dto.BulkSlotRequest) (*dto.BulkSlotResponse, error) {
	bulk := converter.BulkSlotRequestToEntity(req)
	planned, err := bulk.Plan()
	if err != nil {
		return nil, err
	}

	release, err := u.guard.Acquire(service.ActionKey(sessionID, screenSlots, "bulk"))
	if err != nil {
		return nil, err
	}
	created, err := u.slotRepo.BulkCreate(ctx, bulk)
	release(err)
	if err != nil {
		u.log.Warnf("Failed to bulk create slots: %+v", err)
		return nil, err
	}

	if created != len(planned) {
		u.log.Warnf("Bulk slot creation count mismatch: planned=%d created=%d (%s..%s)", len(planned), created, bulk.StartDate, bulk.EndDate)
	}

	if err := u.refreshSession(ctx, sessionID); err != nil {
		return nil, err
	}

	return &dto.BulkSlotResponse{
		Planned: len(planned),
		Created: created,
	}, nil
}

func (u *slotUsecase) SetBlocked(ctx context.Context, sessionID, slotID string, blocked bool) error {
	slot, err := u.findSlot(sessionID, slotID)
	if err != nil {
		return err
	}
	controls := slot.Controls()
	if slot.IsBooked {
		return ErrSlotBooked
	}
	if (blocked && !controls.CanBlock) || (!blocked && !controls.CanUnblock) {
		return ErrSlotAlreadyInState
	}

	return u.dispatch(ctx, sessionID, slotID, func() error {
		return u.slotRepo.SetBlocked(ctx, slotID, blocked)
	})
}

func (u *slotUsecase) Delete(ctx context.Context, sessionID, slotID string) error {
	slot, err := u.findSlot(sessionID, slotID)
	if err != nil {
		return err
	}
	if !slot.Controls().CanDelete {
		return ErrSlotBooked
	}

	return u.dispatch(ctx, sessionID, slotID, func() error {
		return u.slotRepo.Delete(ctx, slotID)
	})
}

// findSlot looks the slot up in the windows the session has listed. Controls
// are derived from that copy, so a slot must be listed before it is changed.
func (u *slotUsecase) findSlot(sessionID, slotID string) (*entity.TimeSlot, error) {
	slot, ok := u.mirror.FindInSession(sessionID, func(s entity.TimeSlot) bool {
		return s.ID == slotID
	})
	if !ok {
		return nil, ErrSlotNotFound
	}
	return &slot, nil
}

func (u *slotUsecase) dispatch(ctx context.Context, sessionID, slotID string, call func() error) error {
	release, err := u.guard.Acquire(service.ActionKey(sessionID, screenSlots, slotID))
	if err != nil {
		return err
	}
	err = call()
	release(err)
	if err != nil {
		u.log.Warnf("Failed to update slot %s: %+v", slotID, err)
		return err
	}

	return u.refreshSession(ctx, sessionID)
}

// refreshSession re-fetches every slot window the session has listed
func (u *slotUsecase) refreshSession(ctx context.Context, sessionID string) error {
	for _, scope := range u.mirror.ScopesOf(sessionID) {
		filter, ok := parseSlotScope(scope)
		if !ok {
			continue
		}
		key := service.MirrorKey{Session: sessionID, Scope: scope}
		if _, err := u.mirror.Refresh(ctx, key, u.fetcher(filter)); err != nil {
			u.log.Warnf("Failed to re-fetch slots after write: %+v", err)
			return err
		}
	}
	return nil
}

package usecase

import (
	"bytes"
	"context"
	"errors"

	"institute-admin-console/internal/converter"
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/service"
	"institute-admin-console/pkg/listview"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidBookingStatus    = errors.New("invalid booking status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrNoUploadedFiles         = errors.New("upload at least one file before marking the booking consulted")
	ErrConfirmationRequired    = errors.New("moving a consulted booking back to pending must be confirmed")
	ErrBookingNotPending       = errors.New("files can only be attached to a pending booking")
	ErrNoFiles                 = errors.New("no files provided")
	ErrFileAlreadyStaged       = errors.New("file is already attached to this booking")
	ErrStagedFileNotFound      = errors.New("attached file not found")
)

var bookingSpec = listview.Spec[entity.Booking]{
	SearchFields: func(b entity.Booking) []string {
		return []string{b.StudentName, b.ID, b.Phone, b.Email}
	},
	Dimensions: map[string]func(entity.Booking) string{
		"status": func(b entity.Booking) string { return string(b.Status) },
		"mode":   func(b entity.Booking) string { return b.Mode },
		"course": func(b entity.Booking) string { return b.Course },
	},
	Date: func(b entity.Booking) string { return b.Date },
}

type ConsultationUsecase interface {
	List(ctx context.Context, sessionID string, q *dto.ListQuery) (*dto.BookingListResponse, error)
	UpdateStatus(ctx context.Context, sessionID, bookingID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	StageFiles(ctx context.Context, sessionID, bookingID, uploadedBy string, files []dto.UploadFile) ([]dto.StagedFileResponse, error)
	ListFiles(ctx context.Context, sessionID, bookingID string) ([]dto.StagedFileResponse, error)
	RemoveFile(ctx context.Context, sessionID, bookingID, fileID string) error
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	uploadRepo       repository.UploadRepository
	stagedFileRepo   repository.StagedFileRepository
	mirror           *service.Mirror[entity.Booking]
	cursors          *service.CursorStore
	guard            *service.ActionGuard
	pageSize         int
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	uploadRepo repository.UploadRepository,
	stagedFileRepo repository.StagedFileRepository,
	mirror *service.Mirror[entity.Booking],
	cursors *service.CursorStore,
	guard *service.ActionGuard,
	pageSize int,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		consultationRepo: consultationRepo,
		uploadRepo:       uploadRepo,
		stagedFileRepo:   stagedFileRepo,
		mirror:           mirror,
		cursors:          cursors,
		guard:            guard,
		pageSize:         pageSize,
	}
}

func (u *consultationUsecase) fetch(ctx context.Context) ([]entity.Booking, error) {
	raws, err := u.consultationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return converter.ConsultationsToBookings(raws), nil
}

func (u *consultationUsecase) key(sessionID string) service.MirrorKey {
	return service.MirrorKey{Session: sessionID, Scope: screenConsultations}
}

func (u *consultationUsecase) List(ctx context.Context, sessionID string, q *dto.ListQuery) (*dto.BookingListResponse, error) {
	load := u.mirror.Current
	if q != nil && q.Refresh {
		load = u.mirror.Load
	}
	bookings, err := load(ctx, u.key(sessionID), u.fetch)
	if err != nil {
		u.log.Warnf("Failed to fetch consultations: %+v", err)
		return nil, err
	}

	query := u.cursors.Resolve(sessionID, screenConsultations, listQuery(q, u.pageSize, "status", "mode", "course"))
	result := listview.Derive(bookings, bookingSpec, query)

	if err := u.attachFiles(ctx, result.Items); err != nil {
		u.log.Warnf("Failed to load staged files: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(result.Items),
		Options:  result.Options,
		Page:     pageInfo(result),
	}, nil
}

// attachFiles fills UploadedFiles of the given page from the staged file store
func (u *consultationUsecase) attachFiles(ctx context.Context, bookings []entity.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	ids := make([]string, len(bookings))
	for i := range bookings {
		ids[i] = bookings[i].ID
	}

	files, err := u.stagedFileRepo.FindByBookingIDs(u.db.WithContext(ctx), ids)
	if err != nil {
		return err
	}

	byBooking := make(map[string][]entity.StagedFile, len(bookings))
	for _, f := range files {
		byBooking[f.BookingID] = append(byBooking[f.BookingID], f)
	}
	for i := range bookings {
		bookings[i].UploadedFiles = byBooking[bookings[i].ID]
	}
	return nil
}

func (u *consultationUsecase) findBooking(ctx context.Context, sessionID, bookingID string) (*entity.Booking, error) {
	bookings, err := u.mirror.Current(ctx, u.key(sessionID), u.fetch)
	if err != nil {
		u.log.Warnf("Failed to fetch consultations: %+v", err)
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == bookingID {
			return &bookings[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

// UpdateStatus dispatches a status change and returns the booking as re-fetched
// afterwards. Transitions refused locally never reach the backend.
func (u *consultationUsecase) UpdateStatus(ctx context.Context, sessionID, bookingID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	target, ok := entity.ParseBookingStatus(req.Status)
	if !ok {
		return nil, ErrInvalidBookingStatus
	}

	booking, err := u.findBooking(ctx, sessionID, bookingID)
	if err != nil {
		return nil, err
	}

	// The marker is held across the file check so a removal cannot slip in
	// between the check and the remote call
	release, err := u.guard.Acquire(service.ActionKey(sessionID, screenConsultations, bookingID))
	if err != nil {
		return nil, err
	}

	if err := u.checkTransition(ctx, booking, target, req.Confirm); err != nil {
		release(err)
		return nil, err
	}

	err = u.consultationRepo.UpdateStatus(ctx, bookingID, target.RemoteStatus())
	release(err)
	if err != nil {
		u.log.Warnf("Failed to update consultation status: %+v", err)
		return nil, err
	}

	bookings, err := u.mirror.Refresh(ctx, u.key(sessionID), u.fetch)
	if err != nil {
		u.log.Warnf("Failed to re-fetch consultations after status update: %+v", err)
		return nil, err
	}

	for i := range bookings {
		if bookings[i].ID != bookingID {
			continue
		}
		page := bookings[i : i+1]
		if err := u.attachFiles(ctx, page); err != nil {
			u.log.Warnf("Failed to load staged files: %+v", err)
			return nil, err
		}
		return converter.BookingToResponse(&page[0]), nil
	}

	// The backend no longer lists the booking
	return nil, ErrBookingNotFound
}

func (u *consultationUsecase) checkTransition(ctx context.Context, booking *entity.Booking, target entity.BookingStatus, confirmed bool) error {
	if booking.Status == target || booking.IsCancelled() {
		return ErrInvalidStatusTransition
	}

	switch target {
	case entity.BookingStatusConsulted:
		count, err := u.stagedFileRepo.CountByBookingID(u.db.WithContext(ctx), booking.ID)
		if err != nil {
			u.log.Warnf("Failed to count staged files: %+v", err)
			return err
		}
		if count == 0 {
			return ErrNoUploadedFiles
		}
	case entity.BookingStatusPending:
		if booking.IsConsulted() && !confirmed {
			return ErrConfirmationRequired
		}
	}
	return nil
}

// StageFiles uploads each file to the backend and records it against the booking.
// Files uploaded before a failure stay recorded.
func (u *consultationUsecase) StageFiles(ctx context.Context, sessionID, bookingID, uploadedBy string, files []dto.UploadFile) ([]dto.StagedFileResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	booking, err := u.findBooking(ctx, sessionID, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsPending() {
		return nil, ErrBookingNotPending
	}

	release, err := u.guard.Acquire(service.ActionKey(sessionID, screenConsultations, bookingID))
	if err != nil {
		return nil, err
	}
	err = u.stage(ctx, bookingID, uploadedBy, files)
	release(err)
	if err != nil {
		return nil, err
	}

	return u.ListFiles(ctx, sessionID, bookingID)
}

func (u *consultationUsecase) stage(ctx context.Context, bookingID, uploadedBy string, files []dto.UploadFile) error {
	for _, file := range files {
		if len(file.Content) == 0 {
			return ErrEmptyFile
		}
		contentType := detectContentType(file.Content, file.ContentType)

		url, err := u.uploadRepo.Upload(ctx, file.FileName, contentType, bytes.NewReader(file.Content))
		if err != nil {
			u.log.Warnf("Failed to upload file %q: %+v", file.FileName, err)
			return err
		}

		staged := &entity.StagedFile{
			ID:          uuid.New(),
			BookingID:   bookingID,
			FileName:    file.FileName,
			URL:         url,
			ContentType: contentType,
			Size:        int64(len(file.Content)),
			UploadedBy:  uploadedBy,
		}
		if err := u.stagedFileRepo.Create(u.db.WithContext(ctx), staged); err != nil {
			if isDuplicateKeyError(err, "booking_url") {
				return ErrFileAlreadyStaged
			}
			u.log.Warnf("Failed to record staged file: %+v", err)
			return err
		}
	}
	return nil
}

func (u *consultationUsecase) ListFiles(ctx context.Context, sessionID, bookingID string) ([]dto.StagedFileResponse, error) {
	if _, err := u.findBooking(ctx, sessionID, bookingID); err != nil {
		return nil, err
	}

	files, err := u.stagedFileRepo.FindByBookingID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find staged files: %+v", err)
		return nil, err
	}
	return converter.StagedFilesToResponses(files), nil
}

func (u *consultationUsecase) RemoveFile(ctx context.Context, sessionID, bookingID, fileID string) error {
	id, err := uuid.Parse(fileID)
	if err != nil {
		return ErrStagedFileNotFound
	}

	booking, err := u.findBooking(ctx, sessionID, bookingID)
	if err != nil {
		return err
	}
	if !booking.IsPending() {
		return ErrBookingNotPending
	}

	release, err := u.guard.Acquire(service.ActionKey(sessionID, screenConsultations, bookingID))
	if err != nil {
		return err
	}
	affected, err := u.stagedFileRepo.Delete(u.db.WithContext(ctx), bookingID, id)
	release(err)
	if err != nil {
		u.log.Warnf("Failed to delete staged file: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrStagedFileNotFound
	}
	return nil
}

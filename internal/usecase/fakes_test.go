package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// testDB returns a gorm handle that never touches a database; the fakes ignore it
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)
	return db
}

func newGuard(t *testing.T) *service.ActionGuard {
	g := service.NewActionGuard(quietLogger())
	t.Cleanup(g.Stop)
	return g
}

type fakeConsultationRepo struct {
	mu        sync.Mutex
	records   []entity.ConsultationRaw
	listCalls int
	updates   []string
	updateErr error
	// onUpdate runs inside UpdateStatus, before it returns
	onUpdate func()
}

func (f *fakeConsultationRepo) List(ctx context.Context) ([]entity.ConsultationRaw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]entity.ConsultationRaw(nil), f.records...), nil
}

func (f *fakeConsultationRepo) UpdateStatus(ctx context.Context, id string, remoteStatus string) error {
	if f.onUpdate != nil {
		f.onUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, id+"="+remoteStatus)
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = remoteStatus
		}
	}
	return nil
}

type fakeUploadRepo struct {
	uploads []string
	err     error
}

func (f *fakeUploadRepo) Upload(ctx context.Context, fileName, contentType string, content io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, fileName+"|"+contentType)
	return "https://cdn.institute.test/" + fileName, nil
}

type fakeStagedFileRepo struct {
	files []entity.StagedFile
}

func (f *fakeStagedFileRepo) Create(db *gorm.DB, file *entity.StagedFile) error {
	for _, existing := range f.files {
		if existing.BookingID == file.BookingID && existing.URL == file.URL {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_staged_files_booking_url"}
		}
	}
	file.CreatedAt = time.Now()
	f.files = append(f.files, *file)
	return nil
}

func (f *fakeStagedFileRepo) FindByBookingID(db *gorm.DB, bookingID string) ([]entity.StagedFile, error) {
	var out []entity.StagedFile
	for _, file := range f.files {
		if file.BookingID == bookingID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeStagedFileRepo) FindByBookingIDs(db *gorm.DB, bookingIDs []string) ([]entity.StagedFile, error) {
	wanted := make(map[string]bool, len(bookingIDs))
	for _, id := range bookingIDs {
		wanted[id] = true
	}
	var out []entity.StagedFile
	for _, file := range f.files {
		if wanted[file.BookingID] {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeStagedFileRepo) CountByBookingID(db *gorm.DB, bookingID string) (int64, error) {
	files, _ := f.FindByBookingID(db, bookingID)
	return int64(len(files)), nil
}

func (f *fakeStagedFileRepo) Delete(db *gorm.DB, bookingID string, id uuid.UUID) (int64, error) {
	for i, file := range f.files {
		if file.ID == id && file.BookingID == bookingID {
			f.files = append(f.files[:i], f.files[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeSlotRepo struct {
	slots      []entity.TimeSlot
	listCalls  int
	filters    []entity.SlotFilter
	blocked    map[string]bool
	deleted    []string
	bulk       []entity.BulkSlotRequest
	bulkResult int
	stats      entity.SlotStats
}

func (f *fakeSlotRepo) List(ctx context.Context, filter entity.SlotFilter) ([]entity.TimeSlot, error) {
	f.listCalls++
	f.filters = append(f.filters, filter)
	return append([]entity.TimeSlot(nil), f.slots...), nil
}

func (f *fakeSlotRepo) Stats(ctx context.Context, startDate, endDate string) (*entity.SlotStats, error) {
	stats := f.stats
	return &stats, nil
}

func (f *fakeSlotRepo) BulkCreate(ctx context.Context, req entity.BulkSlotRequest) (int, error) {
	f.bulk = append(f.bulk, req)
	return f.bulkResult, nil
}

func (f *fakeSlotRepo) SetBlocked(ctx context.Context, id string, blocked bool) error {
	if f.blocked == nil {
		f.blocked = make(map[string]bool)
	}
	f.blocked[id] = blocked
	for i := range f.slots {
		if f.slots[i].ID == id {
			f.slots[i].IsBlocked = blocked
		}
	}
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	for i := range f.slots {
		if f.slots[i].ID == id {
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			break
		}
	}
	return nil
}

type fakeStudentRepo struct {
	students  []entity.Student
	listCalls int
	deleted   []string
	deleteErr error
}

func (f *fakeStudentRepo) List(ctx context.Context) ([]entity.Student, error) {
	f.listCalls++
	return append([]entity.Student(nil), f.students...), nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	for i := range f.students {
		if f.students[i].ID == id {
			f.students = append(f.students[:i], f.students[i+1:]...)
			break
		}
	}
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.AdminSession
	ttls     map[string]time.Duration
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.AdminSession{}, ttls: map[string]time.Duration{}}
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *entity.AdminSession, ttl time.Duration) error {
	copied := *session
	f.sessions[session.ID] = &copied
	f.ttls[session.ID] = ttl
	return nil
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, id string) (*entity.AdminSession, error) {
	return f.sessions[id], nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

type fakeAuthRepo struct {
	token   string
	profile entity.AdminProfile
	err     error
}

func (f *fakeAuthRepo) Login(ctx context.Context, email, password string) (string, *entity.AdminProfile, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	profile := f.profile
	return f.token, &profile, nil
}

type fakeCMSRepo struct {
	sections map[string]entity.CMSSection
	puts     int
}

func (f *fakeCMSRepo) Get(ctx context.Context, section string) (*entity.CMSSection, error) {
	stored, ok := f.sections[section]
	if !ok {
		return &entity.CMSSection{Name: section}, nil
	}
	stored.Name = section
	return &stored, nil
}

func (f *fakeCMSRepo) Put(ctx context.Context, section *entity.CMSSection) error {
	if f.sections == nil {
		f.sections = map[string]entity.CMSSection{}
	}
	f.puts++
	f.sections[section.Name] = *section
	return nil
}

type fakeBranchRepo struct {
	branches  []entity.Branch
	replaced  []entity.Branch
	listCalls int
}

func (f *fakeBranchRepo) List(ctx context.Context) ([]entity.Branch, error) {
	f.listCalls++
	return append([]entity.Branch(nil), f.branches...), nil
}

func (f *fakeBranchRepo) Replace(ctx context.Context, branch *entity.Branch) error {
	f.replaced = append(f.replaced, *branch)
	for i := range f.branches {
		if f.branches[i].ID == branch.ID {
			f.branches[i] = *branch
		}
	}
	return nil
}

type fakeReviewRepo struct {
	reviews   []entity.Review
	listCalls int
	approved  []string
	deleted   []string
	err       error
	// onApprove runs inside Approve, before it returns
	onApprove func()
}

func (f *fakeReviewRepo) List(ctx context.Context) ([]entity.Review, error) {
	f.listCalls++
	return append([]entity.Review(nil), f.reviews...), nil
}

func (f *fakeReviewRepo) Approve(ctx context.Context, id string) error {
	if f.onApprove != nil {
		f.onApprove()
	}
	if f.err != nil {
		return f.err
	}
	f.approved = append(f.approved, id)
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			f.reviews[i].IsApproved = true
		}
	}
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			break
		}
	}
	return nil
}

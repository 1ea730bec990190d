package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/delivery/http/middleware"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/infrastructure/remote"
	"institute-admin-console/internal/service"
	"institute-admin-console/internal/usecase"
	"institute-admin-console/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSession = &entity.AdminSession{
	ID:      "session-1",
	Token:   "backend-token",
	Profile: entity.AdminProfile{ID: "a1", Email: "root@institute.test", Role: entity.RoleAdmin},
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

// serve routes a single request through a mux route so path variables resolve
func serve(t *testing.T, method, pattern, target string, body *bytes.Buffer, contentType string, h http.HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc(pattern, h).Methods(method)

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req = req.WithContext(middleware.WithSession(req.Context(), testSession))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(raw)
}

type fakeStudentUsecase struct {
	list      func(q *dto.ListQuery) (*dto.StudentListResponse, error)
	deleteErr error
	sessions  []string
}

func (f *fakeStudentUsecase) List(ctx context.Context, sessionID string, q *dto.ListQuery) (*dto.StudentListResponse, error) {
	f.sessions = append(f.sessions, sessionID)
	return f.list(q)
}

func (f *fakeStudentUsecase) Delete(ctx context.Context, sessionID, studentID string) error {
	f.sessions = append(f.sessions, sessionID)
	return f.deleteErr
}

func TestListStudents_DecodesQueryAndReturnsPageMeta(t *testing.T) {
	var got *dto.ListQuery
	uc := &fakeStudentUsecase{list: func(q *dto.ListQuery) (*dto.StudentListResponse, error) {
		got = q
		return &dto.StudentListResponse{
			Students: []dto.StudentResponse{{ID: "s1"}},
			Page:     dto.PageInfo{CurrentPage: 2, TotalPages: 3, PageSize: 10, Total: 23},
		}, nil
	}}
	h := NewStudentHandler(uc)

	rec, env := serve(t, http.MethodGet, "/students", "/students?search=roy&course=BBA&page=2&refresh=true&unknown=1", nil, "", h.ListStudents)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "roy", got.Search)
	assert.Equal(t, "BBA", got.Course)
	assert.Equal(t, 2, got.Page)
	assert.True(t, got.Refresh)
	assert.Equal(t, []string{"session-1"}, uc.sessions)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 23, env.Meta.Total)
	assert.Equal(t, 3, env.Meta.TotalPages)
}

func TestDeleteStudent_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "deleted", err: nil, want: http.StatusOK},
		{name: "unknown student", err: usecase.ErrStudentNotFound, want: http.StatusNotFound},
		{name: "second click", err: service.ErrActionInFlight, want: http.StatusConflict},
		{name: "backend timeout", err: &remote.Error{Kind: remote.KindTimeout}, want: http.StatusGatewayTimeout},
		{name: "backend rejects token", err: &remote.Error{Kind: remote.KindStatus, StatusCode: http.StatusForbidden}, want: http.StatusUnauthorized},
		{name: "backend failure", err: &remote.Error{Kind: remote.KindStatus, StatusCode: http.StatusInternalServerError, Message: "db down"}, want: http.StatusBadGateway},
		{name: "wrapped decode error", err: fmt.Errorf("students: %w", &remote.Error{Kind: remote.KindDecode}), want: http.StatusBadGateway},
		{name: "no backend token", err: remote.ErrNoSession, want: http.StatusUnauthorized},
		{name: "local failure", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewStudentHandler(&fakeStudentUsecase{deleteErr: tt.err})

			rec, env := serve(t, http.MethodDelete, "/students/{id}", "/students/s1", nil, "", h.DeleteStudent)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.err == nil, env.Success)
		})
	}
}

type fakeConsultationUsecase struct {
	updateErr  error
	stagedWith []dto.UploadFile
	uploadedBy string
}

func (f *fakeConsultationUsecase) List(ctx context.Context, sessionID string, q *dto.ListQuery) (*dto.BookingListResponse, error) {
	return &dto.BookingListResponse{}, nil
}

func (f *fakeConsultationUsecase) UpdateStatus(ctx context.Context, sessionID, bookingID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dto.BookingResponse{ID: bookingID, Status: req.Status}, nil
}

func (f *fakeConsultationUsecase) StageFiles(ctx context.Context, sessionID, bookingID, uploadedBy string, files []dto.UploadFile) ([]dto.StagedFileResponse, error) {
	f.stagedWith = files
	f.uploadedBy = uploadedBy
	out := make([]dto.StagedFileResponse, 0, len(files))
	for _, file := range files {
		out = append(out, dto.StagedFileResponse{BookingID: bookingID, FileName: file.FileName})
	}
	return out, nil
}

func (f *fakeConsultationUsecase) ListFiles(ctx context.Context, sessionID, bookingID string) ([]dto.StagedFileResponse, error) {
	return nil, nil
}

func (f *fakeConsultationUsecase) RemoveFile(ctx context.Context, sessionID, bookingID, fileID string) error {
	return usecase.ErrStagedFileNotFound
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
		err  error
		want int
	}{
		{name: "consulted", body: map[string]interface{}{"status": "consulted"}, want: http.StatusOK},
		{name: "unknown status fails validation", body: map[string]interface{}{"status": "done"}, want: http.StatusBadRequest},
		{name: "no uploaded files", body: map[string]interface{}{"status": "consulted"}, err: usecase.ErrNoUploadedFiles, want: http.StatusUnprocessableEntity},
		{name: "revert needs confirmation", body: map[string]interface{}{"status": "pending"}, err: usecase.ErrConfirmationRequired, want: http.StatusUnprocessableEntity},
		{name: "stale booking", body: map[string]interface{}{"status": "cancelled"}, err: usecase.ErrBookingNotFound, want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewConsultationHandler(&fakeConsultationUsecase{updateErr: tt.err}, validator.NewValidator())

			rec, _ := serve(t, http.MethodPut, "/consultations/{id}/status", "/consultations/b1/status", jsonBody(t, tt.body), "application/json", h.UpdateStatus)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestUploadFiles_ReadsMultipart(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, name := range []string{"report.pdf", "marks.png"} {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	uc := &fakeConsultationUsecase{}
	h := NewConsultationHandler(uc, validator.NewValidator())

	rec, env := serve(t, http.MethodPost, "/consultations/{id}/files", "/consultations/b1/files", &body, writer.FormDataContentType(), h.UploadFiles)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, uc.stagedWith, 2)
	assert.Equal(t, "report.pdf", uc.stagedWith[0].FileName)
	assert.Equal(t, []byte("content of marks.png"), uc.stagedWith[1].Content)
	assert.Equal(t, "root@institute.test", uc.uploadedBy)
	assert.True(t, env.Success)
}

func TestUploadFiles_OversizedBodyIsRejected(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", "scan.pdf")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), maxUploadSize+1))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	uc := &fakeConsultationUsecase{}
	h := NewConsultationHandler(uc, validator.NewValidator())

	rec, env := serve(t, http.MethodPost, "/consultations/{id}/files", "/consultations/b1/files", &body, writer.FormDataContentType(), h.UploadFiles)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, env.Success)
	assert.Empty(t, uc.stagedWith)
}

func TestRemoveFile_NotFound(t *testing.T) {
	h := NewConsultationHandler(&fakeConsultationUsecase{}, validator.NewValidator())

	rec, _ := serve(t, http.MethodDelete, "/consultations/{id}/files/{fileId}", "/consultations/b1/files/nope", nil, "", h.RemoveFile)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeSlotUsecase struct {
	usecase.SlotUsecase
	blocked  map[string]bool
	blockErr error
	window   *dto.SlotListQuery
}

func (f *fakeSlotUsecase) List(ctx context.Context, sessionID string, q *dto.SlotListQuery) (*dto.SlotListResponse, error) {
	f.window = q
	return &dto.SlotListResponse{Page: dto.PageInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, Total: 1}}, nil
}

func (f *fakeSlotUsecase) SetBlocked(ctx context.Context, sessionID, slotID string, blocked bool) error {
	if f.blockErr != nil {
		return f.blockErr
	}
	if f.blocked == nil {
		f.blocked = map[string]bool{}
	}
	f.blocked[slotID] = blocked
	return nil
}

func TestListSlots_ValidatesWindow(t *testing.T) {
	uc := &fakeSlotUsecase{}
	h := NewSlotHandler(uc, validator.NewValidator())

	rec, _ := serve(t, http.MethodGet, "/slots", "/slots?startDate=2025-01-06&endDate=2025-01-12&status=booked", nil, "", h.ListSlots)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.window)
	assert.Equal(t, "2025-01-06", uc.window.StartDate)
	assert.Equal(t, "booked", uc.window.Status)

	rec, env := serve(t, http.MethodGet, "/slots", "/slots?startDate=06-01-2025", nil, "", h.ListSlots)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error), "startDate")
}

func TestSetBlocked(t *testing.T) {
	uc := &fakeSlotUsecase{}
	h := NewSlotHandler(uc, validator.NewValidator())

	rec, _ := serve(t, http.MethodPatch, "/slots/{id}/block", "/slots/t1/block", bytes.NewBufferString(`{"is_blocked":false}`), "application/json", h.SetBlocked)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"t1": false}, uc.blocked)

	rec, _ = serve(t, http.MethodPatch, "/slots/{id}/block", "/slots/t1/block", bytes.NewBufferString(`{}`), "application/json", h.SetBlocked)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing flag")

	uc.blockErr = usecase.ErrSlotBooked
	rec, _ = serve(t, http.MethodPatch, "/slots/{id}/block", "/slots/t2/block", bytes.NewBufferString(`{"is_blocked":true}`), "application/json", h.SetBlocked)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

type fakeCMSUsecase struct {
	usecase.CMSUsecase
	err error
}

func (f *fakeCMSUsecase) UpdateBanners(ctx context.Context, sessionID, section string, req *dto.UpdateBannersRequest) (*dto.CMSSectionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CMSSectionResponse{Section: section, Kind: dto.CMSKindBanners, Banners: req.Banners}, nil
}

type fakeUploadUsecase struct {
	got dto.UploadFile
}

func (f *fakeUploadUsecase) UploadImage(ctx context.Context, file dto.UploadFile) (*dto.UploadResponse, error) {
	f.got = file
	if !strings.HasSuffix(file.FileName, ".png") {
		return nil, usecase.ErrUnsupportedFileType
	}
	return &dto.UploadResponse{URL: "https://cdn.institute.test/" + file.FileName}, nil
}

func TestUpdateBanners(t *testing.T) {
	body := `{"banners":[{"title":"Admissions","image_url":"https://cdn.institute.test/a.png"}]}`

	h := NewCMSHandler(&fakeCMSUsecase{}, &fakeUploadUsecase{}, validator.NewValidator())
	rec, _ := serve(t, http.MethodPut, "/cms/{section}/banners", "/cms/home-banners/banners", bytes.NewBufferString(body), "application/json", h.UpdateBanners)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := serve(t, http.MethodPut, "/cms/{section}/banners", "/cms/home-banners/banners", bytes.NewBufferString(`{"banners":[{"title":""}]}`), "application/json", h.UpdateBanners)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error), "banners[0].title")

	h = NewCMSHandler(&fakeCMSUsecase{err: usecase.ErrSectionHoldsHTML}, &fakeUploadUsecase{}, validator.NewValidator())
	rec, _ = serve(t, http.MethodPut, "/cms/{section}/banners", "/cms/about/banners", bytes.NewBufferString(body), "application/json", h.UpdateBanners)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUploadImage(t *testing.T) {
	upload := func(name string) (*httptest.ResponseRecorder, *fakeUploadUsecase) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", name)
		require.NoError(t, err)
		_, _ = part.Write([]byte("bytes"))
		require.NoError(t, writer.Close())

		uc := &fakeUploadUsecase{}
		h := NewCMSHandler(&fakeCMSUsecase{}, uc, validator.NewValidator())
		rec, _ := serve(t, http.MethodPost, "/uploads", "/uploads", &body, writer.FormDataContentType(), h.UploadImage)
		return rec, uc
	}

	rec, uc := upload("banner.png")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "banner.png", uc.got.FileName)

	rec, _ = upload("notes.txt")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeReviewUsecase struct {
	usecase.ReviewUsecase
	query      *dto.ListQuery
	approveErr error
}

func (f *fakeReviewUsecase) List(ctx context.Context, sessionID string, q *dto.ListQuery) (*dto.ReviewListResponse, error) {
	f.query = q
	return &dto.ReviewListResponse{
		Reviews:      []dto.ReviewResponse{{ID: "r1", Status: "pending", CanApprove: true}},
		PendingCount: 1,
		Page:         dto.PageInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, Total: 1},
	}, nil
}

func (f *fakeReviewUsecase) Approve(ctx context.Context, sessionID, reviewID string) (*dto.ReviewResponse, error) {
	if f.approveErr != nil {
		return nil, f.approveErr
	}
	return &dto.ReviewResponse{ID: reviewID, Status: "approved"}, nil
}

func TestListReviews(t *testing.T) {
	uc := &fakeReviewUsecase{}
	h := NewReviewHandler(uc)

	rec, env := serve(t, http.MethodGet, "/reviews", "/reviews?status=pending&search=asha", nil, "", h.ListReviews)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", uc.query.Status)
	assert.Equal(t, "asha", uc.query.Search)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Total)
}

func TestApproveReview_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "approved", want: http.StatusOK},
		{name: "unknown review", err: usecase.ErrReviewNotFound, want: http.StatusNotFound},
		{name: "already approved", err: usecase.ErrReviewAlreadyApproved, want: http.StatusUnprocessableEntity},
		{name: "second click", err: service.ErrActionInFlight, want: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReviewHandler(&fakeReviewUsecase{approveErr: tt.err})

			rec, env := serve(t, http.MethodPatch, "/reviews/{id}/approve", "/reviews/r1/approve", nil, "", h.ApproveReview)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.err == nil, env.Success)
		})
	}
}

package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/infrastructure/remote"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) (*remote.Client, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	client := remote.NewClient(time.Second, log, func(ctx context.Context) (string, bool) {
		return "admin-token", true
	})
	return client, srv.URL
}

func TestStudentRepository_List(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/admin/students", r.URL.Path)
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"_id":"s1","name":"Asha","totalFee":"1200.50","paidFee":200}]}`))
	})

	students, err := NewStudentRepository(client, base).List(context.Background())

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "s1", students[0].ID)
	assert.Equal(t, "1000.5", students[0].DueFee().String())
}

func TestConsultationRepository_UpdateStatus(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/consultations/b1/status", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Confirmed", body["status"])
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	err := NewConsultationRepository(client, base).UpdateStatus(context.Background(), "b1", entity.RemoteStatusConfirmed)

	assert.NoError(t, err)
}

func TestSlotRepository_ListSendsWindow(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedule/slots", r.URL.Path)
		assert.Equal(t, "2025-01-06", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2025-01-12", r.URL.Query().Get("endDate"))
		assert.Equal(t, "booked", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"t1","date":"2025-01-06","isBooked":true,"consultation":{"name":"Asha"}}]}`))
	})

	slots, err := NewSlotRepository(client, base).List(context.Background(), entity.SlotFilter{
		StartDate: "2025-01-06",
		EndDate:   "2025-01-12",
		Status:    entity.SlotStatusBooked,
	})

	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "Asha", slots[0].StudentName())
}

func TestSlotRepository_StatsAndBulk(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schedule/slots/stats":
			_, _ = w.Write([]byte(`{"success":true,"data":{"total":10,"booked":3,"blocked":2,"available":5}}`))
		case "/schedule/slots/bulk":
			var req entity.BulkSlotRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.True(t, req.SkipWeekends)
			_, _ = w.Write([]byte(`{"success":true,"count":5}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	repo := NewSlotRepository(client, base)

	stats, err := repo.Stats(context.Background(), "2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, entity.SlotStats{Total: 10, Booked: 3, Blocked: 2, Available: 5}, *stats)

	count, err := repo.BulkCreate(context.Background(), entity.BulkSlotRequest{StartDate: "2025-01-06", EndDate: "2025-01-10", SkipWeekends: true})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestSlotRepository_SetBlocked(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/schedule/slots/t1/block", r.URL.Path)
		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body["isBlocked"])
	})

	assert.NoError(t, NewSlotRepository(client, base).SetBlocked(context.Background(), "t1", true))
}

func TestCMSRepository_MissingSectionIsEmpty(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	section, err := NewCMSRepository(client, base).Get(context.Background(), "about")

	require.NoError(t, err)
	assert.Equal(t, &entity.CMSSection{Name: "about"}, section)
}

func TestCMSRepository_PutOmitsName(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/cms/home-banners", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"content":"[]"}`, string(raw))
	})

	err := NewCMSRepository(client, base).Put(context.Background(), &entity.CMSSection{Name: "home-banners", Content: "[]"})

	assert.NoError(t, err)
}

func TestUploadRepository_AcceptsWrappedURL(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload-file", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://cdn.example/a.png"}}`))
	})

	url, err := NewUploadRepository(client, base).Upload(context.Background(), "a.png", "image/png", strings.NewReader("png"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/a.png", url)
}

func TestAdminAuthRepository_Login(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"token":"backend-token","admin":{"_id":"a1","name":"Root","email":"root@institute.test","role":"admin"}}`))
	})

	token, profile, err := NewAdminAuthRepository(client, base).Login(context.Background(), "root@institute.test", "secret")

	require.NoError(t, err)
	assert.Equal(t, "backend-token", token)
	assert.Equal(t, "a1", profile.ID)
}

func TestAdminAuthRepository_LoginRejected(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	_, _, err := NewAdminAuthRepository(client, base).Login(context.Background(), "root@institute.test", "wrong")

	assert.True(t, remote.IsUnauthorized(err))
}

func TestBranchRepository_ReplaceSendsWholeObject(t *testing.T) {
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/branches/br1", r.URL.Path)
		var branch entity.Branch
		require.NoError(t, json.NewDecoder(r.Body).Decode(&branch))
		require.Len(t, branch.Semesters, 2)
		assert.Equal(t, "Spring", branch.Semesters[1].Name)
	})

	err := NewBranchRepository(client, base).Replace(context.Background(), &entity.Branch{
		ID:        "br1",
		Name:      "Main",
		Semesters: []entity.Semester{{Name: "Fall"}, {Name: "Spring"}},
	})

	assert.NoError(t, err)
}

func TestReviewRepository_ListAndApprove(t *testing.T) {
	var calls []string
	client, base := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"r1","name":"Asha","rating":5,"isApproved":false}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	repo := NewReviewRepository(client, base)

	reviews, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, entity.ReviewStatusPending, reviews[0].Status())

	require.NoError(t, repo.Approve(context.Background(), "r1"))
	require.NoError(t, repo.Delete(context.Background(), "r1"))

	assert.Equal(t, []string{
		"GET /admin/reviews",
		"PATCH /admin/reviews/r1/approve",
		"DELETE /admin/reviews/r1",
	}, calls)
}

package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenKey struct{}

func testTokenSource(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok
}

func newTestClient(timeout time.Duration) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(timeout, log, testTokenSource)
}

func withToken(token string) context.Context {
	return context.WithValue(context.Background(), tokenKey{}, token)
}

func TestClient_AttachesBearerAndDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "/admin/students", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"count":1,"data":[{"name":"Asha"}]}`))
	}))
	defer srv.Close()

	var out Envelope[[]struct {
		Name string `json:"name"`
	}]
	err := newTestClient(time.Second).Get(withToken("tok-1"), Endpoint(srv.URL, nil, "/admin/students"), &out)

	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Asha", out.Data[0].Name)
	assert.Equal(t, 1, out.Count)
}

func TestClient_MissingTokenFailsWithoutCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	err := newTestClient(time.Second).Get(context.Background(), srv.URL+"/admin/students", nil)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, called)
}

func TestClient_StatusErrorsAreTyped(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		notFound     bool
		unauthorized bool
		message      string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"message":"no such booking"}`, notFound: true, message: "no such booking"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"token expired"}`, unauthorized: true, message: "token expired"},
		{name: "forbidden", status: http.StatusForbidden, body: ``, unauthorized: true},
		{name: "server error", status: http.StatusInternalServerError, body: `boom`, message: "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := newTestClient(time.Second).Delete(withToken("t"), srv.URL+"/admin/students/1")

			remoteErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindStatus, remoteErr.Kind)
			assert.Equal(t, tt.status, remoteErr.StatusCode)
			assert.Equal(t, tt.message, remoteErr.Message)
			assert.Equal(t, tt.notFound, IsNotFound(err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(err))
		})
	}
}

func TestClient_SuccessFalseIsAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"slot already booked"}`))
	}))
	defer srv.Close()

	err := newTestClient(time.Second).Patch(withToken("t"), srv.URL+"/schedule/slots/1/block", map[string]bool{"isBlocked": true}, nil)

	remoteErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindStatus, remoteErr.Kind)
	assert.Equal(t, "slot already booked", remoteErr.Message)
}

func TestClient_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Consulted", body["status"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newTestClient(time.Second).Put(withToken("t"), srv.URL+"/admin/consultations/b1/status", map[string]string{"status": "Consulted"}, nil)

	assert.NoError(t, err)
}

func TestClient_DecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": "not a list"}`))
	}))
	defer srv.Close()

	var out Envelope[[]string]
	err := newTestClient(time.Second).Get(withToken("t"), srv.URL, &out)

	remoteErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindDecode, remoteErr.Kind)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	err := newTestClient(50*time.Millisecond).Get(withToken("t"), srv.URL, nil)

	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestClient_UploadSendsMultipartFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "report.pdf", header.Filename)
		assert.Equal(t, "pdf-bytes", string(content))
		_, _ = w.Write([]byte(`{"url":"https://cdn.example/report.pdf"}`))
	}))
	defer srv.Close()

	var out struct {
		URL string `json:"url"`
	}
	err := newTestClient(time.Second).Upload(withToken("t"), srv.URL+"/upload-file", "report.pdf", "application/pdf", strings.NewReader("pdf-bytes"), &out)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/report.pdf", out.URL)
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "http://api/admin/students/a%2Fb", Endpoint("http://api/", nil, "/admin/students", "a/b"))
	assert.Equal(t, "http://api/schedule/slots?endDate=2025-01-31&startDate=2025-01-01",
		Endpoint("http://api", url.Values{"startDate": {"2025-01-01"}, "endDate": {"2025-01-31"}}, "/schedule/slots"))
	assert.Equal(t, "http://api/schedule/slots/s1/block", Endpoint("http://api", nil, "/schedule/slots", "s1", "block"))
}

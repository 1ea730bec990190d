package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenSource yields the bearer token of the session carried by ctx
type TokenSource func(ctx context.Context) (string, bool)

// Client issues calls against the institute backend. It attaches the bearer
// token of the current session, never retries and never caches.
type Client struct {
	http  *http.Client
	log   *logrus.Logger
	token TokenSource
}

func NewClient(timeout time.Duration, log *logrus.Logger, token TokenSource) *Client {
	return &Client{
		http:  &http.Client{Timeout: timeout},
		log:   log,
		token: token,
	}
}

// Envelope is the response wrapper used across the backend
type Envelope[T any] struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count,omitempty"`
	Data    T      `json:"data"`
}

// Endpoint joins base, path segments (escaped) and an optional query
func Endpoint(base string, query url.Values, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for i, seg := range segments {
		if i == 0 {
			// the first segment is a literal route such as "/admin/students"
			b.WriteString("/")
			b.WriteString(strings.Trim(seg, "/"))
			continue
		}
		b.WriteString("/")
		b.WriteString(url.PathEscape(seg))
	}
	if len(query) > 0 {
		b.WriteString("?")
		b.WriteString(query.Encode())
	}
	return b.String()
}

// Do sends body as JSON (when non-nil) with the session token and decodes the
// response into out (when non-nil).
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	return c.do(ctx, method, endpoint, body, out, true)
}

func (c *Client) Get(ctx context.Context, endpoint string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, endpoint, body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// DoAnonymous is Do without a bearer token, used by login
func (c *Client) DoAnonymous(ctx context.Context, method, endpoint string, body, out interface{}) error {
	return c.do(ctx, method, endpoint, body, out, false)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}, auth bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindDecode, Method: method, URL: endpoint, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Method: method, URL: endpoint, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if err := c.authorize(req); err != nil {
			return err
		}
	}
	return c.send(req, out)
}

// Upload posts a single file as multipart form field "file"
func (c *Client) Upload(ctx context.Context, endpoint, fileName, contentType string, content io.Reader, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreatePart(filePartHeader(fileName, contentType))
	if err != nil {
		return &Error{Kind: KindTransport, Method: http.MethodPost, URL: endpoint, Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return &Error{Kind: KindTransport, Method: http.MethodPost, URL: endpoint, Err: err}
	}
	if err := mw.Close(); err != nil {
		return &Error{Kind: KindTransport, Method: http.MethodPost, URL: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return &Error{Kind: KindTransport, Method: http.MethodPost, URL: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := c.authorize(req); err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) authorize(req *http.Request) error {
	token, ok := c.token(req.Context())
	if !ok || token == "" {
		return &Error{Kind: KindAuth, Method: req.Method, URL: req.URL.String(), Err: ErrNoSession}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (c *Client) send(req *http.Request, out interface{}) error {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		kind := KindTransport
		if isTimeout(err) {
			kind = KindTimeout
		}
		c.log.Warnf("Remote call failed: %s %s: %+v", req.Method, req.URL.Path, err)
		return &Error{Kind: kind, Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   req.Method,
		"path":     req.URL.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	}).Debug("Remote call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:       KindStatus,
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	// A 2xx with {"success": false} is still a failure
	var status struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &status); err == nil && status.Success != nil && !*status.Success {
		return &Error{
			Kind:       KindStatus,
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Message:    status.Message,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func filePartHeader(fileName, contentType string) map[string][]string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return map[string][]string{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName)},
		"Content-Type":        {contentType},
	}
}

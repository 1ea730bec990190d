package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/delivery/http/middleware"
	"institute-admin-console/internal/infrastructure/remote"
	"institute-admin-console/internal/service"
	"institute-admin-console/pkg/response"

	"github.com/gorilla/schema"
)

const (
	// maxUploadSize caps the whole multipart request body
	maxUploadSize = 20 << 20
	// uploadMemory is how much of a form is kept in memory; the rest spills to disk
	uploadMemory = 8 << 20
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

// decodeQuery fills dst from the request query string
func decodeQuery(r *http.Request, dst interface{}) error {
	return queryDecoder.Decode(dst, r.URL.Query())
}

// sessionID returns the console session of an authenticated request
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
		return "", false
	}
	return id, true
}

func pageMeta(page dto.PageInfo) *response.Meta {
	return &response.Meta{
		Page:       page.CurrentPage,
		Limit:      page.PageSize,
		Total:      int64(page.Total),
		TotalPages: page.TotalPages,
	}
}

// writeUpstreamError maps failures shared by every screen: a second click on
// an action still in flight and institute backend errors. Anything else is a 500.
func writeUpstreamError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, service.ErrActionInFlight) {
		response.Conflict(w, "The same action is already in progress")
		return
	}

	if errors.Is(err, remote.ErrNoSession) {
		response.Unauthorized(w, "Session has no institute backend token, please log in again")
		return
	}

	remoteErr, ok := remote.AsError(err)
	if !ok {
		response.InternalServerError(w, fallback)
		return
	}

	switch {
	case remote.IsTimeout(err):
		response.GatewayTimeout(w, "Institute backend did not respond in time")
	case remote.IsUnauthorized(err):
		response.Unauthorized(w, "Institute backend rejected the session, please log in again")
	case remote.IsNotFound(err):
		response.NotFound(w, remoteMessage(remoteErr, "Resource not found"))
	default:
		response.BadGateway(w, remoteMessage(remoteErr, fallback))
	}
}

func remoteMessage(err *remote.Error, fallback string) string {
	if err.Message != "" {
		return err.Message
	}
	return fallback
}

// readUploads reads every file posted under field. Bodies over maxUploadSize
// fail with *http.MaxBytesError.
func readUploads(w http.ResponseWriter, r *http.Request, field string) ([]dto.UploadFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		return nil, err
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[field]
	files := make([]dto.UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func writeUploadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
		response.Error(w, http.StatusRequestEntityTooLarge, "Upload exceeds 20 MB", nil)
		return
	}
	response.BadRequest(w, "Invalid multipart form")
}

func readUpload(header *multipart.FileHeader) (dto.UploadFile, error) {
	f, err := header.Open()
	if err != nil {
		return dto.UploadFile{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return dto.UploadFile{}, err
	}

	return dto.UploadFile{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	}, nil
}

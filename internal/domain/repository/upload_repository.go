package repository

import (
	"context"
	"io"
)

type UploadRepository interface {
	// Upload stores the file on the institute backend and returns its public URL
	Upload(ctx context.Context, fileName, contentType string, content io.Reader) (string, error)
}

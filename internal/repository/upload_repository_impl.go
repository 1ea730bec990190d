package repository

import (
	"context"
	"errors"
	"io"

	domainRepo "institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/infrastructure/remote"
)

const uploadPath = "/upload-file"

var errEmptyUploadURL = errors.New("upload response carried no url")

type uploadRepository struct {
	remoteResource
}

func NewUploadRepository(client *remote.Client, baseURL string) domainRepo.UploadRepository {
	return &uploadRepository{remoteResource{client: client, baseURL: baseURL}}
}

func (r *uploadRepository) Upload(ctx context.Context, fileName, contentType string, content io.Reader) (string, error) {
	// Some deployments answer {url}, others wrap it in {data: {url}}
	var out struct {
		URL  string `json:"url"`
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := r.client.Upload(ctx, r.endpoint(nil, uploadPath), fileName, contentType, content, &out); err != nil {
		return "", err
	}

	url := out.URL
	if url == "" {
		url = out.Data.URL
	}
	if url == "" {
		return "", errEmptyUploadURL
	}
	return url, nil
}

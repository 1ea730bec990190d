package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/repository"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyFile           = errors.New("file is empty")
	ErrUnsupportedFileType = errors.New("only images are accepted")
)

type UploadUsecase interface {
	// UploadImage stores an image on the backend and returns its URL for a later save
	UploadImage(ctx context.Context, file dto.UploadFile) (*dto.UploadResponse, error)
}

type uploadUsecase struct {
	log        *logrus.Logger
	uploadRepo repository.UploadRepository
}

func NewUploadUsecase(log *logrus.Logger, uploadRepo repository.UploadRepository) UploadUsecase {
	return &uploadUsecase{
		log:        log,
		uploadRepo: uploadRepo,
	}
}

func (u *uploadUsecase) UploadImage(ctx context.Context, file dto.UploadFile) (*dto.UploadResponse, error) {
	if len(file.Content) == 0 {
		return nil, ErrEmptyFile
	}

	contentType := detectContentType(file.Content, file.ContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedFileType
	}

	url, err := u.uploadRepo.Upload(ctx, file.FileName, contentType, bytes.NewReader(file.Content))
	if err != nil {
		u.log.Warnf("Failed to upload image: %+v", err)
		return nil, err
	}

	return &dto.UploadResponse{
		URL:         url,
		FileName:    file.FileName,
		ContentType: contentType,
		Size:        int64(len(file.Content)),
	}, nil
}

// detectContentType sniffs the content; the declared type is only used when
// sniffing finds nothing more specific than a generic binary or text type.
func detectContentType(content []byte, declared string) string {
	detected := mimetype.Detect(content)
	if detected.Is("application/octet-stream") || detected.Is("text/plain") {
		if declared != "" {
			return declared
		}
	}
	return detected.String()
}

package repository

import (
	"institute-admin-console/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StagedFileRepository interface {
	Create(db *gorm.DB, file *entity.StagedFile) error
	FindByBookingID(db *gorm.DB, bookingID string) ([]entity.StagedFile, error)
	FindByBookingIDs(db *gorm.DB, bookingIDs []string) ([]entity.StagedFile, error)
	CountByBookingID(db *gorm.DB, bookingID string) (int64, error)
	Delete(db *gorm.DB, bookingID string, id uuid.UUID) (int64, error)
}

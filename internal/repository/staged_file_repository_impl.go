package repository

import (
	"institute-admin-console/internal/domain/entity"
	domainRepo "institute-admin-console/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stagedFileRepository struct{}

func NewStagedFileRepository() domainRepo.StagedFileRepository {
	return &stagedFileRepository{}
}

func (r *stagedFileRepository) Create(db *gorm.DB, file *entity.StagedFile) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	return db.Create(file).Error
}

func (r *stagedFileRepository) FindByBookingID(db *gorm.DB, bookingID string) ([]entity.StagedFile, error) {
	var files []entity.StagedFile
	err := db.Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *stagedFileRepository) FindByBookingIDs(db *gorm.DB, bookingIDs []string) ([]entity.StagedFile, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}
	var files []entity.StagedFile
	err := db.Where("booking_id IN ?", bookingIDs).
		Order("created_at ASC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *stagedFileRepository) CountByBookingID(db *gorm.DB, bookingID string) (int64, error) {
	var count int64
	err := db.Model(&entity.StagedFile{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count, err
}

// Delete removes one file of a booking. Returns affected rows: 0 means the file
// does not belong to the booking.
func (r *stagedFileRepository) Delete(db *gorm.DB, bookingID string, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND booking_id = ?", id, bookingID).
		Delete(&entity.StagedFile{})
	return result.RowsAffected, result.Error
}

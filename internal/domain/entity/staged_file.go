package entity

import (
	"time"

	"github.com/google/uuid"
)

// StagedFile is a document uploaded by an admin against a booking before it is
// marked consulted. The file itself lives on the institute backend; this row
// keeps the reference so it survives a refresh.
type StagedFile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_staged_files_booking_url" json:"booking_id"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"file_name"`
	URL         string    `gorm:"type:text;not null;uniqueIndex:idx_staged_files_booking_url" json:"url"`
	ContentType string    `gorm:"type:varchar(127)" json:"content_type"`
	Size        int64     `gorm:"not null;default:0" json:"size"`
	UploadedBy  string    `gorm:"type:varchar(64)" json:"uploaded_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StagedFile) TableName() string {
	return "staged_files"
}

package dto

import (
	"time"
)

// Request DTOs

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending consulted cancelled"`
	// Confirm must be set to move a consulted booking back to pending
	Confirm bool `json:"confirm"`
}

// Response DTOs

type BookingResponse struct {
	ID               string               `json:"id"`
	StudentName      string               `json:"student_name"`
	ConsultationType string               `json:"consultation_type"`
	Mode             string               `json:"mode"`
	Course           string               `json:"course"`
	Date             string               `json:"date"`
	Time             string               `json:"time"`
	Phone            string               `json:"phone"`
	Email            string               `json:"email"`
	Purpose          string               `json:"purpose"`
	Status           string               `json:"status"`
	Documents        []string             `json:"documents"`
	UploadedFiles    []StagedFileResponse `json:"uploaded_files"`
	CanMarkConsulted bool                 `json:"can_mark_consulted"`
	CreatedAt        time.Time            `json:"created_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse   `json:"bookings"`
	Options  map[string][]string `json:"options"`
	Page     PageInfo            `json:"-"`
}

type StagedFileResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	FileName    string    `json:"file_name"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadFile is one file received from a multipart form
type UploadFile struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

package entity

import (
	"strings"
	"time"
)

// BookingStatus is the admin-facing status of a consultation booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConsulted BookingStatus = "consulted"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Remote status values accepted by the institute backend
const (
	RemoteStatusConfirmed = "Confirmed"
	RemoteStatusConsulted = "Consulted"
	RemoteStatusCancelled = "Cancelled"
	RemoteStatusPending   = "Pending"
)

// ParseBookingStatus accepts both the admin-facing and the backend spelling.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "confirmed":
		return BookingStatusPending, true
	case "consulted":
		return BookingStatusConsulted, true
	case "cancelled", "canceled":
		return BookingStatusCancelled, true
	}
	return "", false
}

// RemoteStatus returns the value the backend expects on a status update
func (s BookingStatus) RemoteStatus() string {
	switch s {
	case BookingStatusConsulted:
		return RemoteStatusConsulted
	case BookingStatusCancelled:
		return RemoteStatusCancelled
	default:
		return RemoteStatusConfirmed
	}
}

// Booking is a consultation booking as shown on the admin screens
type Booking struct {
	ID               string
	StudentName      string
	ConsultationType string
	Mode             string
	Course           string
	Date             string // YYYY-MM-DD
	Time             string // HH:MM
	Phone            string
	Email            string
	Purpose          string
	Status           BookingStatus
	Documents        []string
	UploadedFiles    []StagedFile
	CreatedAt        time.Time
}

func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

func (b *Booking) IsConsulted() bool {
	return b.Status == BookingStatusConsulted
}

func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// ConsultationRaw is the record returned by GET /admin/consultations
type ConsultationRaw struct {
	ID                   string    `json:"_id"`
	Name                 string    `json:"name"`
	ConsultationType     string    `json:"consultationType"`
	Mode                 string    `json:"mode"`
	Course               string    `json:"course"`
	Date                 string    `json:"date"`
	Time                 string    `json:"time"`
	Phone                string    `json:"phone"`
	Email                string    `json:"email"`
	CareerGuidance       bool      `json:"careerGuidance"`
	AdmissionQuery       bool      `json:"admissionQuery"`
	CourseSelection      bool      `json:"courseSelection"`
	FeeStructure         bool      `json:"feeStructure"`
	Scholarship          bool      `json:"scholarship"`
	ExamPreparation      bool      `json:"examPreparation"`
	DocumentVerification bool      `json:"documentVerification"`
	Other                bool      `json:"other"`
	OtherPurpose         string    `json:"otherPurpose"`
	Status               string    `json:"status"`
	Documents            []string  `json:"documents"`
	CreatedAt            time.Time `json:"createdAt"`
}

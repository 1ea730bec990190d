package dto

// Request DTOs

// SlotListQuery combines the backend window (startDate, endDate, status) with
// the local search, type filter and page.
type SlotListQuery struct {
	StartDate string `schema:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `schema:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status    string `schema:"status" validate:"omitempty,oneof=available booked blocked"`
	Search    string `schema:"search"`
	Type      string `schema:"type"`
	Page      int    `schema:"page"`
	Refresh   bool   `schema:"refresh"`
}

type TimeTemplateRequest struct {
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
}

type BulkSlotRequest struct {
	StartDate    string                `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string                `json:"endDate" validate:"required,datetime=2006-01-02"`
	SkipWeekends bool                  `json:"skipWeekends"`
	SlotType     string                `json:"slotType" validate:"required"`
	TimeSlots    []TimeTemplateRequest `json:"timeSlots" validate:"required,min=1,dive"`
}

type SetSlotBlockedRequest struct {
	IsBlocked *bool `json:"is_blocked" validate:"required"`
}

// Response DTOs

type SlotConsultationResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type SlotResponse struct {
	ID           string                    `json:"id"`
	Date         string                    `json:"date"`
	StartTime    string                    `json:"start_time"`
	EndTime      string                    `json:"end_time"`
	Duration     int                       `json:"duration"`
	SlotType     string                    `json:"slot_type"`
	IsBooked     bool                      `json:"is_booked"`
	IsBlocked    bool                      `json:"is_blocked"`
	Consultation *SlotConsultationResponse `json:"consultation,omitempty"`
	CanBlock     bool                      `json:"can_block"`
	CanUnblock   bool                      `json:"can_unblock"`
	CanDelete    bool                      `json:"can_delete"`
}

type SlotDayGroup struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

type SlotListResponse struct {
	Days    []SlotDayGroup      `json:"days"`
	Options map[string][]string `json:"options"`
	Page    PageInfo            `json:"-"`
}

type SlotStatsResponse struct {
	Total     int `json:"total"`
	Booked    int `json:"booked"`
	Blocked   int `json:"blocked"`
	Available int `json:"available"`
}

type SlotOverviewResponse struct {
	Stats SlotStatsResponse `json:"stats"`
	Slots SlotListResponse  `json:"slots"`
	Page  PageInfo          `json:"page"`
}

type BulkSlotPreviewResponse struct {
	Planned int            `json:"planned"`
	Days    []SlotDayGroup `json:"days"`
}

type BulkSlotResponse struct {
	Planned int `json:"planned"`
	Created int `json:"created"`
}

package dto

// Request DTOs

type SemesterRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// ReplaceBranchRequest carries the whole branch; omitted semesters are removed
type ReplaceBranchRequest struct {
	Name      string            `json:"name" validate:"required"`
	Code      string            `json:"code"`
	Address   string            `json:"address"`
	Phone     string            `json:"phone"`
	Semesters []SemesterRequest `json:"semesters" validate:"dive"`
}

// Response DTOs

type SemesterResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type BranchResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Code      string             `json:"code,omitempty"`
	Address   string             `json:"address,omitempty"`
	Phone     string             `json:"phone,omitempty"`
	Semesters []SemesterResponse `json:"semesters"`
}

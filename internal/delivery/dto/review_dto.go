package dto

type ReviewResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Course     string `json:"course"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Status     string `json:"status"`
	CanApprove bool   `json:"can_approve"`
	CreatedAt  string `json:"created_at"`
}

// ReviewListResponse counts pending reviews across the whole collection so
// the moderation badge does not depend on the active filters
type ReviewListResponse struct {
	Reviews      []ReviewResponse    `json:"reviews"`
	PendingCount int                 `json:"pending_count"`
	Options      map[string][]string `json:"options"`
	Page         PageInfo            `json:"-"`
}

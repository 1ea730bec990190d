package entity

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
)

// Review is a testimonial submitted from the public site. It is only shown
// there once an admin approves it.
type Review struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Course     string `json:"course"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	IsApproved bool   `json:"isApproved"`
	CreatedAt  string `json:"createdAt"`
}

func (r *Review) Status() string {
	if r.IsApproved {
		return ReviewStatusApproved
	}
	return ReviewStatusPending
}

// CanApprove is false once approved; approval is never undone
func (r *Review) CanApprove() bool {
	return !r.IsApproved
}

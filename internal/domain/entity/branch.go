package entity

// Branch is an institute location. Updates always replace the whole object,
// semesters included.
type Branch struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Code      string     `json:"code,omitempty"`
	Address   string     `json:"address,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Semesters []Semester `json:"semesters"`
}

type Semester struct {
	ID        string `json:"_id,omitempty"`
	Name      string `json:"name"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

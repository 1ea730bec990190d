package entity

// Slot status filter values understood by GET /schedule/slots
const (
	SlotStatusAvailable = "available"
	SlotStatusBooked    = "booked"
	SlotStatusBlocked   = "blocked"
)

// TimeSlot is a bookable consultation window. IsBooked and IsBlocked are
// independent flags.
type TimeSlot struct {
	ID           string            `json:"_id"`
	Date         string            `json:"date"`
	StartTime    string            `json:"startTime"`
	EndTime      string            `json:"endTime"`
	Duration     int               `json:"duration"`
	SlotType     string            `json:"slotType"`
	IsBooked     bool              `json:"isBooked"`
	IsBlocked    bool              `json:"isBlocked"`
	Consultation *SlotConsultation `json:"consultation,omitempty"`
}

// SlotConsultation is the booking summary embedded in a booked slot
type SlotConsultation struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// SlotControls lists the admin actions a slot exposes
type SlotControls struct {
	CanBlock   bool
	CanUnblock bool
	CanDelete  bool
}

// Controls never exposes block or delete for a booked slot, whatever its
// blocked flag says.
func (s *TimeSlot) Controls() SlotControls {
	if s.IsBooked {
		return SlotControls{}
	}
	return SlotControls{
		CanBlock:   !s.IsBlocked,
		CanUnblock: s.IsBlocked,
		CanDelete:  true,
	}
}

// StudentName returns the name of the consultation holding the slot, if any
func (s *TimeSlot) StudentName() string {
	if s.Consultation == nil {
		return ""
	}
	return s.Consultation.Name
}

// SlotFilter is the server-side window of GET /schedule/slots
type SlotFilter struct {
	StartDate string
	EndDate   string
	Status    string
}

// SlotStats is returned by GET /schedule/slots/stats
type SlotStats struct {
	Total     int `json:"total"`
	Booked    int `json:"booked"`
	Blocked   int `json:"blocked"`
	Available int `json:"available"`
}

package entity

import (
	"errors"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// maxBulkPlanDays bounds the expansion of a single bulk request
	maxBulkPlanDays = 366
)

var (
	ErrInvalidSlotDate  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidSlotTime  = errors.New("invalid time format, use HH:MM")
	ErrSlotDateRange    = errors.New("end date must not be before start date")
	ErrSlotTimeRange    = errors.New("slot end time must be after start time")
	ErrNoTimeTemplates  = errors.New("at least one time slot is required")
	ErrSlotPlanTooLarge = errors.New("bulk request spans too many days")
)

// TimeTemplate is one daily window of a bulk request
type TimeTemplate struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BulkSlotRequest is the body of POST /schedule/slots/bulk
type BulkSlotRequest struct {
	StartDate    string         `json:"startDate"`
	EndDate      string         `json:"endDate"`
	SkipWeekends bool           `json:"skipWeekends"`
	SlotType     string         `json:"slotType"`
	TimeSlots    []TimeTemplate `json:"timeSlots"`
}

// Plan expands the request into the slots the backend is expected to create:
// every calendar day in [StartDate, EndDate] (weekends dropped when asked) times
// every time template.
func (r BulkSlotRequest) Plan() ([]TimeSlot, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return nil, ErrInvalidSlotDate
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return nil, ErrInvalidSlotDate
	}
	if end.Before(start) {
		return nil, ErrSlotDateRange
	}
	if end.Sub(start) > time.Duration(maxBulkPlanDays)*24*time.Hour {
		return nil, ErrSlotPlanTooLarge
	}
	if len(r.TimeSlots) == 0 {
		return nil, ErrNoTimeTemplates
	}

	durations := make([]int, len(r.TimeSlots))
	for i, tpl := range r.TimeSlots {
		from, err := time.Parse(timeLayout, tpl.StartTime)
		if err != nil {
			return nil, ErrInvalidSlotTime
		}
		to, err := time.Parse(timeLayout, tpl.EndTime)
		if err != nil {
			return nil, ErrInvalidSlotTime
		}
		if !to.After(from) {
			return nil, ErrSlotTimeRange
		}
		durations[i] = int(to.Sub(from).Minutes())
	}

	var slots []TimeSlot
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if r.SkipWeekends && isWeekend(day) {
			continue
		}
		for i, tpl := range r.TimeSlots {
			slots = append(slots, TimeSlot{
				Date:      day.Format(dateLayout),
				StartTime: tpl.StartTime,
				EndTime:   tpl.EndTime,
				Duration:  durations[i],
				SlotType:  r.SlotType,
			})
		}
	}
	return slots, nil
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

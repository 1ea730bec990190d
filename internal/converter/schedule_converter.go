package converter

import (
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
)

// SlotToResponse converts a TimeSlot to its DTO, including the admin controls it exposes
func SlotToResponse(slot *entity.TimeSlot) dto.SlotResponse {
	controls := slot.Controls()
	response := dto.SlotResponse{
		ID:         slot.ID,
		Date:       slot.Date,
		StartTime:  slot.StartTime,
		EndTime:    slot.EndTime,
		Duration:   slot.Duration,
		SlotType:   slot.SlotType,
		IsBooked:   slot.IsBooked,
		IsBlocked:  slot.IsBlocked,
		CanBlock:   controls.CanBlock,
		CanUnblock: controls.CanUnblock,
		CanDelete:  controls.CanDelete,
	}

	if slot.Consultation != nil {
		response.Consultation = &dto.SlotConsultationResponse{
			ID:     slot.Consultation.ID,
			Name:   slot.Consultation.Name,
			Phone:  slot.Consultation.Phone,
			Email:  slot.Consultation.Email,
			Status: slot.Consultation.Status,
		}
	}

	return response
}

// SlotDays converts date buckets to DTOs in the order of sortedDates
func SlotDays(groups map[string][]entity.TimeSlot, sortedDates []string) []dto.SlotDayGroup {
	days := make([]dto.SlotDayGroup, 0, len(sortedDates))
	for _, date := range sortedDates {
		bucket := groups[date]
		slots := make([]dto.SlotResponse, len(bucket))
		for i := range bucket {
			slots[i] = SlotToResponse(&bucket[i])
		}
		days = append(days, dto.SlotDayGroup{Date: date, Slots: slots})
	}
	return days
}

func SlotStatsToResponse(stats *entity.SlotStats) dto.SlotStatsResponse {
	if stats == nil {
		return dto.SlotStatsResponse{}
	}
	return dto.SlotStatsResponse{
		Total:     stats.Total,
		Booked:    stats.Booked,
		Blocked:   stats.Blocked,
		Available: stats.Available,
	}
}

func BulkSlotRequestToEntity(req *dto.BulkSlotRequest) entity.BulkSlotRequest {
	templates := make([]entity.TimeTemplate, len(req.TimeSlots))
	for i, tpl := range req.TimeSlots {
		templates[i] = entity.TimeTemplate{StartTime: tpl.StartTime, EndTime: tpl.EndTime}
	}
	return entity.BulkSlotRequest{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		SkipWeekends: req.SkipWeekends,
		SlotType:     req.SlotType,
		TimeSlots:    templates,
	}
}

package converter

import (
	"strings"

	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
)

// purposeLabels lists the purpose flags in display order
var purposeLabels = []struct {
	label string
	set   func(*entity.ConsultationRaw) bool
}{
	{"Career Guidance", func(r *entity.ConsultationRaw) bool { return r.CareerGuidance }},
	{"Admission Query", func(r *entity.ConsultationRaw) bool { return r.AdmissionQuery }},
	{"Course Selection", func(r *entity.ConsultationRaw) bool { return r.CourseSelection }},
	{"Fee Structure", func(r *entity.ConsultationRaw) bool { return r.FeeStructure }},
	{"Scholarship", func(r *entity.ConsultationRaw) bool { return r.Scholarship }},
	{"Exam Preparation", func(r *entity.ConsultationRaw) bool { return r.ExamPreparation }},
	{"Document Verification", func(r *entity.ConsultationRaw) bool { return r.DocumentVerification }},
}

// Purpose joins the labels of the purpose flags set on raw. The "other" flag
// contributes its free text, or "Other" when the text is empty.
func Purpose(raw *entity.ConsultationRaw) string {
	var parts []string
	for _, p := range purposeLabels {
		if p.set(raw) {
			parts = append(parts, p.label)
		}
	}
	if raw.Other {
		if text := strings.TrimSpace(raw.OtherPurpose); text != "" {
			parts = append(parts, text)
		} else {
			parts = append(parts, "Other")
		}
	}
	return strings.Join(parts, ", ")
}

// ConsultationToBooking maps a backend consultation record to the admin Booking shape.
// Unknown statuses fall back to pending.
func ConsultationToBooking(raw *entity.ConsultationRaw) entity.Booking {
	status, ok := entity.ParseBookingStatus(raw.Status)
	if !ok {
		status = entity.BookingStatusPending
	}

	return entity.Booking{
		ID:               raw.ID,
		StudentName:      raw.Name,
		ConsultationType: raw.ConsultationType,
		Mode:             raw.Mode,
		Course:           raw.Course,
		Date:             raw.Date,
		Time:             raw.Time,
		Phone:            raw.Phone,
		Email:            raw.Email,
		Purpose:          Purpose(raw),
		Status:           status,
		Documents:        append([]string(nil), raw.Documents...),
		CreatedAt:        raw.CreatedAt,
	}
}

func ConsultationsToBookings(raws []entity.ConsultationRaw) []entity.Booking {
	bookings := make([]entity.Booking, len(raws))
	for i := range raws {
		bookings[i] = ConsultationToBooking(&raws[i])
	}
	return bookings
}

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	documents := booking.Documents
	if documents == nil {
		documents = []string{}
	}

	return &dto.BookingResponse{
		ID:               booking.ID,
		StudentName:      booking.StudentName,
		ConsultationType: booking.ConsultationType,
		Mode:             booking.Mode,
		Course:           booking.Course,
		Date:             booking.Date,
		Time:             booking.Time,
		Phone:            booking.Phone,
		Email:            booking.Email,
		Purpose:          booking.Purpose,
		Status:           string(booking.Status),
		Documents:        documents,
		UploadedFiles:    StagedFilesToResponses(booking.UploadedFiles),
		CanMarkConsulted: booking.IsPending() && len(booking.UploadedFiles) > 0,
		CreatedAt:        booking.CreatedAt,
	}
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}

func StagedFileToResponse(file *entity.StagedFile) dto.StagedFileResponse {
	return dto.StagedFileResponse{
		ID:          file.ID.String(),
		BookingID:   file.BookingID,
		FileName:    file.FileName,
		URL:         file.URL,
		ContentType: file.ContentType,
		Size:        file.Size,
		CreatedAt:   file.CreatedAt,
	}
}

func StagedFilesToResponses(files []entity.StagedFile) []dto.StagedFileResponse {
	responses := make([]dto.StagedFileResponse, len(files))
	for i := range files {
		responses[i] = StagedFileToResponse(&files[i])
	}
	return responses
}

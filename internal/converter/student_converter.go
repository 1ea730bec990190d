package converter

import (
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
)

func StudentToResponse(student *entity.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:            student.ID,
		Name:          student.Name,
		Phone:         student.Phone,
		Email:         student.Email,
		GuardianName:  student.GuardianName,
		GuardianPhone: student.GuardianPhone,
		Course:        student.Course,
		Batch:         student.Batch,
		TotalFee:      student.TotalFee,
		PaidFee:       student.PaidFee,
		DueFee:        student.DueFee(),
		AdmissionDate: student.AdmissionDate,
	}
}

func StudentsToResponses(students []entity.Student) []dto.StudentResponse {
	responses := make([]dto.StudentResponse, len(students))
	for i := range students {
		responses[i] = StudentToResponse(&students[i])
	}
	return responses
}

func FeeSummaryToResponse(summary entity.FeeSummary) dto.FeeSummaryResponse {
	return dto.FeeSummaryResponse{
		Total: summary.Total,
		Paid:  summary.Paid,
		Due:   summary.Due,
	}
}

package converter

import (
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
)

func BranchToResponse(branch *entity.Branch) dto.BranchResponse {
	semesters := make([]dto.SemesterResponse, len(branch.Semesters))
	for i, s := range branch.Semesters {
		semesters[i] = dto.SemesterResponse{
			ID:        s.ID,
			Name:      s.Name,
			StartDate: s.StartDate,
			EndDate:   s.EndDate,
		}
	}
	return dto.BranchResponse{
		ID:        branch.ID,
		Name:      branch.Name,
		Code:      branch.Code,
		Address:   branch.Address,
		Phone:     branch.Phone,
		Semesters: semesters,
	}
}

func BranchesToResponses(branches []entity.Branch) []dto.BranchResponse {
	responses := make([]dto.BranchResponse, len(branches))
	for i := range branches {
		responses[i] = BranchToResponse(&branches[i])
	}
	return responses
}

// ReplaceBranchRequestToEntity builds the full object sent on replacement
func ReplaceBranchRequestToEntity(id string, req *dto.ReplaceBranchRequest) *entity.Branch {
	semesters := make([]entity.Semester, len(req.Semesters))
	for i, s := range req.Semesters {
		semesters[i] = entity.Semester{
			ID:        s.ID,
			Name:      s.Name,
			StartDate: s.StartDate,
			EndDate:   s.EndDate,
		}
	}
	return &entity.Branch{
		ID:        id,
		Name:      req.Name,
		Code:      req.Code,
		Address:   req.Address,
		Phone:     req.Phone,
		Semesters: semesters,
	}
}

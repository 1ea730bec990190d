package converter

import (
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
)

// AdminToResponse converts the stored admin profile to AdminResponse DTO
func AdminToResponse(profile *entity.AdminProfile) dto.AdminResponse {
	if profile == nil {
		return dto.AdminResponse{}
	}
	return dto.AdminResponse{
		ID:    profile.ID,
		Name:  profile.Name,
		Email: profile.Email,
		Role:  profile.Role,
	}
}

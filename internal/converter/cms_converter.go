package converter

import (
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
)

func BannersToEntities(banners []dto.BannerRequest) []entity.Banner {
	out := make([]entity.Banner, len(banners))
	for i, b := range banners {
		out[i] = entity.Banner{Title: b.Title, Subtitle: b.Subtitle, ImageURL: b.ImageURL, Link: b.Link}
	}
	return out
}

func BannersToResponses(banners []entity.Banner) []dto.BannerRequest {
	out := make([]dto.BannerRequest, len(banners))
	for i, b := range banners {
		out[i] = dto.BannerRequest{Title: b.Title, Subtitle: b.Subtitle, ImageURL: b.ImageURL, Link: b.Link}
	}
	return out
}

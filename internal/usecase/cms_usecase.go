package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"institute-admin-console/internal/converter"
	"institute-admin-console/internal/delivery/dto"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/domain/repository"
	"institute-admin-console/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidSection      = errors.New("section name is required")
	ErrSectionHoldsBanners = errors.New("section holds a banner list, use the banners endpoint")
	ErrSectionHoldsHTML    = errors.New("section holds HTML content, banners cannot be stored in it")
	ErrCorruptBannerList   = errors.New("stored banner list is not valid JSON")
)

type CMSUsecase interface {
	GetSection(ctx context.Context, section string) (*dto.CMSSectionResponse, error)
	UpdateHTML(ctx context.Context, sessionID, section string, req *dto.UpdateCMSHTMLRequest) (*dto.CMSSectionResponse, error)
	UpdateBanners(ctx context.Context, sessionID, section string, req *dto.UpdateBannersRequest) (*dto.CMSSectionResponse, error)
}

type cmsUsecase struct {
	log     *logrus.Logger
	cmsRepo repository.CMSRepository
	guard   *service.ActionGuard
}

func NewCMSUsecase(log *logrus.Logger, cmsRepo repository.CMSRepository, guard *service.ActionGuard) CMSUsecase {
	return &cmsUsecase{
		log:     log,
		cmsRepo: cmsRepo,
		guard:   guard,
	}
}

func (u *cmsUsecase) GetSection(ctx context.Context, section string) (*dto.CMSSectionResponse, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, ErrInvalidSection
	}

	stored, err := u.cmsRepo.Get(ctx, section)
	if err != nil {
		u.log.Warnf("Failed to fetch CMS section %q: %+v", section, err)
		return nil, err
	}
	return sectionToResponse(stored)
}

func (u *cmsUsecase) UpdateHTML(ctx context.Context, sessionID, section string, req *dto.UpdateCMSHTMLRequest) (*dto.CMSSectionResponse, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, ErrInvalidSection
	}
	if entity.IsBannerSection(section) {
		return nil, ErrSectionHoldsBanners
	}

	return u.put(ctx, sessionID, &entity.CMSSection{
		Name:     section,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
}

func (u *cmsUsecase) UpdateBanners(ctx context.Context, sessionID, section string, req *dto.UpdateBannersRequest) (*dto.CMSSectionResponse, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, ErrInvalidSection
	}
	if !entity.IsBannerSection(section) {
		return nil, ErrSectionHoldsHTML
	}

	banners := converter.BannersToEntities(req.Banners)
	content, err := json.Marshal(banners)
	if err != nil {
		return nil, err
	}

	return u.put(ctx, sessionID, &entity.CMSSection{
		Name:    section,
		Content: string(content),
	})
}

// put writes the section and returns it as read back from the backend
func (u *cmsUsecase) put(ctx context.Context, sessionID string, section *entity.CMSSection) (*dto.CMSSectionResponse, error) {
	release, err := u.guard.Acquire(service.ActionKey(sessionID, "cms", section.Name))
	if err != nil {
		return nil, err
	}
	err = u.cmsRepo.Put(ctx, section)
	release(err)
	if err != nil {
		u.log.Warnf("Failed to update CMS section %q: %+v", section.Name, err)
		return nil, err
	}

	return u.GetSection(ctx, section.Name)
}

func sectionToResponse(section *entity.CMSSection) (*dto.CMSSectionResponse, error) {
	if !entity.IsBannerSection(section.Name) {
		return &dto.CMSSectionResponse{
			Section:  section.Name,
			Kind:     dto.CMSKindHTML,
			Content:  section.Content,
			ImageURL: section.ImageURL,
		}, nil
	}

	banners := []entity.Banner{}
	if strings.TrimSpace(section.Content) != "" {
		if err := json.Unmarshal([]byte(section.Content), &banners); err != nil {
			return nil, ErrCorruptBannerList
		}
	}
	return &dto.CMSSectionResponse{
		Section: section.Name,
		Kind:    dto.CMSKindBanners,
		Banners: converter.BannersToResponses(banners),
	}, nil
}

package usecases

import (
	"context"
	"strings"

	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/domain/repositories"
	"homequote.backend/pkg/utils"
)

// AddonUsecase handles addon listing
type AddonUsecase struct {
	categoryRepo repositories.ServiceCategoryRepository
	addonRepo    repositories.AddonRepository
}

func NewAddonUsecase(categoryRepo repositories.ServiceCategoryRepository, addonRepo repositories.AddonRepository) *AddonUsecase {
	return &AddonUsecase{
		categoryRepo: categoryRepo,
		addonRepo:    addonRepo,
	}
}

// ListAddons returns the active addons of a category. With a partner id the
// partner's own addons come back alongside the global ones.
func (u *AddonUsecase) ListAddons(ctx context.Context, categorySlug, partnerID string) ([]*entities.Addon, error) {
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		return nil, domainerrors.BadRequest("categorySlug is required")
	}
	pid, err := utils.ParseOptionalUUID(partnerID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid partnerId")
	}

	category, err := u.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	addons, err := u.addonRepo.ListActive(ctx, category.ID, pid)
	if err != nil {
		return nil, err
	}
	if addons == nil {
		addons = []*entities.Addon{}
	}
	return addons, nil
}

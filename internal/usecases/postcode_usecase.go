package usecases

import (
	"context"
	"regexp"

	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
)

var ukPostcodePattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]? [0-9][A-Z]{2}$`)

// PostcodeUsecase validates and resolves customer postcodes
type PostcodeUsecase struct {
	lookup PostcodeLookupService
}

func NewPostcodeUsecase(lookup PostcodeLookupService) *PostcodeUsecase {
	return &PostcodeUsecase{lookup: lookup}
}

// Lookup normalizes raw and asks the postcode service about it.
func (u *PostcodeUsecase) Lookup(ctx context.Context, raw string) (*entities.PostcodeLookup, error) {
	postcode := NormalizePostcode(raw)
	if postcode == "" {
		return nil, domainerrors.BadRequest("postcode is required")
	}
	if !ukPostcodePattern.MatchString(postcode) {
		return nil, domainerrors.BadRequest("invalid postcode")
	}
	return u.lookup.Lookup(ctx, postcode)
}

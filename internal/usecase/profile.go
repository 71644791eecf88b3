package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/repository"
)

// ProfileUseCase reads and stores caller contact details.
type ProfileUseCase struct {
	profiles repository.ProfileRepository
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(profiles repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles}
}

// Get returns the profile of principal, nil when none is saved.
func (u *ProfileUseCase) Get(ctx context.Context, principal string) (*model.UserProfile, error) {
	profile, err := u.profiles.Get(ctx, principal)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return nil, nil
	}
	return profile, err
}

// Save validates and stores the profile of principal.
func (u *ProfileUseCase) Save(ctx context.Context, principal string, profile model.UserProfile) error {
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return err
	}
	return u.profiles.Save(ctx, principal, profile)
}

package repository

import (
	"context"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// ProfileRepository stores contact details per principal.
type ProfileRepository interface {
	Get(ctx context.Context, principal string) (*model.UserProfile, error)
	Save(ctx context.Context, principal string, profile model.UserProfile) error
}

package repository

import (
	"context"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// UserRepository describes persistence operations for customer accounts.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
}

package repository

import (
	"context"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// MenuRepository persists menu items.
type MenuRepository interface {
	Create(ctx context.Context, item model.MenuItem) error
	Get(ctx context.Context, id string) (*model.MenuItem, error)
	List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItem, error)
	Update(ctx context.Context, item model.MenuItem) error
	Delete(ctx context.Context, id string) error
}

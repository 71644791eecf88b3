package repository

import (
	"context"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores a new order with its lines. Returns ErrAlreadyExists on a duplicate id.
	Create(ctx context.Context, order model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	ListByOwner(ctx context.Context, owner string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	// CompareAndSetStatus moves the order to next only if its stored status is
	// still current. It reports whether a row was changed.
	CompareAndSetStatus(ctx context.Context, id string, current, next model.OrderStatus) (bool, error)
	Delete(ctx context.Context, id string) error
}

// Package gateway is the typed client of the storefront backend API.
package gateway

import (
	"context"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// Gateway exposes every backend operation used by the client core.
// Failures are domain sentinels: ErrNotFound, ErrForbidden,
// ErrUnauthenticated, ErrIllegalTransition, ErrAlreadyExists, the
// validation errors, and ErrUnavailable for transport or server faults.
type Gateway interface {
	Register(ctx context.Context, login, password string) (model.Credentials, error)
	Login(ctx context.Context, login, password string) (model.Credentials, error)
	CourierLogin(ctx context.Context, pin string) (model.Credentials, error)

	GetMenu(ctx context.Context) ([]model.MenuItem, error)
	GetMenuByCategory(ctx context.Context, category string) ([]model.MenuItem, error)
	GetAdminMenu(ctx context.Context) ([]model.MenuItem, error)
	AddMenuItem(ctx context.Context, input model.MenuItemInput) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, update model.MenuItemUpdate) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error)

	PlaceOrder(ctx context.Context, id string, lines []model.OrderLine) (*model.Order, error)
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByCustomer(ctx context.Context, principal string) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
	CancelOrder(ctx context.Context, id string) error
	DeleteOrder(ctx context.Context, id string) error

	// GetCallerUserProfile returns nil without error when no profile is saved.
	GetCallerUserProfile(ctx context.Context) (*model.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, profile model.UserProfile) error
}

// TokenSource supplies the bearer token for outgoing requests. An empty
// token sends the request anonymously.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

package handlers

import (
	"context"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (model.Credentials, error)
	Authenticate(ctx context.Context, login, password string) (model.Credentials, error)
	CourierLogin(ctx context.Context, pin string) (model.Credentials, error)
	ParseToken(token string) (model.Identity, error)
}

// MenuFacade covers the public menu and its staff management.
type MenuFacade interface {
	Menu(ctx context.Context, category string) ([]model.MenuItem, error)
	AdminMenu(ctx context.Context) ([]model.MenuItem, error)
	AddMenuItem(ctx context.Context, input model.MenuItemInput) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, update model.MenuItemUpdate) (*model.MenuItem, error)
	ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, caller model.Identity, id string, lines []model.OrderLine) (*model.Order, error)
	Order(ctx context.Context, caller model.Identity, id string) (*model.Order, error)
	CustomerOrders(ctx context.Context, caller model.Identity, principal string) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
	CancelOrder(ctx context.Context, id string) error
	DeleteOrder(ctx context.Context, id string) error
}

// ProfileFacade reads and stores caller profiles.
type ProfileFacade interface {
	Profile(ctx context.Context, principal string) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, principal string, profile model.UserProfile) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	MenuFacade
	OrderFacade
	ProfileFacade
}

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for authentication endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (model.Credentials, error)
	AuthenticateFn func(context.Context, string, string) (model.Credentials, error)
	CourierLoginFn func(context.Context, string) (model.Credentials, error)
	ParseFn        func(string) (model.Identity, error)
}

// Register delegates to provided function or returns customer credentials.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (model.Credentials, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return customerCredentials(login), nil
}

// Authenticate delegates to provided function or returns customer credentials.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (model.Credentials, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return customerCredentials(login), nil
}

// CourierLogin delegates to provided function or returns staff credentials.
func (s AuthFacadeStub) CourierLogin(ctx context.Context, pin string) (model.Credentials, error) {
	if s.CourierLoginFn != nil {
		return s.CourierLoginFn(ctx, pin)
	}
	identity := model.Identity{Principal: "courier", Role: model.RoleStaff}
	return model.Credentials{Token: string(identity.Role) + ":" + identity.Principal, Identity: identity}, nil
}

// ParseToken decodes stub tokens unless overridden.
func (s AuthFacadeStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return ParseStubToken(token)
}

func customerCredentials(login string) model.Credentials {
	identity := model.Identity{Principal: login, Role: model.RoleCustomer}
	return model.Credentials{Token: string(identity.Role) + ":" + login, Identity: identity}
}

// MenuFacadeStub simulates menu operations.
type MenuFacadeStub struct {
	MenuFn      func(context.Context, string) ([]model.MenuItem, error)
	AdminMenuFn func(context.Context) ([]model.MenuItem, error)
	AddFn       func(context.Context, model.MenuItemInput) (*model.MenuItem, error)
	UpdateFn    func(context.Context, string, model.MenuItemUpdate) (*model.MenuItem, error)
	ToggleFn    func(context.Context, string) (*model.MenuItem, error)
	DeleteFn    func(context.Context, string) error
}

// SampleMenuItem is returned by menu stubs without overrides.
var SampleMenuItem = model.MenuItem{
	ID:        "item-1",
	Name:      "Margherita",
	Category:  "Pizza",
	Price:     decimal.RequireFromString("8.50"),
	Available: true,
}

func (s MenuFacadeStub) Menu(ctx context.Context, category string) ([]model.MenuItem, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx, category)
	}
	return []model.MenuItem{SampleMenuItem}, nil
}

func (s MenuFacadeStub) AdminMenu(ctx context.Context) ([]model.MenuItem, error) {
	if s.AdminMenuFn != nil {
		return s.AdminMenuFn(ctx)
	}
	return []model.MenuItem{SampleMenuItem}, nil
}

func (s MenuFacadeStub) AddMenuItem(ctx context.Context, input model.MenuItemInput) (*model.MenuItem, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, input)
	}
	item := model.MenuItem{ID: "item-new", Name: input.Name, Description: input.Description, Category: input.Category, Price: input.Price, Available: true}
	return &item, nil
}

func (s MenuFacadeStub) UpdateMenuItem(ctx context.Context, id string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	item := update.Apply(SampleMenuItem)
	item.ID = id
	return &item, nil
}

func (s MenuFacadeStub) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	if s.ToggleFn != nil {
		return s.ToggleFn(ctx, id)
	}
	item := SampleMenuItem
	item.ID = id
	item.Available = !item.Available
	return &item, nil
}

func (s MenuFacadeStub) DeleteMenuItem(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// StatusCall stores information about status change invocations.
type StatusCall struct {
	OrderID string
	Status  model.OrderStatus
}

// OrderFacadeStub provides controllable behaviour for order endpoints and
// records status changes.
type OrderFacadeStub struct {
	PlaceFn          func(context.Context, model.Identity, string, []model.OrderLine) (*model.Order, error)
	OrderFn          func(context.Context, model.Identity, string) (*model.Order, error)
	CustomerOrdersFn func(context.Context, model.Identity, string) ([]model.Order, error)
	AllOrdersFn      func(context.Context) ([]model.Order, error)
	UpdateStatusFn   func(context.Context, string, model.OrderStatus) error
	CancelFn         func(context.Context, string) error
	DeleteFn         func(context.Context, string) error

	mu      sync.Mutex
	Updates []StatusCall
}

func (s *OrderFacadeStub) PlaceOrder(ctx context.Context, caller model.Identity, id string, lines []model.OrderLine) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, caller, id, lines)
	}
	order := model.Order{
		ID:        id,
		Owner:     caller.Principal,
		Lines:     lines,
		Total:     model.LinesTotal(lines),
		Status:    model.OrderStatusPending,
		CreatedAt: time.Unix(1700000000, 0).UTC(),
	}
	return &order, nil
}

func (s *OrderFacadeStub) Order(ctx context.Context, caller model.Identity, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, caller, id)
	}
	order := model.Order{ID: id, Owner: caller.Principal, Status: model.OrderStatusPending}
	return &order, nil
}

func (s *OrderFacadeStub) CustomerOrders(ctx context.Context, caller model.Identity, principal string) ([]model.Order, error) {
	if s.CustomerOrdersFn != nil {
		return s.CustomerOrdersFn(ctx, caller, principal)
	}
	return []model.Order{{ID: "order-1", Owner: principal, Status: model.OrderStatusPending}}, nil
}

func (s *OrderFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{ID: "order-1", Owner: "alice", Status: model.OrderStatusPending}}, nil
}

func (s *OrderFacadeStub) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	s.record(id, status)
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

func (s *OrderFacadeStub) CancelOrder(ctx context.Context, id string) error {
	s.record(id, model.OrderStatusCancelled)
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	return nil
}

func (s *OrderFacadeStub) DeleteOrder(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s *OrderFacadeStub) record(id string, status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, StatusCall{OrderID: id, Status: status})
}

// ProfileFacadeStub simulates profile operations.
type ProfileFacadeStub struct {
	ProfileFn func(context.Context, string) (*model.UserProfile, error)
	SaveFn    func(context.Context, string, model.UserProfile) error
}

func (s ProfileFacadeStub) Profile(ctx context.Context, principal string) (*model.UserProfile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, principal)
	}
	return nil, nil
}

func (s ProfileFacadeStub) SaveProfile(ctx context.Context, principal string, profile model.UserProfile) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, principal, profile)
	}
	return nil
}

// StorefrontFacadeStub aggregates every facade stub used by the router.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	MenuFacadeStub
	*OrderFacadeStub
	ProfileFacadeStub
}

// NewStorefrontFacadeStub returns an aggregate with default behaviour.
func NewStorefrontFacadeStub() *StorefrontFacadeStub {
	return &StorefrontFacadeStub{OrderFacadeStub: &OrderFacadeStub{}}
}

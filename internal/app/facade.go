package app

import (
	"context"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/usecase"
)

// StorefrontFacade exposes the use cases to the HTTP layer.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	menu     *usecase.MenuUseCase
	orders   *usecase.OrderUseCase
	profiles *usecase.ProfileUseCase
}

func NewStorefrontFacade(auth *usecase.AuthUseCase, menu *usecase.MenuUseCase, orders *usecase.OrderUseCase, profiles *usecase.ProfileUseCase) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, menu: menu, orders: orders, profiles: profiles}
}

func (f *StorefrontFacade) Register(ctx context.Context, login, password string) (model.Credentials, error) {
	return f.auth.Register(ctx, login, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, login, password string) (model.Credentials, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *StorefrontFacade) CourierLogin(ctx context.Context, pin string) (model.Credentials, error) {
	return f.auth.CourierLogin(ctx, pin)
}

func (f *StorefrontFacade) ParseToken(token string) (model.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Menu(ctx context.Context, category string) ([]model.MenuItem, error) {
	return f.menu.Available(ctx, category)
}

func (f *StorefrontFacade) AdminMenu(ctx context.Context) ([]model.MenuItem, error) {
	return f.menu.All(ctx)
}

func (f *StorefrontFacade) AddMenuItem(ctx context.Context, input model.MenuItemInput) (*model.MenuItem, error) {
	return f.menu.Add(ctx, input)
}

func (f *StorefrontFacade) UpdateMenuItem(ctx context.Context, id string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	return f.menu.Update(ctx, id, update)
}

func (f *StorefrontFacade) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	return f.menu.ToggleAvailability(ctx, id)
}

func (f *StorefrontFacade) DeleteMenuItem(ctx context.Context, id string) error {
	return f.menu.Delete(ctx, id)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, caller model.Identity, id string, lines []model.OrderLine) (*model.Order, error) {
	return f.orders.Place(ctx, caller, id, lines)
}

func (f *StorefrontFacade) Order(ctx context.Context, caller model.Identity, id string) (*model.Order, error) {
	return f.orders.Get(ctx, caller, id)
}

func (f *StorefrontFacade) CustomerOrders(ctx context.Context, caller model.Identity, principal string) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, caller, principal)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *StorefrontFacade) CancelOrder(ctx context.Context, id string) error {
	return f.orders.Cancel(ctx, id)
}

func (f *StorefrontFacade) DeleteOrder(ctx context.Context, id string) error {
	return f.orders.Delete(ctx, id)
}

func (f *StorefrontFacade) Profile(ctx context.Context, principal string) (*model.UserProfile, error) {
	return f.profiles.Get(ctx, principal)
}

func (f *StorefrontFacade) SaveProfile(ctx context.Context, principal string, profile model.UserProfile) error {
	return f.profiles.Save(ctx, principal, profile)
}

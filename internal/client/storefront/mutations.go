package storefront

import (
	"context"

	"github.com/caffeinepub/food-order-delivery-platform/internal/client/querycache"
	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/lifecycle"
)

// Register creates a customer account and signs the session in.
func (c *Client) Register(ctx context.Context, login, password string) error {
	creds, err := c.gateway.Register(ctx, login, password)
	if err != nil {
		return err
	}
	c.signIn(ctx, creds)
	return nil
}

// Login signs a customer in.
func (c *Client) Login(ctx context.Context, login, password string) error {
	creds, err := c.gateway.Login(ctx, login, password)
	if err != nil {
		return err
	}
	c.signIn(ctx, creds)
	return nil
}

// GrantCourierAccess exchanges the courier PIN for staff credentials.
func (c *Client) GrantCourierAccess(ctx context.Context, pin string) error {
	creds, err := c.gateway.CourierLogin(ctx, pin)
	if err != nil {
		return err
	}
	c.signIn(ctx, creds)
	return nil
}

// Logout drops the session credentials and the caller-scoped cache entries.
func (c *Client) Logout(ctx context.Context) {
	c.session.Clear(ctx)
	c.invalidate(ctx, nil, ResourceProfile, ResourceCustomerOrders)
}

func (c *Client) signIn(ctx context.Context, creds model.Credentials) {
	c.session.Set(ctx, creds)
	c.invalidate(ctx, nil, ResourceProfile, ResourceCustomerOrders)
}

// AddMenuItem creates a menu item.
func (c *Client) AddMenuItem(ctx context.Context, input model.MenuItemInput) (*model.MenuItem, error) {
	item, err := c.gateway.AddMenuItem(ctx, input)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, nil, menuResources...)
	return item, nil
}

// UpdateMenuItem applies a partial update to a menu item.
func (c *Client) UpdateMenuItem(ctx context.Context, id string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	item, err := c.gateway.UpdateMenuItem(ctx, id, update)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, nil, menuResources...)
	return item, nil
}

// ToggleAvailability flips the availability of a menu item.
func (c *Client) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	item, err := c.gateway.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, nil, menuResources...)
	return item, nil
}

// DeleteMenuItem removes a menu item.
func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	if err := c.gateway.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, nil, menuResources...)
	return nil
}

// PlaceOrder submits an order and invalidates every order list.
func (c *Client) PlaceOrder(ctx context.Context, id string, lines []model.OrderLine) (*model.Order, error) {
	order, err := c.gateway.PlaceOrder(ctx, id, lines)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, nil, ResourceAllOrders, ResourceCustomerOrders)
	return order, nil
}

// UpdateOrderStatus asks the backend to move an order to status. The backend
// decides legality against the stored status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	if !lifecycle.Known(status) {
		return domainErrors.ErrUnknownStatus
	}
	if err := c.gateway.UpdateOrderStatus(ctx, id, status); err != nil {
		return err
	}
	c.invalidateOrder(ctx, id)
	return nil
}

// AdvanceOrder moves order one step forward along the delivery path.
func (c *Client) AdvanceOrder(ctx context.Context, order model.Order) (model.OrderStatus, error) {
	action, ok := lifecycle.NextAction(order.Status)
	if !ok {
		return order.Status, domainErrors.ErrIllegalTransition
	}
	if err := c.UpdateOrderStatus(ctx, order.ID, action.Target); err != nil {
		return order.Status, err
	}
	return action.Target, nil
}

// CancelOrder cancels a non-terminal order.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	if err := c.gateway.CancelOrder(ctx, id); err != nil {
		return err
	}
	c.invalidateOrder(ctx, id)
	return nil
}

// DeleteOrder permanently removes an order.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	if err := c.gateway.DeleteOrder(ctx, id); err != nil {
		return err
	}
	c.invalidateOrder(ctx, id)
	return nil
}

// SaveProfile validates and stores the caller profile.
func (c *Client) SaveProfile(ctx context.Context, profile model.UserProfile) error {
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return err
	}
	if err := c.gateway.SaveCallerUserProfile(ctx, profile); err != nil {
		return err
	}
	c.invalidate(ctx, nil, ResourceProfile)
	return nil
}

// PatchOrderStatus shows status on the cached order detail until the next
// fetch replaces it.
func (c *Client) PatchOrderStatus(id string, status model.OrderStatus) bool {
	return querycache.Patch(c.cache, querycache.Key{Resource: ResourceOrder, Arg: id}, func(o *model.Order) *model.Order {
		if o == nil {
			return nil
		}
		patched := *o
		patched.Status = status
		return &patched
	})
}

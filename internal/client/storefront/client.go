// Package storefront binds the gateway to the query cache: it defines the
// cached queries, runs mutations, and invalidates what each mutation affects.
package storefront

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/caffeinepub/food-order-delivery-platform/internal/client/gateway"
	"github.com/caffeinepub/food-order-delivery-platform/internal/client/querycache"
	"github.com/caffeinepub/food-order-delivery-platform/internal/client/session"
	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// Cached resources.
const (
	ResourceMenu           = "menu"
	ResourceMenuCategory   = "menu/category"
	ResourceAdminMenu      = "admin-menu"
	ResourceAllOrders      = "orders/all"
	ResourceCustomerOrders = "orders/customer"
	ResourceOrder          = "orders/id"
	ResourceProfile        = "profile/me"
)

// Policies holds the refresh policy of every query family.
type Policies struct {
	Menu        querycache.Policy
	AdminMenu   querycache.Policy
	OrderList   querycache.Policy
	OrderDetail querycache.Policy
	Profile     querycache.Policy
}

// DefaultPolicies returns the storefront refresh policies. Order detail polls
// fastest because it backs the live status stepper.
func DefaultPolicies() Policies {
	return Policies{
		Menu:        querycache.Policy{StaleTime: 30 * time.Second},
		AdminMenu:   querycache.Policy{},
		OrderList:   querycache.Policy{RefetchInterval: 15 * time.Second},
		OrderDetail: querycache.Policy{RefetchInterval: 8 * time.Second},
		Profile:     querycache.Policy{StaleTime: 5 * time.Minute},
	}
}

// Option configures a Client.
type Option func(*Client)

// WithPolicies overrides the default refresh policies.
func WithPolicies(p Policies) Option {
	return func(c *Client) { c.policies = p }
}

// Client is the storefront data layer shared by customer and courier views.
type Client struct {
	gateway  gateway.Gateway
	cache    *querycache.Cache
	session  *session.Manager
	policies Policies
	logger   *slog.Logger
}

// New constructs a storefront client.
func New(gw gateway.Gateway, cache *querycache.Cache, sess *session.Manager, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		gateway:  gw,
		cache:    cache,
		session:  sess,
		policies: DefaultPolicies(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache exposes the underlying query cache.
func (c *Client) Cache() *querycache.Cache { return c.cache }

// Session exposes the session manager.
func (c *Client) Session() *session.Manager { return c.session }

// MenuQuery lists the items customers may order.
func (c *Client) MenuQuery() querycache.Query[[]model.MenuItem] {
	return querycache.Query[[]model.MenuItem]{
		Key:    querycache.Key{Resource: ResourceMenu},
		Policy: c.policies.Menu,
		Fetch: func(ctx context.Context) ([]model.MenuItem, error) {
			items, err := c.gateway.GetMenu(ctx)
			if err != nil {
				return nil, err
			}
			return availableOnly(items), nil
		},
	}
}

// MenuByCategoryQuery lists the available items of one category.
func (c *Client) MenuByCategoryQuery(category string) querycache.Query[[]model.MenuItem] {
	return querycache.Query[[]model.MenuItem]{
		Key:    querycache.Key{Resource: ResourceMenuCategory, Arg: category},
		Policy: c.policies.Menu,
		Fetch: func(ctx context.Context) ([]model.MenuItem, error) {
			items, err := c.gateway.GetMenuByCategory(ctx, category)
			if err != nil {
				return nil, err
			}
			return availableOnly(items), nil
		},
	}
}

// AdminMenuQuery lists every item including unavailable ones.
func (c *Client) AdminMenuQuery() querycache.Query[[]model.MenuItem] {
	return querycache.Query[[]model.MenuItem]{
		Key:    querycache.Key{Resource: ResourceAdminMenu},
		Policy: c.policies.AdminMenu,
		Fetch:  c.gateway.GetAdminMenu,
	}
}

// AllOrdersQuery lists every order for the courier dashboard.
func (c *Client) AllOrdersQuery() querycache.Query[[]model.Order] {
	return querycache.Query[[]model.Order]{
		Key:    querycache.Key{Resource: ResourceAllOrders},
		Policy: c.policies.OrderList,
		Fetch:  c.gateway.GetAllOrders,
	}
}

// MyOrdersQuery lists the orders of the signed-in customer.
func (c *Client) MyOrdersQuery() (querycache.Query[[]model.Order], error) {
	id, ok := c.session.Identity()
	if !ok {
		return querycache.Query[[]model.Order]{}, domainErrors.ErrUnauthenticated
	}
	principal := id.Principal
	return querycache.Query[[]model.Order]{
		Key:    querycache.Key{Resource: ResourceCustomerOrders, Arg: principal},
		Policy: c.policies.OrderList,
		Fetch: func(ctx context.Context) ([]model.Order, error) {
			return c.gateway.GetOrdersByCustomer(ctx, principal)
		},
	}, nil
}

// OrderQuery loads a single order. A missing order yields nil data.
func (c *Client) OrderQuery(id string) querycache.Query[*model.Order] {
	return querycache.Query[*model.Order]{
		Key:    querycache.Key{Resource: ResourceOrder, Arg: id},
		Policy: c.policies.OrderDetail,
		Fetch: func(ctx context.Context) (*model.Order, error) {
			order, err := c.gateway.GetOrderByID(ctx, id)
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, nil
			}
			return order, err
		},
	}
}

// ProfileQuery loads the profile of the signed-in caller, nil when none.
func (c *Client) ProfileQuery() querycache.Query[*model.UserProfile] {
	var principal string
	if id, ok := c.session.Identity(); ok {
		principal = id.Principal
	}
	return querycache.Query[*model.UserProfile]{
		Key:    querycache.Key{Resource: ResourceProfile, Arg: principal},
		Policy: c.policies.Profile,
		Fetch:  c.gateway.GetCallerUserProfile,
	}
}

// Menu reads the customer menu.
func (c *Client) Menu(ctx context.Context) ([]model.MenuItem, error) {
	return querycache.Read(ctx, c.cache, c.MenuQuery())
}

// MenuByCategory reads the available items of category.
func (c *Client) MenuByCategory(ctx context.Context, category string) ([]model.MenuItem, error) {
	return querycache.Read(ctx, c.cache, c.MenuByCategoryQuery(category))
}

// AdminMenu reads the full menu.
func (c *Client) AdminMenu(ctx context.Context) ([]model.MenuItem, error) {
	return querycache.Read(ctx, c.cache, c.AdminMenuQuery())
}

// AllOrders reads every order.
func (c *Client) AllOrders(ctx context.Context) ([]model.Order, error) {
	return querycache.Read(ctx, c.cache, c.AllOrdersQuery())
}

// MyOrders reads the orders of the signed-in customer.
func (c *Client) MyOrders(ctx context.Context) ([]model.Order, error) {
	q, err := c.MyOrdersQuery()
	if err != nil {
		return nil, err
	}
	return querycache.Read(ctx, c.cache, q)
}

// Order reads one order, nil when it does not exist.
func (c *Client) Order(ctx context.Context, id string) (*model.Order, error) {
	return querycache.Read(ctx, c.cache, c.OrderQuery(id))
}

// Profile reads the caller profile, nil when none is saved.
func (c *Client) Profile(ctx context.Context) (*model.UserProfile, error) {
	if _, ok := c.session.Identity(); !ok {
		return nil, domainErrors.ErrUnauthenticated
	}
	return querycache.Read(ctx, c.cache, c.ProfileQuery())
}

// WatchAllOrders observes the full order list while the subscription is open.
func (c *Client) WatchAllOrders() *querycache.Subscription {
	return querycache.Observe(c.cache, c.AllOrdersQuery())
}

// WatchMyOrders observes the orders of the signed-in customer.
func (c *Client) WatchMyOrders() (*querycache.Subscription, error) {
	q, err := c.MyOrdersQuery()
	if err != nil {
		return nil, err
	}
	return querycache.Observe(c.cache, q), nil
}

// WatchOrder observes a single order.
func (c *Client) WatchOrder(id string) *querycache.Subscription {
	return querycache.Observe(c.cache, c.OrderQuery(id))
}

// WatchMenu observes the customer menu.
func (c *Client) WatchMenu() *querycache.Subscription {
	return querycache.Observe(c.cache, c.MenuQuery())
}

func availableOnly(items []model.MenuItem) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Available {
			out = append(out, item)
		}
	}
	return out
}

// invalidate refreshes affected queries after a successful mutation. Refetch
// failures leave the entries stale and are only logged: the mutation itself
// succeeded.
func (c *Client) invalidate(ctx context.Context, keys []querycache.Key, resources ...string) {
	if len(resources) > 0 {
		if err := c.cache.InvalidateResource(ctx, resources...); err != nil {
			c.logger.Warn("refetch after mutation failed", slog.Any("resources", resources), slog.String("error", err.Error()))
		}
	}
	if len(keys) > 0 {
		if err := c.cache.Invalidate(ctx, keys...); err != nil {
			c.logger.Warn("refetch after mutation failed", slog.Int("keys", len(keys)), slog.String("error", err.Error()))
		}
	}
}

var menuResources = []string{ResourceMenu, ResourceMenuCategory, ResourceAdminMenu}

func (c *Client) invalidateOrder(ctx context.Context, id string) {
	c.invalidate(ctx, []querycache.Key{{Resource: ResourceOrder, Arg: id}}, ResourceAllOrders, ResourceCustomerOrders)
}

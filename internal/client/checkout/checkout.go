// Package checkout turns the cart into a placed order.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caffeinepub/food-order-delivery-platform/internal/client/cart"
	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// LoginFlow starts interactive sign-in when checkout needs an identity.
type LoginFlow interface {
	RequestLogin(ctx context.Context)
}

// LoginFunc adapts a function to LoginFlow.
type LoginFunc func(ctx context.Context)

func (f LoginFunc) RequestLogin(ctx context.Context) { f(ctx) }

// Identities reports the signed-in identity.
type Identities interface {
	Identity() (model.Identity, bool)
}

// Orders is the storefront surface used by checkout.
type Orders interface {
	PlaceOrder(ctx context.Context, id string, lines []model.OrderLine) (*model.Order, error)
	Profile(ctx context.Context) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, profile model.UserProfile) error
}

// Confirmation summarises a placed order.
type Confirmation struct {
	OrderID   string
	Total     decimal.Decimal
	ItemCount int
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator replaces the order id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// Service assembles orders from the cart.
type Service struct {
	cart     *cart.Store
	orders   Orders
	sessions Identities
	login    LoginFlow
	newID    func() string
	logger   *slog.Logger
}

// New constructs a checkout service. login may be nil.
func New(store *cart.Store, orders Orders, sessions Identities, login LoginFlow, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		cart:     store,
		orders:   orders,
		sessions: sessions,
		login:    login,
		newID:    func() string { return NewOrderID(time.Now()) },
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOrderID returns an id of the form order_<unix millis>_<32 hex chars>.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("order_%d_%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Checkout places the cart as an order for the signed-in identity. The cart
// is cleared only after the backend accepts the order; a failed placement is
// returned as is and never retried.
func (s *Service) Checkout(ctx context.Context, contact model.UserProfile) (*Confirmation, error) {
	if _, ok := s.sessions.Identity(); !ok {
		if s.login != nil {
			s.login.RequestLogin(ctx)
		}
		return nil, domainErrors.ErrUnauthenticated
	}
	if s.cart.IsEmpty() {
		return nil, domainErrors.ErrEmptyCart
	}
	contact = contact.Normalize()
	if err := contact.Validate(); err != nil {
		return nil, err
	}

	cartLines := s.cart.Lines()
	lines := make([]model.OrderLine, len(cartLines))
	for i, l := range cartLines {
		lines[i] = l.OrderLine()
	}
	total := model.LinesTotal(lines)
	itemCount := s.cart.ItemCount()

	s.saveContact(ctx, contact)

	id := s.newID()
	order, err := s.orders.PlaceOrder(ctx, id, lines)
	if err != nil {
		s.logger.Error("place order failed", slog.String("order", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("place order: %w", err)
	}
	if order != nil && order.ID != "" {
		id = order.ID
		total = order.Total
	}

	s.cart.Clear(ctx)
	s.logger.Info("order placed", slog.String("order", id), slog.String("total", total.StringFixed(2)))
	return &Confirmation{OrderID: id, Total: total, ItemCount: itemCount}, nil
}

// saveContact stores contact on the caller profile when it changed. Failures
// do not block checkout.
func (s *Service) saveContact(ctx context.Context, contact model.UserProfile) {
	current, err := s.orders.Profile(ctx)
	if err != nil {
		s.logger.Warn("load profile failed", slog.String("error", err.Error()))
	}
	if current != nil && current.Normalize() == contact {
		return
	}
	if err := s.orders.SaveProfile(ctx, contact); err != nil {
		s.logger.Warn("save profile failed", slog.String("error", err.Error()))
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/repository"
	"github.com/caffeinepub/food-order-delivery-platform/internal/lifecycle"
)

// EventPublisher delivers committed order events to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event model.OrderEvent) error
}

// OrderOption configures OrderUseCase.
type OrderOption func(*OrderUseCase)

// WithOrderClock overrides the placement clock.
func WithOrderClock(now func() time.Time) OrderOption {
	return func(u *OrderUseCase) { u.now = now }
}

// OrderUseCase encapsulates order lifecycle logic. The stored status is the
// single source of truth and every transition is checked against it.
type OrderUseCase struct {
	orders repository.OrderRepository
	events EventPublisher
	logger *slog.Logger
	now    func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, events EventPublisher, logger *slog.Logger, opts ...OrderOption) *OrderUseCase {
	u := &OrderUseCase{orders: orders, events: events, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Place stores a new pending order owned by caller. The total is computed
// here from the submitted lines.
func (u *OrderUseCase) Place(ctx context.Context, caller model.Identity, id string, lines []model.OrderLine) (*model.Order, error) {
	if caller.Principal == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	if !ValidateOrderID(id) {
		return nil, fmt.Errorf("%w: bad order id", domainErrors.ErrInvalidOrder)
	}
	if err := ValidateOrderLines(lines); err != nil {
		return nil, err
	}

	order := model.Order{
		ID:        id,
		Owner:     caller.Principal,
		Lines:     append([]model.OrderLine(nil), lines...),
		Total:     model.LinesTotal(lines),
		Status:    model.OrderStatusPending,
		CreatedAt: u.now().UTC(),
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	u.publish(ctx, model.OrderEvent{
		Type:    model.OrderEventPlaced,
		OrderID: order.ID,
		Owner:   order.Owner,
		Status:  order.Status,
	})
	return &order, nil
}

// Get returns an order visible to caller: its owner or staff.
func (u *OrderUseCase) Get(ctx context.Context, caller model.Identity, id string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Owner != caller.Principal && !caller.IsStaff() {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByCustomer returns the orders of principal, newest first.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, caller model.Identity, principal string) ([]model.Order, error) {
	if principal != caller.Principal && !caller.IsStaff() {
		return nil, domainErrors.ErrForbidden
	}
	return u.orders.ListByOwner(ctx, principal)
}

// ListAll returns every order, newest first.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// UpdateStatus moves an order to next if the lifecycle allows it from the
// stored status. A concurrent change between read and write is reported as an
// illegal transition.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, next model.OrderStatus) error {
	if !lifecycle.Known(next) {
		return fmt.Errorf("%w: %q", domainErrors.ErrUnknownStatus, next)
	}
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := lifecycle.Validate(order.Status, next); err != nil {
		return err
	}

	changed, err := u.orders.CompareAndSetStatus(ctx, id, order.Status, next)
	if err != nil {
		return err
	}
	if !changed {
		if _, err := u.orders.Get(ctx, id); errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrNotFound
		}
		return fmt.Errorf("%w: order %s changed concurrently", domainErrors.ErrIllegalTransition, id)
	}

	u.publish(ctx, model.OrderEvent{
		Type:     model.OrderEventStatusChanged,
		OrderID:  id,
		Owner:    order.Owner,
		Status:   next,
		Previous: order.Status,
	})
	return nil
}

// Cancel cancels a non-terminal order.
func (u *OrderUseCase) Cancel(ctx context.Context, id string) error {
	return u.UpdateStatus(ctx, id, model.OrderStatusCancelled)
}

// Delete permanently removes an order in any status.
func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := u.orders.Delete(ctx, id); err != nil {
		return err
	}
	u.publish(ctx, model.OrderEvent{
		Type:     model.OrderEventDeleted,
		OrderID:  id,
		Owner:    order.Owner,
		Previous: order.Status,
	})
	return nil
}

// publish is best effort: the change is already committed.
func (u *OrderUseCase) publish(ctx context.Context, event model.OrderEvent) {
	if u.events == nil {
		return
	}
	event.OccurredAt = u.now().UTC()
	if err := u.events.Publish(ctx, event); err != nil {
		u.logger.Warn("publish order event failed",
			slog.String("order", event.OrderID),
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()),
		)
	}
}

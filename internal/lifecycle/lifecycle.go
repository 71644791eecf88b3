// Package lifecycle holds the order status state machine shared by the
// backend, which enforces it, and the clients, which render legal actions.
package lifecycle

import (
	"fmt"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// Forward lists the non-cancelled statuses in delivery order.
var Forward = []model.OrderStatus{
	model.OrderStatusPending,
	model.OrderStatusAccepted,
	model.OrderStatusPreparing,
	model.OrderStatusOutForDelivery,
	model.OrderStatusDelivered,
}

// allowedTransitions maps a status to the statuses it may move to.
var allowedTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:        {model.OrderStatusAccepted, model.OrderStatusCancelled},
	model.OrderStatusAccepted:       {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing:      {model.OrderStatusOutForDelivery, model.OrderStatusCancelled},
	model.OrderStatusOutForDelivery: {model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusDelivered:      nil,
	model.OrderStatusCancelled:      nil,
}

var labels = map[model.OrderStatus]string{
	model.OrderStatusPending:        "Pending",
	model.OrderStatusAccepted:       "Accepted",
	model.OrderStatusPreparing:      "Preparing",
	model.OrderStatusOutForDelivery: "Out for Delivery",
	model.OrderStatusDelivered:      "Delivered",
	model.OrderStatusCancelled:      "Cancelled",
}

// Action is the courier-facing command that advances an order one step.
type Action struct {
	Label  string
	Target model.OrderStatus
}

var nextActions = map[model.OrderStatus]Action{
	model.OrderStatusPending:        {Label: "Accept Order", Target: model.OrderStatusAccepted},
	model.OrderStatusAccepted:       {Label: "Start Preparing", Target: model.OrderStatusPreparing},
	model.OrderStatusPreparing:      {Label: "Out for Delivery", Target: model.OrderStatusOutForDelivery},
	model.OrderStatusOutForDelivery: {Label: "Mark Delivered", Target: model.OrderStatusDelivered},
}

// ParseStatus converts a wire value to a known status.
func ParseStatus(s string) (model.OrderStatus, error) {
	status := model.OrderStatus(s)
	if !Known(status) {
		return "", fmt.Errorf("%w: %q", domainErrors.ErrUnknownStatus, s)
	}
	return status, nil
}

// Known reports whether status is part of the lifecycle.
func Known(status model.OrderStatus) bool {
	_, ok := allowedTransitions[status]
	return ok
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(status model.OrderStatus) bool {
	return status == model.OrderStatusDelivered || status == model.OrderStatusCancelled
}

// IsActive reports whether the order is being worked on: accepted but not yet delivered.
func IsActive(status model.OrderStatus) bool {
	switch status {
	case model.OrderStatusAccepted, model.OrderStatusPreparing, model.OrderStatusOutForDelivery:
		return true
	}
	return false
}

// Next returns the forward successor of status, if any.
func Next(status model.OrderStatus) (model.OrderStatus, bool) {
	a, ok := nextActions[status]
	return a.Target, ok
}

// NextAction returns the courier action advancing status one step.
func NextAction(status model.OrderStatus) (Action, bool) {
	a, ok := nextActions[status]
	return a, ok
}

// CanCancel reports whether an order in status may still be cancelled.
func CanCancel(status model.OrderStatus) bool {
	return Known(status) && !IsTerminal(status)
}

// CanTransition reports whether from may move directly to to.
func CanTransition(from, to model.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Validate returns ErrUnknownStatus or ErrIllegalTransition when from cannot move to to.
func Validate(from, to model.OrderStatus) error {
	if !Known(from) {
		return fmt.Errorf("%w: %q", domainErrors.ErrUnknownStatus, from)
	}
	if !Known(to) {
		return fmt.Errorf("%w: %q", domainErrors.ErrUnknownStatus, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s to %s", domainErrors.ErrIllegalTransition, from, to)
	}
	return nil
}

// Label returns the human readable name of status.
func Label(status model.OrderStatus) string {
	if l, ok := labels[status]; ok {
		return l
	}
	return string(status)
}

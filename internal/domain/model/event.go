package model

import "time"

// OrderEventType names an order lifecycle event.
type OrderEventType string

const (
	OrderEventPlaced        OrderEventType = "placed"
	OrderEventStatusChanged OrderEventType = "status_changed"
	OrderEventDeleted       OrderEventType = "deleted"
)

// OrderEvent is emitted after an order change has been committed.
type OrderEvent struct {
	Type       OrderEventType `json:"type"`
	OrderID    string         `json:"order_id"`
	Owner      string         `json:"owner"`
	Status     OrderStatus    `json:"status,omitempty"`
	Previous   OrderStatus    `json:"previous,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

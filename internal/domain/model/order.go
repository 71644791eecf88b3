package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes where an order is in its delivery lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderLine is an immutable line of a placed order.
type OrderLine struct {
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns UnitPrice multiplied by Quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the canonical order record shared by customer and courier views.
// Only Status changes after placement.
type Order struct {
	ID        string
	Owner     string
	Lines     []OrderLine
	Total     decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
}

// ItemCount sums quantities over all lines.
func (o Order) ItemCount() int {
	var n int
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// LinesTotal sums the subtotals of lines.
func LinesTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// OrderLine is the wire form of an order line.
type OrderLine struct {
	ItemName string          `json:"itemName"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// PlaceOrderRequest is the body of POST /api/orders.
type PlaceOrderRequest struct {
	OrderID string      `json:"orderId"`
	Items   []OrderLine `json:"items"`
}

// Order is the wire form of an order. Timestamp is in Unix nanoseconds.
type Order struct {
	OrderID    string          `json:"orderId"`
	CustomerID string          `json:"customerId"`
	Items      []OrderLine     `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
	Timestamp  int64           `json:"timestamp"`
}

// StatusUpdateRequest is the body of a status change.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

func FromOrderLines(lines []model.OrderLine) []OrderLine {
	out := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, OrderLine{ItemName: l.ItemName, Quantity: l.Quantity, Price: l.UnitPrice})
	}
	return out
}

func OrderLinesModel(lines []OrderLine) []model.OrderLine {
	out := make([]model.OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, model.OrderLine{ItemName: l.ItemName, Quantity: l.Quantity, UnitPrice: l.Price})
	}
	return out
}

func FromOrder(o model.Order) Order {
	return Order{
		OrderID:    o.ID,
		CustomerID: o.Owner,
		Items:      FromOrderLines(o.Lines),
		TotalPrice: o.Total,
		Status:     string(o.Status),
		Timestamp:  o.CreatedAt.UnixNano(),
	}
}

func FromOrders(orders []model.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

func (o Order) Model() model.Order {
	return model.Order{
		ID:        o.OrderID,
		Owner:     o.CustomerID,
		Lines:     OrderLinesModel(o.Items),
		Total:     o.TotalPrice,
		Status:    model.OrderStatus(o.Status),
		CreatedAt: time.Unix(0, o.Timestamp),
	}
}

func OrdersModel(orders []Order) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Model())
	}
	return out
}

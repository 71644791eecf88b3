package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// StepState places a stepper step relative to the current status.
type StepState int

const (
	StepUpcoming StepState = iota
	StepCompleted
	StepCurrent
)

// Step is one stage of the customer progress stepper.
type Step struct {
	Status      model.OrderStatus
	Label       string
	Description string
	State       StepState
}

var steps = []struct {
	status      model.OrderStatus
	label       string
	description string
}{
	{model.OrderStatusPending, "Order Placed", "Your order has been received"},
	{model.OrderStatusAccepted, "Accepted", "Restaurant accepted your order"},
	{model.OrderStatusPreparing, "Preparing", "Your food is being prepared"},
	{model.OrderStatusOutForDelivery, "Out for Delivery", "Your order is on the way"},
	{model.OrderStatusDelivered, "Delivered", "Enjoy your meal!"},
}

// CustomerView is the projection shown to the order owner.
type CustomerView struct {
	OrderID   string
	Status    model.OrderStatus
	Label     string
	Cancelled bool
	Steps     []Step
	// Progress is the completed fraction of the stepper, 0 when cancelled or unknown.
	Progress float64
	Lines    []model.OrderLine
	Total    decimal.Decimal
	PlacedAt time.Time
}

// ForCustomer projects order into the customer stepper view.
func ForCustomer(order model.Order) CustomerView {
	cancelled := order.Status == model.OrderStatusCancelled
	// current stays -1 for cancelled and unknown statuses: every step is upcoming.
	current := -1
	for i, s := range steps {
		if s.status == order.Status {
			current = i
			break
		}
	}

	view := CustomerView{
		OrderID:   order.ID,
		Status:    order.Status,
		Label:     Label(order.Status),
		Cancelled: cancelled,
		Steps:     make([]Step, len(steps)),
		Lines:     order.Lines,
		Total:     order.Total,
		PlacedAt:  order.CreatedAt,
	}
	for i, s := range steps {
		state := StepUpcoming
		switch {
		case current < 0:
		case i < current:
			state = StepCompleted
		case i == current:
			state = StepCurrent
		}
		view.Steps[i] = Step{Status: s.status, Label: s.label, Description: s.description, State: state}
	}
	if current >= 0 {
		view.Progress = float64(current) / float64(len(steps)-1)
	}
	return view
}

// CourierView is the projection shown on the staff dashboard.
type CourierView struct {
	OrderID   string
	ShortID   string
	Owner     string
	Status    model.OrderStatus
	Label     string
	Next      *Action
	CanCancel bool
	Lines     []model.OrderLine
	ItemCount int
	Total     decimal.Decimal
	PlacedAt  time.Time
}

const shortIDLength = 8

// ShortID returns the trailing characters of id used on courier cards.
func ShortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[len(id)-shortIDLength:]
}

// ForCourier projects order into the courier card view.
func ForCourier(order model.Order) CourierView {
	view := CourierView{
		OrderID:   order.ID,
		ShortID:   ShortID(order.ID),
		Owner:     order.Owner,
		Status:    order.Status,
		Label:     Label(order.Status),
		CanCancel: CanCancel(order.Status),
		Lines:     order.Lines,
		ItemCount: order.ItemCount(),
		Total:     order.Total,
		PlacedAt:  order.CreatedAt,
	}
	if a, ok := NextAction(order.Status); ok {
		view.Next = &a
	}
	return view
}

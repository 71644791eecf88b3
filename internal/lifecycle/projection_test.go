package lifecycle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

func sampleOrder(status model.OrderStatus) model.Order {
	lines := []model.OrderLine{
		{ItemName: "Pad Thai", Quantity: 2, UnitPrice: decimal.RequireFromString("9.75")},
		{ItemName: "Spring Rolls", Quantity: 1, UnitPrice: decimal.RequireFromString("4.50")},
	}
	return model.Order{
		ID:        "order_1718000000000_ab12cd34ef",
		Owner:     "ann",
		Lines:     lines,
		Total:     model.LinesTotal(lines),
		Status:    status,
		CreatedAt: time.Unix(1718000000, 0),
	}
}

func TestForCustomerStepper(t *testing.T) {
	view := ForCustomer(sampleOrder(model.OrderStatusPreparing))
	if view.Cancelled {
		t.Fatal("preparing order must not be cancelled")
	}
	if len(view.Steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(view.Steps))
	}
	want := []StepState{StepCompleted, StepCompleted, StepCurrent, StepUpcoming, StepUpcoming}
	for i, s := range view.Steps {
		if s.State != want[i] {
			t.Fatalf("step %d (%s): expected state %d, got %d", i, s.Label, want[i], s.State)
		}
	}
	if view.Steps[0].Label != "Order Placed" || view.Steps[4].Description != "Enjoy your meal!" {
		t.Fatalf("unexpected step text: %+v", view.Steps)
	}
	if view.Progress != 0.5 {
		t.Fatalf("expected progress 0.5, got %v", view.Progress)
	}
}

func TestForCustomerCancelled(t *testing.T) {
	view := ForCustomer(sampleOrder(model.OrderStatusCancelled))
	if !view.Cancelled || view.Progress != 0 {
		t.Fatalf("unexpected cancelled view: %+v", view)
	}
	for _, s := range view.Steps {
		if s.State != StepUpcoming {
			t.Fatalf("cancelled order should not mark step %s as %d", s.Label, s.State)
		}
	}
}

func TestForCustomerUnknownStatus(t *testing.T) {
	view := ForCustomer(sampleOrder(model.OrderStatus("lost")))
	if view.Cancelled || view.Progress != 0 {
		t.Fatalf("unexpected view for unknown status: %+v", view)
	}
	for _, s := range view.Steps {
		if s.State != StepUpcoming {
			t.Fatalf("unknown status should not mark step %s as %d", s.Label, s.State)
		}
	}
}

func TestForCourier(t *testing.T) {
	order := sampleOrder(model.OrderStatusAccepted)
	view := ForCourier(order)
	if view.ShortID != "ab12cd34ef"[2:] {
		t.Fatalf("unexpected short id %q", view.ShortID)
	}
	if view.Next == nil || view.Next.Label != "Start Preparing" || view.Next.Target != model.OrderStatusPreparing {
		t.Fatalf("unexpected next action %+v", view.Next)
	}
	if !view.CanCancel || view.ItemCount != 3 {
		t.Fatalf("unexpected courier view %+v", view)
	}
	if !view.Total.Equal(decimal.RequireFromString("24.00")) {
		t.Fatalf("unexpected total %s", view.Total)
	}

	delivered := ForCourier(sampleOrder(model.OrderStatusDelivered))
	if delivered.Next != nil || delivered.CanCancel {
		t.Fatalf("delivered order must expose no actions: %+v", delivered)
	}
}

func TestShortID(t *testing.T) {
	if ShortID("abc") != "abc" {
		t.Fatal("short ids must be returned as is")
	}
	if ShortID("order_123_abcdefgh") != "abcdefgh" {
		t.Fatalf("unexpected short id %q", ShortID("order_123_abcdefgh"))
	}
}

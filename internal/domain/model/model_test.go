package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
)

func TestLinesTotal(t *testing.T) {
	lines := []OrderLine{
		{ItemName: "Margherita", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ItemName: "Cola", Quantity: 1, UnitPrice: decimal.RequireFromString("5.50")},
	}
	if got := LinesTotal(lines); !got.Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("expected 25.50, got %s", got)
	}
	order := Order{Lines: lines}
	if order.ItemCount() != 3 {
		t.Fatalf("expected 3 items, got %d", order.ItemCount())
	}
	if !LinesTotal(nil).IsZero() {
		t.Fatal("expected zero total for no lines")
	}
}

func TestMenuItemUpdateApply(t *testing.T) {
	item := MenuItem{ID: "1", Name: "Soup", Category: "Starters", Price: decimal.NewFromInt(4), Available: true}
	name := "Tomato Soup"
	price := decimal.RequireFromString("4.50")

	got := MenuItemUpdate{Name: &name, Price: &price}.Apply(item)
	if got.Name != name || !got.Price.Equal(price) {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Category != "Starters" || !got.Available || got.ID != "1" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestUserProfileValidate(t *testing.T) {
	cases := []struct {
		name    string
		profile UserProfile
		want    error
	}{
		{"valid", UserProfile{Name: "Ann", Phone: "+1 (555) 123-4567"}, nil},
		{"trimmed", UserProfile{Name: "  Ann ", Phone: "  5551234  "}, nil},
		{"blank name", UserProfile{Name: "   ", Phone: "5551234"}, domainErrors.ErrInvalidName},
		{"short phone", UserProfile{Name: "Ann", Phone: "12345"}, domainErrors.ErrInvalidPhone},
		{"letters in phone", UserProfile{Name: "Ann", Phone: "555-CALL-NOW"}, domainErrors.ErrInvalidPhone},
		{"plus in middle", UserProfile{Name: "Ann", Phone: "555+1234567"}, domainErrors.ErrInvalidPhone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.profile.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestIdentityIsStaff(t *testing.T) {
	if (Identity{Principal: "ann", Role: RoleCustomer}).IsStaff() {
		t.Fatal("customer must not be staff")
	}
	if !(Identity{Principal: "courier", Role: RoleStaff}).IsStaff() {
		t.Fatal("expected staff identity")
	}
}

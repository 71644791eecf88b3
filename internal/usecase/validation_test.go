package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

func TestValidateOrderID(t *testing.T) {
	valid := []string{
		"order_1700000000000_0123456789abcdef0123456789abcdef",
		"order_1_x",
	}
	for _, id := range valid {
		if !ValidateOrderID(id) {
			t.Fatalf("expected id %q to be valid", id)
		}
	}

	invalid := []string{"", "has space", "a/b", "tab\there", strings.Repeat("x", maxOrderIDLength+1)}
	for _, id := range invalid {
		if ValidateOrderID(id) {
			t.Fatalf("expected id %q to be invalid", id)
		}
	}
}

func TestValidateOrderLines(t *testing.T) {
	price := decimal.RequireFromString("4.25")
	if err := ValidateOrderLines([]model.OrderLine{{ItemName: "Tea", Quantity: 2, UnitPrice: price}}); err != nil {
		t.Fatalf("expected valid lines, got %v", err)
	}
	trailing := []model.OrderLine{{ItemName: "Tea", Quantity: 1, UnitPrice: decimal.RequireFromString("4.2500")}}
	if err := ValidateOrderLines(trailing); err != nil {
		t.Fatalf("expected trailing zeros to be accepted, got %v", err)
	}

	cases := map[string][]model.OrderLine{
		"empty":    nil,
		"name":     {{ItemName: " ", Quantity: 1, UnitPrice: price}},
		"zero":     {{ItemName: "Tea", Quantity: 0, UnitPrice: price}},
		"huge":     {{ItemName: "Tea", Quantity: maxLineQuantity + 1, UnitPrice: price}},
		"negative": {{ItemName: "Tea", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}},
		"cents": {
			{ItemName: "Tea", Quantity: 1, UnitPrice: decimal.RequireFromString("0.005")},
			{ItemName: "Cake", Quantity: 1, UnitPrice: decimal.RequireFromString("0.005")},
		},
	}
	for name, lines := range cases {
		if err := ValidateOrderLines(lines); !errors.Is(err, domainErrors.ErrInvalidOrder) {
			t.Errorf("%s: expected ErrInvalidOrder, got %v", name, err)
		}
	}
}

func TestValidateMenuItem(t *testing.T) {
	ok := model.MenuItem{Name: "Soup", Category: "Starters", Price: decimal.NewFromInt(3)}
	if err := ValidateMenuItem(ok); err != nil {
		t.Fatalf("expected valid item, got %v", err)
	}

	noName := ok
	noName.Name = ""
	noCategory := ok
	noCategory.Category = "  "
	negative := ok
	negative.Price = decimal.NewFromInt(-3)
	fractional := ok
	fractional.Price = decimal.RequireFromString("3.999")
	for _, item := range []model.MenuItem{noName, noCategory, negative, fractional} {
		if err := ValidateMenuItem(item); !errors.Is(err, domainErrors.ErrInvalidMenuItem) {
			t.Errorf("expected ErrInvalidMenuItem for %+v, got %v", item, err)
		}
	}
}

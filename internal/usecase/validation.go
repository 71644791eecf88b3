package usecase

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

const (
	maxOrderIDLength = 128
	maxOrderLines    = 100
	maxLineQuantity  = 1000
	// priceScale matches the NUMERIC(12, 2) money columns.
	priceScale = 2
)

func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(priceScale))
}

// ValidateOrderID accepts printable identifiers without whitespace or slashes.
func ValidateOrderID(id string) bool {
	if id == "" || len(id) > maxOrderIDLength {
		return false
	}
	for _, r := range id {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) || r == '/' {
			return false
		}
	}
	return true
}

// ValidateOrderLines checks that an order has lines with names, positive
// quantities and non-negative prices in whole cents.
func ValidateOrderLines(lines []model.OrderLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: no items", domainErrors.ErrInvalidOrder)
	}
	if len(lines) > maxOrderLines {
		return fmt.Errorf("%w: too many items", domainErrors.ErrInvalidOrder)
	}
	for i, l := range lines {
		switch {
		case strings.TrimSpace(l.ItemName) == "":
			return fmt.Errorf("%w: line %d has no name", domainErrors.ErrInvalidOrder, i)
		case l.Quantity <= 0 || l.Quantity > maxLineQuantity:
			return fmt.Errorf("%w: line %d quantity %d", domainErrors.ErrInvalidOrder, i, l.Quantity)
		case l.UnitPrice.IsNegative():
			return fmt.Errorf("%w: line %d has negative price", domainErrors.ErrInvalidOrder, i)
		case !hasCents(l.UnitPrice):
			return fmt.Errorf("%w: line %d price %s has fractional cents", domainErrors.ErrInvalidOrder, i, l.UnitPrice)
		}
	}
	return nil
}

// ValidateMenuItem checks the staff editable fields of an item.
func ValidateMenuItem(item model.MenuItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return fmt.Errorf("%w: name is required", domainErrors.ErrInvalidMenuItem)
	case strings.TrimSpace(item.Category) == "":
		return fmt.Errorf("%w: category is required", domainErrors.ErrInvalidMenuItem)
	case item.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", domainErrors.ErrInvalidMenuItem)
	case !hasCents(item.Price):
		return fmt.Errorf("%w: price must be in whole cents", domainErrors.ErrInvalidMenuItem)
	}
	return nil
}

package model

import "github.com/shopspring/decimal"

// MenuItem is a dish offered by the storefront.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Available   bool
}

// MenuItemInput carries the fields staff provide when creating an item.
type MenuItemInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
}

// MenuItemUpdate is a partial update; nil fields are left untouched.
type MenuItemUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
}

// Apply returns item with the non-nil fields of u applied.
func (u MenuItemUpdate) Apply(item MenuItem) MenuItem {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Price != nil {
		item.Price = *u.Price
	}
	return item
}

// MenuFilter narrows menu listings.
type MenuFilter struct {
	Category      string
	AvailableOnly bool
}

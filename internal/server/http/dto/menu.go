package dto

import (
	"github.com/shopspring/decimal"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// MenuItem is the wire form of a menu item.
type MenuItem struct {
	ID          string          `json:"itemId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
}

// MenuItemInput is the body of a create request.
type MenuItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
}

// MenuItemPatch is the body of a partial update; absent fields stay unchanged.
type MenuItemPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

func FromMenuItem(item model.MenuItem) MenuItem {
	return MenuItem{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price,
		Available:   item.Available,
	}
}

func FromMenuItems(items []model.MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		out = append(out, FromMenuItem(item))
	}
	return out
}

func (m MenuItem) Model() model.MenuItem {
	return model.MenuItem{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Price:       m.Price,
		Available:   m.Available,
	}
}

func MenuItemsModel(items []MenuItem) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.Model())
	}
	return out
}

func FromMenuItemInput(in model.MenuItemInput) MenuItemInput {
	return MenuItemInput{Name: in.Name, Description: in.Description, Category: in.Category, Price: in.Price}
}

func (m MenuItemInput) Model() model.MenuItemInput {
	return model.MenuItemInput{Name: m.Name, Description: m.Description, Category: m.Category, Price: m.Price}
}

func FromMenuItemUpdate(u model.MenuItemUpdate) MenuItemPatch {
	return MenuItemPatch{Name: u.Name, Description: u.Description, Category: u.Category, Price: u.Price}
}

func (p MenuItemPatch) Model() model.MenuItemUpdate {
	return model.MenuItemUpdate{Name: p.Name, Description: p.Description, Category: p.Category, Price: p.Price}
}

package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/repository"
)

// MenuUseCase manages the menu catalogue.
type MenuUseCase struct {
	menu  repository.MenuRepository
	newID func() string
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{menu: menu, newID: uuid.NewString}
}

// Available lists items customers may order, optionally limited to category.
func (u *MenuUseCase) Available(ctx context.Context, category string) ([]model.MenuItem, error) {
	return u.menu.List(ctx, model.MenuFilter{Category: strings.TrimSpace(category), AvailableOnly: true})
}

// All lists every item including unavailable ones.
func (u *MenuUseCase) All(ctx context.Context) ([]model.MenuItem, error) {
	return u.menu.List(ctx, model.MenuFilter{})
}

// Add creates an available item from input.
func (u *MenuUseCase) Add(ctx context.Context, input model.MenuItemInput) (*model.MenuItem, error) {
	item := model.MenuItem{
		ID:          u.newID(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		Available:   true,
	}
	if err := ValidateMenuItem(item); err != nil {
		return nil, err
	}
	if err := u.menu.Create(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies a partial update. Availability is left untouched.
func (u *MenuUseCase) Update(ctx context.Context, id string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	current, err := u.menu.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item := update.Apply(*current)
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	if err := ValidateMenuItem(item); err != nil {
		return nil, err
	}
	if err := u.menu.Update(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleAvailability flips availability and returns the updated item.
func (u *MenuUseCase) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	item, err := u.menu.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Available = !item.Available
	if err := u.menu.Update(ctx, *item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item.
func (u *MenuUseCase) Delete(ctx context.Context, id string) error {
	return u.menu.Delete(ctx, id)
}

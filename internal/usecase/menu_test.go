package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	testhelpers "github.com/caffeinepub/food-order-delivery-platform/internal/test"
)

func newMenuUseCase(items ...model.MenuItem) (*MenuUseCase, *testhelpers.MenuRepositoryStub) {
	repo := &testhelpers.MenuRepositoryStub{Items: items}
	uc := NewMenuUseCase(repo)
	uc.newID = func() string { return "generated" }
	return uc, repo
}

func TestMenuUseCaseAvailable(t *testing.T) {
	uc, _ := newMenuUseCase(
		model.MenuItem{ID: "1", Name: "Soup", Category: "Starters", Available: true},
		model.MenuItem{ID: "2", Name: "Steak", Category: "Mains", Available: false},
		model.MenuItem{ID: "3", Name: "Salad", Category: "Starters", Available: true},
	)

	items, err := uc.Available(context.Background(), "")
	if err != nil || len(items) != 2 {
		t.Fatalf("expected two available items, got %v err=%v", items, err)
	}
	items, err = uc.Available(context.Background(), " Starters ")
	if err != nil || len(items) != 2 {
		t.Fatalf("expected two starters, got %v err=%v", items, err)
	}
	items, err = uc.Available(context.Background(), "Mains")
	if err != nil || len(items) != 0 {
		t.Fatalf("unavailable item must be hidden, got %v err=%v", items, err)
	}
	all, err := uc.All(context.Background())
	if err != nil || len(all) != 3 {
		t.Fatalf("expected full menu, got %v err=%v", all, err)
	}
}

func TestMenuUseCaseAdd(t *testing.T) {
	uc, repo := newMenuUseCase()

	item, err := uc.Add(context.Background(), model.MenuItemInput{
		Name:     "  Ramen ",
		Category: "Mains",
		Price:    decimal.RequireFromString("12.90"),
	})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if item.ID != "generated" || item.Name != "Ramen" || !item.Available {
		t.Fatalf("unexpected item %+v", item)
	}
	if len(repo.Items) != 1 {
		t.Fatalf("item not stored")
	}
}

func TestMenuUseCaseAddValidation(t *testing.T) {
	tests := []struct {
		name  string
		input model.MenuItemInput
	}{
		{name: "no name", input: model.MenuItemInput{Category: "Mains"}},
		{name: "no category", input: model.MenuItemInput{Name: "Ramen"}},
		{name: "negative price", input: model.MenuItemInput{Name: "Ramen", Category: "Mains", Price: decimal.NewFromInt(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo := newMenuUseCase()
			if _, err := uc.Add(context.Background(), tt.input); !errors.Is(err, domainErrors.ErrInvalidMenuItem) {
				t.Fatalf("expected invalid menu item, got %v", err)
			}
			if len(repo.Items) != 0 {
				t.Fatal("invalid item must not be stored")
			}
		})
	}
}

func TestMenuUseCaseUpdate(t *testing.T) {
	uc, repo := newMenuUseCase(model.MenuItem{ID: "1", Name: "Soup", Category: "Starters", Price: decimal.NewFromInt(4), Available: false})

	price := decimal.RequireFromString("4.50")
	item, err := uc.Update(context.Background(), "1", model.MenuItemUpdate{Price: &price})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if item.Name != "Soup" || !item.Price.Equal(price) || item.Available {
		t.Fatalf("partial update changed unexpected fields: %+v", item)
	}
	if !repo.Items[0].Price.Equal(price) {
		t.Fatal("update not stored")
	}

	empty := " "
	if _, err := uc.Update(context.Background(), "1", model.MenuItemUpdate{Name: &empty}); !errors.Is(err, domainErrors.ErrInvalidMenuItem) {
		t.Fatalf("expected invalid menu item, got %v", err)
	}
	if _, err := uc.Update(context.Background(), "missing", model.MenuItemUpdate{}); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMenuUseCaseToggleAndDelete(t *testing.T) {
	uc, repo := newMenuUseCase(model.MenuItem{ID: "1", Name: "Soup", Category: "Starters", Available: true})

	item, err := uc.ToggleAvailability(context.Background(), "1")
	if err != nil {
		t.Fatalf("toggle returned error: %v", err)
	}
	if item.Available || repo.Items[0].Available {
		t.Fatal("expected item to become unavailable")
	}
	if item, _ = uc.ToggleAvailability(context.Background(), "1"); !item.Available {
		t.Fatal("second toggle must restore availability")
	}

	if err := uc.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if err := uc.Delete(context.Background(), "1"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.ToggleAvailability(context.Background(), "1"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

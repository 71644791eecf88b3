package storefront

import (
	"sort"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/lifecycle"
)

// Filter selects dashboard orders: "all" or a single status.
type Filter string

// FilterAll matches every order.
const FilterAll Filter = "all"

// ParseFilter accepts "all", an empty string, or a known status.
func ParseFilter(s string) (Filter, error) {
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	status, err := lifecycle.ParseStatus(s)
	if err != nil {
		return "", err
	}
	return Filter(status), nil
}

// Match reports whether order passes the filter.
func (f Filter) Match(order model.Order) bool {
	return f == FilterAll || f == "" || model.OrderStatus(f) == order.Status
}

// FilterOrders returns the orders matching f.
func FilterOrders(orders []model.Order, f Filter) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// SortForDashboard returns a copy with open orders first, newest first within
// each group.
func SortForDashboard(orders []model.Order) []model.Order {
	out := make([]model.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := !lifecycle.IsTerminal(out[i].Status), !lifecycle.IsTerminal(out[j].Status)
		if oi != oj {
			return oi
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Counts summarises orders by dashboard bucket. Active covers orders a
// courier is already working on.
type Counts struct {
	All       int
	Pending   int
	Active    int
	Delivered int
	Cancelled int
}

// CountOrders buckets orders by status.
func CountOrders(orders []model.Order) Counts {
	c := Counts{All: len(orders)}
	for _, o := range orders {
		switch {
		case o.Status == model.OrderStatusPending:
			c.Pending++
		case lifecycle.IsActive(o.Status):
			c.Active++
		case o.Status == model.OrderStatusDelivered:
			c.Delivered++
		case o.Status == model.OrderStatusCancelled:
			c.Cancelled++
		}
	}
	return c
}

// Dashboard is the courier view of the order list.
type Dashboard struct {
	Filter Filter
	Counts Counts
	Orders []lifecycle.CourierView
}

// BuildDashboard counts all orders, then filters, sorts and projects them.
func BuildDashboard(orders []model.Order, f Filter) Dashboard {
	selected := SortForDashboard(FilterOrders(orders, f))
	views := make([]lifecycle.CourierView, 0, len(selected))
	for _, o := range selected {
		views = append(views, lifecycle.ForCourier(o))
	}
	return Dashboard{Filter: f, Counts: CountOrders(orders), Orders: views}
}

// MenuSection groups menu items of one category.
type MenuSection struct {
	Category string
	Items    []model.MenuItem
}

// GroupByCategory groups items by category in order of first appearance.
func GroupByCategory(items []model.MenuItem) []MenuSection {
	var sections []MenuSection
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(sections)
			index[item.Category] = i
			sections = append(sections, MenuSection{Category: item.Category})
		}
		sections[i].Items = append(sections[i].Items, item)
	}
	return sections
}

// Categories lists distinct categories in order of first appearance.
func Categories(items []model.MenuItem) []string {
	sections := GroupByCategory(items)
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Category
	}
	return out
}

// FindOrder locates an order by id in a list.
func FindOrder(orders []model.Order, id string) (model.Order, error) {
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Order{}, domainErrors.ErrNotFound
}

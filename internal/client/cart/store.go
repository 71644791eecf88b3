// Package cart implements the session-scoped shopping cart.
package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/caffeinepub/food-order-delivery-platform/internal/client/sessionstore"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// StorageKey is the session storage key holding the serialized cart.
const StorageKey = "food-delivery-cart"

// Store holds the cart lines of one session. Every mutation is written
// through to session storage; a failed write is logged and the in-memory
// state is kept.
type Store struct {
	mu      sync.RWMutex
	lines   []model.CartLine
	storage sessionstore.Storage
	logger  *slog.Logger
}

// New creates a store rehydrated from storage. Missing or unreadable data
// yields an empty cart.
func New(ctx context.Context, storage sessionstore.Storage, logger *slog.Logger) *Store {
	s := &Store{storage: storage, logger: logger}
	s.lines = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []model.CartLine {
	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Warn("cart rehydrate failed", slog.String("error", err.Error()))
		return nil
	}
	if !ok {
		return nil
	}
	var lines []model.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.logger.Warn("discarding unreadable cart", slog.String("error", err.Error()))
		return nil
	}
	valid := lines[:0]
	for _, l := range lines {
		if l.ItemID != "" && l.Quantity > 0 {
			valid = append(valid, l)
		}
	}
	return valid
}

// AddItem adds one unit of item, merging with an existing line for the same
// item. The existing line keeps its original name and price.
func (s *Store) AddItem(ctx context.Context, item model.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == item.ID {
			s.lines[i].Quantity++
			s.persist(ctx)
			return
		}
	}
	s.lines = append(s.lines, model.CartLine{
		ItemID:   item.ID,
		ItemName: item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
	s.persist(ctx)
}

// UpdateQuantity sets the quantity of itemID. A non-positive quantity removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, itemID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// RemoveItem drops the line for itemID. Removing an absent item is a no-op.
func (s *Store) RemoveItem(ctx context.Context, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []model.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total sums price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// ItemCount sums quantities over all lines.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) {
	lines := s.lines
	if lines == nil {
		lines = []model.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		s.logger.Error("encode cart failed", slog.String("error", err.Error()))
		return
	}
	if err := s.storage.Set(ctx, StorageKey, raw); err != nil {
		s.logger.Warn("persist cart failed", slog.String("error", err.Error()))
	}
}

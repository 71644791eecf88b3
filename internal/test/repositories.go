package test

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MenuRepositoryStub keeps menu items in insertion order.
type MenuRepositoryStub struct {
	Items []model.MenuItem
	Err   error
}

func (s *MenuRepositoryStub) Create(ctx context.Context, item model.MenuItem) error {
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.Items {
		if existing.ID == item.ID {
			return domainErrors.ErrAlreadyExists
		}
	}
	s.Items = append(s.Items, item)
	return nil
}

func (s *MenuRepositoryStub) Get(ctx context.Context, id string) (*model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, item := range s.Items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MenuRepositoryStub) List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.MenuItem
	for _, item := range s.Items {
		if filter.AvailableOnly && !item.Available {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *MenuRepositoryStub) Update(ctx context.Context, item model.MenuItem) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == item.ID {
			s.Items[i] = item
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *MenuRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// OrderRepositoryStub stores orders in memory. Fn overrides take precedence.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]model.Order

	CreateFn              func(context.Context, model.Order) error
	GetFn                 func(context.Context, string) (*model.Order, error)
	CompareAndSetStatusFn func(context.Context, string, model.OrderStatus, model.OrderStatus) (bool, error)

	CASCalls []StatusUpdateCall
}

// StatusUpdateCall records a compare-and-set attempt.
type StatusUpdateCall struct {
	OrderID string
	Current model.OrderStatus
	Next    model.OrderStatus
}

// NewOrderRepositoryStub constructs an empty order store.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]model.Order)}
	for _, o := range orders {
		s.Orders[o.ID] = o
	}
	return s
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.Orders[order.ID] = order
	return nil
}

func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &order, nil
}

func (s *OrderRepositoryStub) ListByOwner(ctx context.Context, owner string) ([]model.Order, error) {
	return s.list(func(o model.Order) bool { return o.Owner == owner }), nil
}

func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.list(func(model.Order) bool { return true }), nil
}

func (s *OrderRepositoryStub) list(match func(model.Order) bool) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		if match(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *OrderRepositoryStub) CompareAndSetStatus(ctx context.Context, id string, current, next model.OrderStatus) (bool, error) {
	s.mu.Lock()
	s.CASCalls = append(s.CASCalls, StatusUpdateCall{OrderID: id, Current: current, Next: next})
	s.mu.Unlock()
	if s.CompareAndSetStatusFn != nil {
		return s.CompareAndSetStatusFn(ctx, id, current, next)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok || order.Status != current {
		return false, nil
	}
	order.Status = next
	s.Orders[id] = order
	return true, nil
}

func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	return nil
}

// ProfileRepositoryStub stores profiles per principal.
type ProfileRepositoryStub struct {
	Profiles map[string]model.UserProfile
	Err      error
}

func (s *ProfileRepositoryStub) Get(ctx context.Context, principal string) (*model.UserProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Profiles[principal]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (s *ProfileRepositoryStub) Save(ctx context.Context, principal string, profile model.UserProfile) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Profiles == nil {
		s.Profiles = make(map[string]model.UserProfile)
	}
	s.Profiles[principal] = profile
	return nil
}

// EventPublisherStub records published order events.
type EventPublisherStub struct {
	mu     sync.Mutex
	Events []model.OrderEvent
	Err    error
}

func (s *EventPublisherStub) Publish(ctx context.Context, event model.OrderEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, event)
	return nil
}

// Published returns a copy of the recorded events.
func (s *EventPublisherStub) Published() []model.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderEvent(nil), s.Events...)
}

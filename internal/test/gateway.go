package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/lifecycle"
)

// CourierPIN is the PIN accepted by GatewayStub.CourierLogin.
const CourierPIN = "1234"

// GatewayStub is an in-memory backend implementing the client gateway. It
// validates transitions like the real backend and counts calls per method.
// FailFn, when set, can inject an error for any method by name.
type GatewayStub struct {
	mu sync.Mutex

	FailFn func(method string) error

	caller   model.Identity
	menu     []model.MenuItem
	orders   map[string]model.Order
	profiles map[string]model.UserProfile
	calls    map[string]int
	clock    time.Time
}

// NewGatewayStub constructs an empty in-memory backend.
func NewGatewayStub() *GatewayStub {
	return &GatewayStub{
		orders:   make(map[string]model.Order),
		profiles: make(map[string]model.UserProfile),
		calls:    make(map[string]int),
		clock:    time.Unix(1700000000, 0),
	}
}

// Calls returns how many times method was invoked.
func (s *GatewayStub) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// TotalCalls returns the number of invocations across all methods.
func (s *GatewayStub) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, c := range s.calls {
		n += c
	}
	return n
}

// SetCaller changes the identity the stub serves requests for.
func (s *GatewayStub) SetCaller(id model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caller = id
}

// SeedMenu replaces the menu.
func (s *GatewayStub) SeedMenu(items ...model.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = append([]model.MenuItem(nil), items...)
}

// SeedOrder stores order as is.
func (s *GatewayStub) SeedOrder(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
}

// SetStatus changes an order status out of band, as another client would.
func (s *GatewayStub) SetStatus(id string, status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		o.Status = status
		s.orders[id] = o
	}
}

// Profile returns the stored profile of principal.
func (s *GatewayStub) Profile(principal string) (model.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[principal]
	return p, ok
}

func (s *GatewayStub) begin(method string) error {
	s.mu.Lock()
	s.calls[method]++
	fail := s.FailFn
	s.mu.Unlock()
	if fail != nil {
		return fail(method)
	}
	return nil
}

func (s *GatewayStub) requireStaff() error {
	if s.caller.Principal == "" {
		return domainErrors.ErrUnauthenticated
	}
	if !s.caller.IsStaff() {
		return domainErrors.ErrForbidden
	}
	return nil
}

func (s *GatewayStub) signIn(principal string, role model.Role) model.Credentials {
	s.caller = model.Identity{Principal: principal, Role: role}
	return model.Credentials{Token: "token-" + principal, Identity: s.caller}
}

func (s *GatewayStub) Register(ctx context.Context, login, password string) (model.Credentials, error) {
	if err := s.begin("Register"); err != nil {
		return model.Credentials{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signIn(login, model.RoleCustomer), nil
}

func (s *GatewayStub) Login(ctx context.Context, login, password string) (model.Credentials, error) {
	if err := s.begin("Login"); err != nil {
		return model.Credentials{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signIn(login, model.RoleCustomer), nil
}

func (s *GatewayStub) CourierLogin(ctx context.Context, pin string) (model.Credentials, error) {
	if err := s.begin("CourierLogin"); err != nil {
		return model.Credentials{}, err
	}
	if pin != CourierPIN {
		return model.Credentials{}, domainErrors.ErrInvalidCredentials
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signIn("courier", model.RoleStaff), nil
}

func (s *GatewayStub) GetMenu(ctx context.Context) ([]model.MenuItem, error) {
	return s.GetMenuByCategory(ctx, "")
}

func (s *GatewayStub) GetMenuByCategory(ctx context.Context, category string) ([]model.MenuItem, error) {
	if err := s.begin("GetMenu"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.MenuItem
	for _, item := range s.menu {
		if item.Available && (category == "" || item.Category == category) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *GatewayStub) GetAdminMenu(ctx context.Context) ([]model.MenuItem, error) {
	if err := s.begin("GetAdminMenu"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStaff(); err != nil {
		return nil, err
	}
	return append([]model.MenuItem(nil), s.menu...), nil
}

func (s *GatewayStub) AddMenuItem(ctx context.Context, input model.MenuItemInput) (*model.MenuItem, error) {
	if err := s.begin("AddMenuItem"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStaff(); err != nil {
		return nil, err
	}
	item := model.MenuItem{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Available:   true,
	}
	s.menu = append(s.menu, item)
	return &item, nil
}

func (s *GatewayStub) mutateItem(method, id string, fn func(*model.MenuItem)) (*model.MenuItem, error) {
	if err := s.begin(method); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStaff(); err != nil {
		return nil, err
	}
	for i := range s.menu {
		if s.menu[i].ID == id {
			fn(&s.menu[i])
			item := s.menu[i]
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *GatewayStub) UpdateMenuItem(ctx context.Context, id string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	return s.mutateItem("UpdateMenuItem", id, func(item *model.MenuItem) { *item = update.Apply(*item) })
}

func (s *GatewayStub) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	return s.mutateItem("ToggleAvailability", id, func(item *model.MenuItem) { item.Available = !item.Available })
}

func (s *GatewayStub) DeleteMenuItem(ctx context.Context, id string) error {
	if err := s.begin("DeleteMenuItem"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStaff(); err != nil {
		return err
	}
	for i := range s.menu {
		if s.menu[i].ID == id {
			s.menu = append(s.menu[:i], s.menu[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *GatewayStub) PlaceOrder(ctx context.Context, id string, lines []model.OrderLine) (*model.Order, error) {
	if err := s.begin("PlaceOrder"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.caller.Principal == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	if id == "" || len(lines) == 0 {
		return nil, domainErrors.ErrInvalidOrder
	}
	if _, exists := s.orders[id]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.clock = s.clock.Add(time.Second)
	order := model.Order{
		ID:        id,
		Owner:     s.caller.Principal,
		Lines:     append([]model.OrderLine(nil), lines...),
		Total:     model.LinesTotal(lines),
		Status:    model.OrderStatusPending,
		CreatedAt: s.clock,
	}
	s.orders[id] = order
	return &order, nil
}

func (s *GatewayStub) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	if err := s.begin("GetOrderByID"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if order.Owner != s.caller.Principal && !s.caller.IsStaff() {
		return nil, domainErrors.ErrForbidden
	}
	return &order, nil
}

func (s *GatewayStub) GetOrdersByCustomer(ctx context.Context, principal string) ([]model.Order, error) {
	if err := s.begin("GetOrdersByCustomer"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(o model.Order) bool { return o.Owner == principal }), nil
}

func (s *GatewayStub) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	if err := s.begin("GetAllOrders"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStaff(); err != nil {
		return nil, err
	}
	return s.list(func(model.Order) bool { return true }), nil
}

func (s *GatewayStub) list(match func(model.Order) bool) []model.Order {
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if match(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *GatewayStub) transition(method, id string, next model.OrderStatus) error {
	if err := s.begin(method); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStaff(); err != nil {
		return err
	}
	order, ok := s.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if err := lifecycle.Validate(order.Status, next); err != nil {
		return err
	}
	order.Status = next
	s.orders[id] = order
	return nil
}

func (s *GatewayStub) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return s.transition("UpdateOrderStatus", id, status)
}

func (s *GatewayStub) CancelOrder(ctx context.Context, id string) error {
	return s.transition("CancelOrder", id, model.OrderStatusCancelled)
}

func (s *GatewayStub) DeleteOrder(ctx context.Context, id string) error {
	if err := s.begin("DeleteOrder"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStaff(); err != nil {
		return err
	}
	if _, ok := s.orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *GatewayStub) GetCallerUserProfile(ctx context.Context) (*model.UserProfile, error) {
	if err := s.begin("GetCallerUserProfile"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.caller.Principal == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	p, ok := s.profiles[s.caller.Principal]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *GatewayStub) SaveCallerUserProfile(ctx context.Context, profile model.UserProfile) error {
	if err := s.begin("SaveCallerUserProfile"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.caller.Principal == "" {
		return domainErrors.ErrUnauthenticated
	}
	s.profiles[s.caller.Principal] = profile
	return nil
}

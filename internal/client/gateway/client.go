package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/dto"
)

// HTTPClient implements Gateway over the JSON HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// NewHTTPClient creates a gateway client with default timeout.
func NewHTTPClient(baseURL string, tokens TokenSource, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		tokens:  tokens,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

var _ Gateway = (*HTTPClient)(nil)

func (c *HTTPClient) Register(ctx context.Context, login, password string) (model.Credentials, error) {
	return c.authenticate(ctx, "/api/auth/register", dto.AuthRequest{Login: login, Password: password})
}

func (c *HTTPClient) Login(ctx context.Context, login, password string) (model.Credentials, error) {
	return c.authenticate(ctx, "/api/auth/login", dto.AuthRequest{Login: login, Password: password})
}

func (c *HTTPClient) CourierLogin(ctx context.Context, pin string) (model.Credentials, error) {
	return c.authenticate(ctx, "/api/auth/courier", dto.CourierLoginRequest{PIN: pin})
}

func (c *HTTPClient) authenticate(ctx context.Context, p string, body any) (model.Credentials, error) {
	var resp dto.TokenResponse
	if _, err := c.do(ctx, http.MethodPost, p, nil, body, &resp); err != nil {
		return model.Credentials{}, err
	}
	return resp.Credentials(), nil
}

func (c *HTTPClient) GetMenu(ctx context.Context) ([]model.MenuItem, error) {
	return c.menu(ctx, "/api/menu", nil)
}

func (c *HTTPClient) GetMenuByCategory(ctx context.Context, category string) ([]model.MenuItem, error) {
	return c.menu(ctx, "/api/menu", url.Values{"category": {category}})
}

func (c *HTTPClient) GetAdminMenu(ctx context.Context) ([]model.MenuItem, error) {
	return c.menu(ctx, "/api/admin/menu", nil)
}

func (c *HTTPClient) menu(ctx context.Context, p string, query url.Values) ([]model.MenuItem, error) {
	var items []dto.MenuItem
	if _, err := c.do(ctx, http.MethodGet, p, query, nil, &items); err != nil {
		return nil, err
	}
	return dto.MenuItemsModel(items), nil
}

func (c *HTTPClient) AddMenuItem(ctx context.Context, input model.MenuItemInput) (*model.MenuItem, error) {
	return c.menuItem(ctx, http.MethodPost, "/api/admin/menu", dto.FromMenuItemInput(input))
}

func (c *HTTPClient) UpdateMenuItem(ctx context.Context, id string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	return c.menuItem(ctx, http.MethodPatch, "/api/admin/menu/"+url.PathEscape(id), dto.FromMenuItemUpdate(update))
}

func (c *HTTPClient) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	return c.menuItem(ctx, http.MethodPost, "/api/admin/menu/"+url.PathEscape(id)+"/toggle", nil)
}

func (c *HTTPClient) menuItem(ctx context.Context, method, p string, body any) (*model.MenuItem, error) {
	var item dto.MenuItem
	if _, err := c.do(ctx, method, p, nil, body, &item); err != nil {
		return nil, err
	}
	result := item.Model()
	return &result, nil
}

func (c *HTTPClient) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/admin/menu/"+url.PathEscape(id), nil, nil, nil)
	return err
}

func (c *HTTPClient) PlaceOrder(ctx context.Context, id string, lines []model.OrderLine) (*model.Order, error) {
	req := dto.PlaceOrderRequest{OrderID: id, Items: dto.FromOrderLines(lines)}
	var created dto.Order
	if _, err := c.do(ctx, http.MethodPost, "/api/orders", nil, req, &created); err != nil {
		return nil, err
	}
	order := created.Model()
	return &order, nil
}

func (c *HTTPClient) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var resp dto.Order
	if _, err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	order := resp.Model()
	return &order, nil
}

func (c *HTTPClient) GetOrdersByCustomer(ctx context.Context, principal string) ([]model.Order, error) {
	return c.orders(ctx, "/api/customers/"+url.PathEscape(principal)+"/orders")
}

func (c *HTTPClient) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return c.orders(ctx, "/api/admin/orders")
}

func (c *HTTPClient) orders(ctx context.Context, p string) ([]model.Order, error) {
	var resp []dto.Order
	if _, err := c.do(ctx, http.MethodGet, p, nil, nil, &resp); err != nil {
		return nil, err
	}
	return dto.OrdersModel(resp), nil
}

func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	body := dto.StatusUpdateRequest{Status: string(status)}
	_, err := c.do(ctx, http.MethodPut, "/api/admin/orders/"+url.PathEscape(id)+"/status", nil, body, nil)
	return err
}

func (c *HTTPClient) CancelOrder(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/admin/orders/"+url.PathEscape(id)+"/cancel", nil, nil, nil)
	return err
}

func (c *HTTPClient) DeleteOrder(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/admin/orders/"+url.PathEscape(id), nil, nil, nil)
	return err
}

func (c *HTTPClient) GetCallerUserProfile(ctx context.Context) (*model.UserProfile, error) {
	var resp dto.Profile
	status, err := c.do(ctx, http.MethodGet, "/api/me/profile", nil, nil, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	profile := resp.Model()
	return &profile, nil
}

func (c *HTTPClient) SaveCallerUserProfile(ctx context.Context, profile model.UserProfile) error {
	_, err := c.do(ctx, http.MethodPut, "/api/me/profile", nil, dto.FromProfile(profile), nil)
	return err
}

// do performs one request and decodes a 2xx body into out. It returns the
// response status code alongside any error. p must already be escaped per
// segment with url.PathEscape.
func (c *HTTPClient) do(ctx context.Context, method, p string, query url.Values, in, out any) (int, error) {
	endpoint, err := c.baseURL.Parse(strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + p)
	if err != nil {
		return 0, fmt.Errorf("build %s %s: %w", method, p, err)
	}
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode %s %s: %w", method, p, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", slog.String("method", method), slog.String("path", p), slog.String("error", err.Error()))
		return 0, fmt.Errorf("%s %s: %w: %v", method, p, domainErrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && resp.StatusCode != http.StatusNoContent {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, p, err)
			}
		}
		return resp.StatusCode, nil
	}
	return resp.StatusCode, c.failure(method, p, resp)
}

func (c *HTTPClient) failure(method, p string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload dto.ErrorResponse
	_ = json.Unmarshal(raw, &payload)

	sentinel, ok := domainErrors.FromCode(payload.Code)
	if !ok {
		sentinel = statusSentinel(resp.StatusCode)
	}
	message := payload.Message
	if message == "" {
		message = resp.Status
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Error("backend request failed", slog.String("method", method), slog.String("path", p), slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
	}
	if sentinel == nil {
		return fmt.Errorf("%s %s: unexpected status %s: %s", method, p, resp.Status, message)
	}
	return fmt.Errorf("%s %s: %w: %s", method, p, sentinel, message)
}

func statusSentinel(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return domainErrors.ErrUnauthenticated
	case status == http.StatusForbidden:
		return domainErrors.ErrForbidden
	case status == http.StatusNotFound:
		return domainErrors.ErrNotFound
	case status == http.StatusConflict:
		return domainErrors.ErrAlreadyExists
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return domainErrors.ErrUnavailable
	default:
		return nil
	}
}

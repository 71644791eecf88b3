// Package session holds the credentials of the current client session.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/caffeinepub/food-order-delivery-platform/internal/client/sessionstore"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// StorageKey is the session storage key holding the credentials.
const StorageKey = "storefront-session"

// Manager owns the credentials of one session and supplies the bearer token
// to the gateway. Credentials survive restarts through session storage.
type Manager struct {
	mu      sync.RWMutex
	creds   *model.Credentials
	storage sessionstore.Storage
	logger  *slog.Logger
}

// New creates a manager rehydrated from storage.
func New(ctx context.Context, storage sessionstore.Storage, logger *slog.Logger) *Manager {
	m := &Manager{storage: storage, logger: logger}
	raw, ok, err := storage.Get(ctx, StorageKey)
	switch {
	case err != nil:
		logger.Warn("session rehydrate failed", slog.String("error", err.Error()))
	case ok:
		var creds model.Credentials
		if err := json.Unmarshal(raw, &creds); err != nil || creds.Token == "" {
			logger.Warn("discarding unreadable session")
			break
		}
		m.creds = &creds
	}
	return m
}

// Token returns the bearer token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return ""
	}
	return m.creds.Token
}

// Identity returns the signed-in identity.
func (m *Manager) Identity() (model.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return model.Identity{}, false
	}
	return m.creds.Identity, true
}

// HasCourierAccess reports whether the session holds staff credentials.
func (m *Manager) HasCourierAccess() bool {
	id, ok := m.Identity()
	return ok && id.IsStaff()
}

// Set replaces the session credentials.
func (m *Manager) Set(ctx context.Context, creds model.Credentials) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &creds

	raw, err := json.Marshal(creds)
	if err != nil {
		m.logger.Error("encode session failed", slog.String("error", err.Error()))
		return
	}
	if err := m.storage.Set(ctx, StorageKey, raw); err != nil {
		m.logger.Warn("persist session failed", slog.String("error", err.Error()))
	}
}

// Clear signs the session out.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	if err := m.storage.Delete(ctx, StorageKey); err != nil {
		m.logger.Warn("clear session failed", slog.String("error", err.Error()))
	}
}

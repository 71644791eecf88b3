package auth

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

var courier = model.Identity{Principal: "courier", Role: model.RoleStaff}

func TestNewHMACStrategy_DefaultTTL(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if strategy == nil {
		t.Fatal("expected strategy instance")
	}
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestNewHMACStrategy_CustomTTL(t *testing.T) {
	ttl := 2 * time.Hour
	strategy := NewHMACStrategy("secret", Options{TTL: ttl})
	if strategy.ttl != ttl {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestHMACStrategy_IssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	for _, identity := range []model.Identity{
		courier,
		{Principal: "ann:with/colon", Role: model.RoleCustomer},
	} {
		token, err := strategy.IssueToken(identity)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		if token == "" {
			t.Fatal("expected non-empty token")
		}
		parsed, err := strategy.ParseToken(token)
		if err != nil {
			t.Fatalf("parse token: %v", err)
		}
		if parsed != identity {
			t.Fatalf("unexpected identity: %+v", parsed)
		}
	}
}

func TestHMACStrategy_IssueRejectsBadIdentity(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.IssueToken(model.Identity{Role: model.RoleStaff}); err == nil {
		t.Fatal("expected error for empty principal")
	}
	if _, err := strategy.IssueToken(model.Identity{Principal: "x", Role: "admin"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestHMACStrategy_ParseInvalidEncoding(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.ParseToken("not base64!"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseInvalidParts(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	token := encoding.EncodeToString([]byte("only:two"))
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseInvalidSignature(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(courier)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, err := encoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		t.Fatalf("unexpected parts count: %d", len(parts))
	}
	parts[3] = "tampered"
	tamperedToken := encoding.EncodeToString([]byte(strings.Join(parts, ":")))
	if _, err := strategy.ParseToken(tamperedToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_RejectsRoleEscalation(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(model.Identity{Principal: "ann", Role: model.RoleCustomer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, _ := encoding.DecodeString(token)
	forged := strings.Replace(string(raw), ":customer:", ":staff:", 1)
	if _, err := strategy.ParseToken(encoding.EncodeToString([]byte(forged))); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func signed(strategy *HMACStrategy, payload string) string {
	return encoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", payload, strategy.sign(payload))))
}

func TestHMACStrategy_ParseInvalidFields(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	future := time.Now().Add(time.Minute).Unix()
	principal := encoding.EncodeToString([]byte("ann"))
	cases := map[string]string{
		"principal": fmt.Sprintf("***:customer:%d", future),
		"role":      fmt.Sprintf("%s:admin:%d", principal, future),
		"expiry":    fmt.Sprintf("%s:customer:not-a-number", principal),
		"expired":   fmt.Sprintf("%s:customer:%d", principal, time.Now().Add(-time.Minute).Unix()),
	}
	for name, payload := range cases {
		if _, err := strategy.ParseToken(signed(strategy, payload)); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestHMACStrategy_UsesClock(t *testing.T) {
	now := time.Unix(1700000000, 0)
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute, Now: func() time.Time { return now }})
	token, err := strategy.IssueToken(courier)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestHMACStrategy_Name(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if strategy.Name() != "hmac" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

var encoding = base64.RawURLEncoding

// HMACStrategy implements auth token creation/verification using HMAC signatures.
// A token is the encoding of "principal:role:expires:signature" where the
// principal itself is encoded so it may contain any character.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken generates signed auth token for the identity.
func (s *HMACStrategy) IssueToken(identity model.Identity) (string, error) {
	if identity.Principal == "" {
		return "", fmt.Errorf("issue token: empty principal")
	}
	if identity.Role != model.RoleCustomer && identity.Role != model.RoleStaff {
		return "", fmt.Errorf("issue token: unknown role %q", identity.Role)
	}
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s:%s:%d", encoding.EncodeToString([]byte(identity.Principal)), identity.Role, expires)
	token := fmt.Sprintf("%s:%s", payload, s.sign(payload))
	return encoding.EncodeToString([]byte(token)), nil
}

// ParseToken validates token and returns the encoded identity.
func (s *HMACStrategy) ParseToken(token string) (model.Identity, error) {
	raw, err := encoding.DecodeString(token)
	if err != nil {
		return model.Identity{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return model.Identity{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ":")
	expectedSig := s.sign(payload)
	if !hmac.Equal([]byte(expectedSig), []byte(parts[3])) {
		return model.Identity{}, ErrInvalidToken
	}

	principal, err := encoding.DecodeString(parts[0])
	if err != nil || len(principal) == 0 {
		return model.Identity{}, ErrInvalidToken
	}

	role := model.Role(parts[1])
	if role != model.RoleCustomer && role != model.RoleStaff {
		return model.Identity{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return model.Identity{}, ErrInvalidToken
	}

	if time.Unix(expires, 0).Before(s.now()) {
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{Principal: string(principal), Role: role}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return encoding.EncodeToString(mac.Sum(nil))
}

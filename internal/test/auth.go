package test

import (
	"errors"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	pkgAuth "github.com/caffeinepub/food-order-delivery-platform/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied secret.
func (h HasherStub) Hash(secret string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(secret)
	}
	return "hash:" + secret, nil
}

// Compare validates secret against stored hash.
func (h HasherStub) Compare(hash string, secret string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, secret)
	}
	if hash != "hash:"+secret {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides. By default a
// token is "<role>:<principal>".
type StrategyStub struct {
	IssueFn func(model.Identity) (string, error)
	ParseFn func(string) (model.Identity, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(identity model.Identity) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(identity)
	}
	return string(identity.Role) + ":" + identity.Principal, nil
}

// ParseToken parses tokens produced by the default IssueToken.
func (s StrategyStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return ParseStubToken(token)
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// ParseStubToken decodes "<role>:<principal>" tokens.
func ParseStubToken(token string) (model.Identity, error) {
	for _, role := range []model.Role{model.RoleCustomer, model.RoleStaff} {
		prefix := string(role) + ":"
		if len(token) > len(prefix) && token[:len(prefix)] == prefix {
			return model.Identity{Principal: token[len(prefix):], Role: role}, nil
		}
	}
	return model.Identity{}, pkgAuth.ErrInvalidToken
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Identity model.Identity
	Err      error
	ParseFn  func(string) (model.Identity, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return model.Identity{}, s.Err
	}
	return s.Identity, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}

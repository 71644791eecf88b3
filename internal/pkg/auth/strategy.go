package auth

import (
	"time"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

// Strategy issues and verifies bearer tokens carrying an identity.
type Strategy interface {
	IssueToken(identity model.Identity) (string, error)
	ParseToken(token string) (model.Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}

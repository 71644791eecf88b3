package usecase

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/caffeinepub/food-order-delivery-platform/internal/config"
	pkgAuth "github.com/caffeinepub/food-order-delivery-platform/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newCourierPIN,
	NewAuthUseCase,
	NewMenuUseCase,
	NewOrderUseCase,
	NewProfileUseCase,
)

type courierPINParams struct {
	fx.In

	Config *config.Config
	Hasher pkgAuth.PasswordHasher
	Logger *slog.Logger
}

// newCourierPIN prefers a configured bcrypt hash and hashes a plain PIN otherwise.
func newCourierPIN(p courierPINParams) (CourierPIN, error) {
	switch {
	case p.Config.CourierPINHash != "":
		if !pkgAuth.IsHash(p.Config.CourierPINHash) {
			return "", fmt.Errorf("courier pin hash is not a bcrypt hash")
		}
		return CourierPIN(p.Config.CourierPINHash), nil
	case p.Config.CourierPIN != "":
		hash, err := p.Hasher.Hash(p.Config.CourierPIN)
		if err != nil {
			return "", fmt.Errorf("hash courier pin: %w", err)
		}
		return CourierPIN(hash), nil
	default:
		p.Logger.Warn("courier login disabled: no pin configured")
		return "", nil
	}
}

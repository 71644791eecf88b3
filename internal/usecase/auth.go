package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/repository"
	pkgAuth "github.com/caffeinepub/food-order-delivery-platform/internal/pkg/auth"
)

// CourierPrincipal is the principal of tokens issued for the courier PIN.
const CourierPrincipal = "courier"

// CourierPIN is the bcrypt hash of the courier PIN. Empty disables courier login.
type CourierPIN string

// AuthUseCase handles customer accounts, courier access and tokens.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	pin    CourierPIN
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, pin CourierPIN) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, pin: pin}
}

// Register creates a new customer and returns its credentials.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (model.Credentials, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return model.Credentials{}, domainErrors.ErrInvalidCredentials
	}
	if strings.EqualFold(login, CourierPrincipal) {
		return model.Credentials{}, domainErrors.ErrAlreadyExists
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return model.Credentials{}, err
	}

	usr, err := u.users.Create(ctx, login, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return model.Credentials{}, domainErrors.ErrAlreadyExists
		}
		return model.Credentials{}, err
	}

	return u.issue(model.Identity{Principal: usr.Login, Role: model.RoleCustomer})
}

// Authenticate validates customer credentials.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (model.Credentials, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return model.Credentials{}, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return model.Credentials{}, domainErrors.ErrInvalidCredentials
		}
		return model.Credentials{}, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return model.Credentials{}, domainErrors.ErrInvalidCredentials
	}

	return u.issue(model.Identity{Principal: usr.Login, Role: model.RoleCustomer})
}

// CourierLogin exchanges the courier PIN for staff credentials.
func (u *AuthUseCase) CourierLogin(ctx context.Context, pin string) (model.Credentials, error) {
	if u.pin == "" || pin == "" {
		return model.Credentials{}, domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(string(u.pin), pin); err != nil {
		return model.Credentials{}, domainErrors.ErrInvalidCredentials
	}
	return u.issue(model.Identity{Principal: CourierPrincipal, Role: model.RoleStaff})
}

// ParseToken extracts the identity from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

func (u *AuthUseCase) issue(identity model.Identity) (model.Credentials, error) {
	token, err := u.tokens.IssueToken(identity)
	if err != nil {
		return model.Credentials{}, err
	}
	return model.Credentials{Token: token, Identity: identity}, nil
}

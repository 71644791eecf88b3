package dto

import "github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// CourierLoginRequest carries the staff access PIN.
type CourierLoginRequest struct {
	PIN string `json:"pin"`
}

// TokenResponse is returned by every successful authentication.
type TokenResponse struct {
	Token     string `json:"token"`
	Principal string `json:"principal"`
	Role      string `json:"role"`
}

// FromCredentials builds the response body for creds.
func FromCredentials(creds model.Credentials) TokenResponse {
	return TokenResponse{Token: creds.Token, Principal: creds.Identity.Principal, Role: string(creds.Identity.Role)}
}

// Credentials converts the response back to the domain form.
func (r TokenResponse) Credentials() model.Credentials {
	return model.Credentials{
		Token:    r.Token,
		Identity: model.Identity{Principal: r.Principal, Role: model.Role(r.Role)},
	}
}

package model

import (
	"regexp"
	"strings"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
)

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{7,}$`)

// UserProfile holds the contact details of an identity.
type UserProfile struct {
	Name  string
	Phone string
}

// Normalize trims surrounding whitespace from both fields.
func (p UserProfile) Normalize() UserProfile {
	return UserProfile{Name: strings.TrimSpace(p.Name), Phone: strings.TrimSpace(p.Phone)}
}

// Validate checks that the name is present and the phone looks dialable.
func (p UserProfile) Validate() error {
	p = p.Normalize()
	if p.Name == "" {
		return domainErrors.ErrInvalidName
	}
	if !phonePattern.MatchString(p.Phone) {
		return domainErrors.ErrInvalidPhone
	}
	return nil
}

package dto

import "github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"

// Profile is the wire form of a user profile.
type Profile struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func FromProfile(p model.UserProfile) Profile {
	return Profile{Name: p.Name, Phone: p.Phone}
}

func (p Profile) Model() model.UserProfile {
	return model.UserProfile{Name: p.Name, Phone: p.Phone}
}

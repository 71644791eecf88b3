package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidName        = errors.New("name is required")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidMenuItem    = errors.New("invalid menu item")
	ErrUnavailable        = errors.New("backend unavailable")
)

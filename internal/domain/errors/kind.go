package errors

import "errors"

// Kind groups errors by how callers are expected to react to them.
type Kind int

const (
	KindTransient Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "transient"
	}
}

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrEmptyCart, KindValidation},
	{ErrInvalidName, KindValidation},
	{ErrInvalidPhone, KindValidation},
	{ErrInvalidOrder, KindValidation},
	{ErrInvalidMenuItem, KindValidation},
	{ErrUnknownStatus, KindValidation},
	{ErrUnauthenticated, KindAuthorization},
	{ErrForbidden, KindAuthorization},
	{ErrInvalidCredentials, KindAuthorization},
	{ErrNotFound, KindNotFound},
	{ErrAlreadyExists, KindConflict},
	{ErrIllegalTransition, KindConflict},
}

// Classify reports the kind of err. Anything unrecognised is transient.
func Classify(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindTransient
}

// Retriable reports whether repeating the same call may succeed.
func Retriable(err error) bool {
	return err != nil && Classify(err) == KindTransient
}

var codes = map[string]error{
	"already_exists":      ErrAlreadyExists,
	"not_found":           ErrNotFound,
	"invalid_credentials": ErrInvalidCredentials,
	"unauthenticated":     ErrUnauthenticated,
	"forbidden":           ErrForbidden,
	"illegal_transition":  ErrIllegalTransition,
	"unknown_status":      ErrUnknownStatus,
	"empty_cart":          ErrEmptyCart,
	"invalid_name":        ErrInvalidName,
	"invalid_phone":       ErrInvalidPhone,
	"invalid_order":       ErrInvalidOrder,
	"invalid_menu_item":   ErrInvalidMenuItem,
	"unavailable":         ErrUnavailable,
}

// Code returns the wire code for a known sentinel, or "internal".
func Code(err error) string {
	for code, sentinel := range codes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return "internal"
}

// FromCode maps a wire code back to its sentinel.
func FromCode(code string) (error, bool) {
	err, ok := codes[code]
	return err, ok
}

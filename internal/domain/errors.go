package domain

import "errors"

// The storefront error taxonomy. Every failure surfaced to a caller wraps
// exactly one of these sentinels so transport code can map it to a stable
// response without inspecting messages.
var (
	ErrUnauthenticated   = errors.New("storefront: unauthenticated")
	ErrInvalidToken      = errors.New("storefront: invalid token")
	ErrForbidden         = errors.New("storefront: forbidden")
	ErrInvalidInput      = errors.New("storefront: invalid input")
	ErrInvalidTransition = errors.New("storefront: invalid status transition")
	ErrStoreUnavailable  = errors.New("storefront: store unavailable")
)

package auth

import "errors"

// Caller identity is asserted by the host (header on the API surface) and
// checked by usecases before any mutation.
var (
	ErrUnauthorized = errors.New("caller identity does not match required identity")
	ErrNotAdmin     = errors.New("caller is not the platform admin")
	ErrNotOwner     = errors.New("caller is not the invoice owner")
)

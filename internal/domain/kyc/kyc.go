package kyc

import (
	"context"
	"errors"
)

var ErrBusinessNotVerified = errors.New("business has not passed verification")

// Verifier answers whether a business may upload invoices. The KYC
// workflow itself lives outside the core.
type Verifier interface {
	IsVerified(ctx context.Context, businessID string) (bool, error)
}

// Registrar records the outcome of an out-of-band KYC review. Only the
// admin-facing ops surface writes through it.
type Registrar interface {
	MarkVerified(ctx context.Context, businessID string) error
}

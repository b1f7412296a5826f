package funds

import (
	"context"
	"errors"
)

var (
	ErrInvalidAmount     = errors.New("transfer amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotAuthorized     = errors.New("transfer not authorized")
	ErrAccountNotFound   = errors.New("account not found")
)

// PlatformAccountID is the custody account that holds escrowed funds and
// collects platform fees.
const PlatformAccountID = "00000000000000000000000000000001"

// Transferer moves funds between accounts. Implementations must verify
// balance (and, for third-party debits, authorization) before moving
// anything; a same-account transfer is a successful no-op.
type Transferer interface {
	Transfer(ctx context.Context, currency, from, to string, amount int64) error
}

// Ledger extends Transferer with the custody operations the ops surface
// uses to fund accounts and grant the platform spending authority.
type Ledger interface {
	Transferer
	Deposit(ctx context.Context, currency, holder string, amount int64) error
	Approve(ctx context.Context, currency, holder string, amount int64) error
	Balance(ctx context.Context, currency, holder string) (int64, error)
}

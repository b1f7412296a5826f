package fundsmock

import (
	"context"

	"quickfactor-backend/internal/domain/funds"
)

var _ funds.Ledger = (*Ledger)(nil)

// Ledger extends Transferer with the custody operations. With no
// function fields set, deposits and approvals succeed and Balance
// reports Balances[currency+":"+holder] (zero when unset).
type Ledger struct {
	Transferer

	Balances map[string]int64

	DepositFn func(ctx context.Context, currency, holder string, amount int64) error
	ApproveFn func(ctx context.Context, currency, holder string, amount int64) error
	BalanceFn func(ctx context.Context, currency, holder string) (int64, error)
}

func (m *Ledger) Deposit(ctx context.Context, currency, holder string, amount int64) error {
	if m.DepositFn != nil {
		return m.DepositFn(ctx, currency, holder, amount)
	}
	return nil
}

func (m *Ledger) Approve(ctx context.Context, currency, holder string, amount int64) error {
	if m.ApproveFn != nil {
		return m.ApproveFn(ctx, currency, holder, amount)
	}
	return nil
}

func (m *Ledger) Balance(ctx context.Context, currency, holder string) (int64, error) {
	if m.BalanceFn != nil {
		return m.BalanceFn(ctx, currency, holder)
	}
	return m.Balances[currency+":"+holder], nil
}

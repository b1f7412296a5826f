package fundsmock

import (
	"context"
	"sync"

	"quickfactor-backend/internal/domain/funds"
)

var _ funds.Transferer = (*Transferer)(nil)

// Call records one Transfer invocation.
type Call struct {
	Currency string
	From     string
	To       string
	Amount   int64
}

// Transferer records every transfer and optionally delegates to
// TransferFn. With no TransferFn every transfer succeeds.
type Transferer struct {
	mu    sync.Mutex
	calls []Call

	TransferFn func(ctx context.Context, currency, from, to string, amount int64) error
}

func (m *Transferer) Transfer(ctx context.Context, currency, from, to string, amount int64) error {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Currency: currency, From: from, To: to, Amount: amount})
	m.mu.Unlock()
	if m.TransferFn != nil {
		return m.TransferFn(ctx, currency, from, to, amount)
	}
	return nil
}

func (m *Transferer) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

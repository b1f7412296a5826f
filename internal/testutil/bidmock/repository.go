package bidmock

import (
	"context"
	"time"

	domain "quickfactor-backend/internal/domain/bid"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, b *domain.Bid) error
	GetByBidIDFn               func(ctx context.Context, bidID string) (*domain.Bid, error)
	SaveFn                     func(ctx context.Context, b *domain.Bid) error
	ListByInvoiceFn            func(ctx context.Context, invoiceID string) ([]domain.Bid, error)
	ListByInvoiceAndStatusFn   func(ctx context.Context, invoiceID string, status domain.Status) ([]domain.Bid, error)
	ListByInvoiceAndInvestorFn func(ctx context.Context, invoiceID, investorID string) ([]domain.Bid, error)
	DeleteExpiredFn            func(ctx context.Context, invoiceID string, now time.Time) (int64, error)
}

func (m *Repo) Create(ctx context.Context, b *domain.Bid) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBidID(ctx context.Context, bidID string) (*domain.Bid, error) {
	if m.GetByBidIDFn != nil {
		return m.GetByBidIDFn(ctx, bidID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, b *domain.Bid) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *Repo) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.Bid, error) {
	if m.ListByInvoiceFn != nil {
		return m.ListByInvoiceFn(ctx, invoiceID)
	}
	return nil, nil
}

func (m *Repo) ListByInvoiceAndStatus(ctx context.Context, invoiceID string, status domain.Status) ([]domain.Bid, error) {
	if m.ListByInvoiceAndStatusFn != nil {
		return m.ListByInvoiceAndStatusFn(ctx, invoiceID, status)
	}
	return nil, nil
}

func (m *Repo) ListByInvoiceAndInvestor(ctx context.Context, invoiceID, investorID string) ([]domain.Bid, error) {
	if m.ListByInvoiceAndInvestorFn != nil {
		return m.ListByInvoiceAndInvestorFn(ctx, invoiceID, investorID)
	}
	return nil, nil
}

func (m *Repo) DeleteExpired(ctx context.Context, invoiceID string, now time.Time) (int64, error) {
	if m.DeleteExpiredFn != nil {
		return m.DeleteExpiredFn(ctx, invoiceID, now)
	}
	return 0, nil
}

package investmentmock

import (
	"context"

	domain "quickfactor-backend/internal/domain/investment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, inv *domain.Investment) error
	GetByInvestmentIDFn func(ctx context.Context, investmentID string) (*domain.Investment, error)
	GetByInvoiceIDFn    func(ctx context.Context, invoiceID string) (*domain.Investment, error)
	SaveFn              func(ctx context.Context, inv *domain.Investment) error
}

func (m *Repo) Create(ctx context.Context, inv *domain.Investment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}

func (m *Repo) GetByInvestmentID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	if m.GetByInvestmentIDFn != nil {
		return m.GetByInvestmentIDFn(ctx, investmentID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Investment, error) {
	if m.GetByInvoiceIDFn != nil {
		return m.GetByInvoiceIDFn(ctx, invoiceID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, inv *domain.Investment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, inv)
	}
	return nil
}

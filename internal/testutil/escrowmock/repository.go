package escrowmock

import (
	"context"

	domain "quickfactor-backend/internal/domain/escrow"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, e *domain.Escrow) error
	GetByInvoiceIDFn func(ctx context.Context, invoiceID string) (*domain.Escrow, error)
	SaveFn           func(ctx context.Context, e *domain.Escrow) error
}

func (m *Repo) Create(ctx context.Context, e *domain.Escrow) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Escrow, error) {
	if m.GetByInvoiceIDFn != nil {
		return m.GetByInvoiceIDFn(ctx, invoiceID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, e *domain.Escrow) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

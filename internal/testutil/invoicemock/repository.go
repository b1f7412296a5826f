package invoicemock

import (
	"context"

	domain "quickfactor-backend/internal/domain/invoice"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                  func(ctx context.Context, inv *domain.Invoice) error
	GetByInvoiceIDFn          func(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	GetByInvoiceIDForUpdateFn func(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	SaveFn                    func(ctx context.Context, inv *domain.Invoice) error
	ListByStatusFn            func(ctx context.Context, status domain.Status) ([]domain.Invoice, error)
	ListByBusinessFn          func(ctx context.Context, businessID string) ([]domain.Invoice, error)
	AppendPaymentFn           func(ctx context.Context, rec *domain.PaymentRecord) error
	ListPaymentsFn            func(ctx context.Context, invoiceID string) ([]domain.PaymentRecord, error)
}

func (m *Repo) Create(ctx context.Context, inv *domain.Invoice) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}

func (m *Repo) GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if m.GetByInvoiceIDFn != nil {
		return m.GetByInvoiceIDFn(ctx, invoiceID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if m.GetByInvoiceIDForUpdateFn != nil {
		return m.GetByInvoiceIDForUpdateFn(ctx, invoiceID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, inv *domain.Invoice) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, inv)
	}
	return nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Invoice, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) ListByBusiness(ctx context.Context, businessID string) ([]domain.Invoice, error) {
	if m.ListByBusinessFn != nil {
		return m.ListByBusinessFn(ctx, businessID)
	}
	return nil, nil
}

func (m *Repo) AppendPayment(ctx context.Context, rec *domain.PaymentRecord) error {
	if m.AppendPaymentFn != nil {
		return m.AppendPaymentFn(ctx, rec)
	}
	return nil
}

func (m *Repo) ListPayments(ctx context.Context, invoiceID string) ([]domain.PaymentRecord, error) {
	if m.ListPaymentsFn != nil {
		return m.ListPaymentsFn(ctx, invoiceID)
	}
	return nil, nil
}

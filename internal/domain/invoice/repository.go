package invoice

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Invoice, error)
	GetByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*Invoice, error)
	Save(ctx context.Context, inv *Invoice) error

	ListByStatus(ctx context.Context, status Status) ([]Invoice, error)
	ListByBusiness(ctx context.Context, businessID string) ([]Invoice, error)

	AppendPayment(ctx context.Context, rec *PaymentRecord) error
	ListPayments(ctx context.Context, invoiceID string) ([]PaymentRecord, error)
}

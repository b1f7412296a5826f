package investment

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	GetByInvestmentID(ctx context.Context, investmentID string) (*Investment, error)
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Investment, error)
	Save(ctx context.Context, inv *Investment) error
}

package escrow

import "context"

type Repository interface {
	Create(ctx context.Context, e *Escrow) error
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Escrow, error)
	Save(ctx context.Context, e *Escrow) error
}

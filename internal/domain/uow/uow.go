package uow

import (
	"context"

	"quickfactor-backend/internal/domain/bid"
	"quickfactor-backend/internal/domain/escrow"
	"quickfactor-backend/internal/domain/fee"
	"quickfactor-backend/internal/domain/investment"
	"quickfactor-backend/internal/domain/invoice"
)

type Repos struct {
	Invoices    invoice.Repository
	Bids        bid.Repository
	Escrows     escrow.Repository
	Investments investment.Repository
	Fees        fee.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the invoice row first, then pass it in
	WithinInvoiceTx(ctx context.Context, invoiceID string, fn func(r Repos, inv *invoice.Invoice) error) error
}

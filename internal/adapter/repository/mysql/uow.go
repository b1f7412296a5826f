package mysql

import (
	"context"

	"gorm.io/gorm"

	"quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Invoices:    &InvoiceRepository{db: tx},
		Bids:        &BidRepository{db: tx},
		Escrows:     &EscrowRepository{db: tx},
		Investments: &InvestmentRepository{db: tx},
		Fees:        &FeeRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinInvoiceTx(ctx context.Context, invoiceID string, fn func(r uow.Repos, inv *invoice.Invoice) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the invoice row up-front to serialize competing operations
		inv, err := r.Invoices.GetByInvoiceIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		return fn(r, inv)
	})
}

package mysql

import (
	"context"

	"gorm.io/gorm"

	escrowDomain "quickfactor-backend/internal/domain/escrow"
)

type EscrowRepository struct{ db *gorm.DB }

func NewEscrowRepository(db *gorm.DB) *EscrowRepository { return &EscrowRepository{db: db} }

func (r *EscrowRepository) Create(ctx context.Context, e *escrowDomain.Escrow) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EscrowRepository) Save(ctx context.Context, e *escrowDomain.Escrow) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EscrowRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*escrowDomain.Escrow, error) {
	var out escrowDomain.Escrow
	res := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&out)
	if res.Error != nil {
		if res.Error == gorm.ErrRecordNotFound {
			return nil, escrowDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

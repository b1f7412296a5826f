package mysql

import (
	"context"

	"gorm.io/gorm"

	investmentDomain "quickfactor-backend/internal/domain/investment"
)

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *investmentDomain.Investment) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

// Save persists the investment and any insurance rows added or flipped
// on it.
func (r *InvestmentRepository) Save(ctx context.Context, inv *investmentDomain.Investment) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(inv).Error
}

func (r *InvestmentRepository) GetByInvestmentID(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := r.db.WithContext(ctx).
		Preload("Insurance").
		Where("investment_id = ?", investmentID).
		First(&out)
	return &out, res.Error
}

func (r *InvestmentRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := r.db.WithContext(ctx).
		Preload("Insurance").
		Where("invoice_id = ?", invoiceID).
		First(&out)
	return &out, res.Error
}

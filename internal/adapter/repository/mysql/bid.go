package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	bidDomain "quickfactor-backend/internal/domain/bid"
)

type BidRepository struct{ db *gorm.DB }

func NewBidRepository(db *gorm.DB) *BidRepository { return &BidRepository{db: db} }

func (r *BidRepository) Create(ctx context.Context, b *bidDomain.Bid) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BidRepository) Save(ctx context.Context, b *bidDomain.Bid) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BidRepository) GetByBidID(ctx context.Context, bidID string) (*bidDomain.Bid, error) {
	var out bidDomain.Bid
	res := r.db.WithContext(ctx).Where("bid_id = ?", bidID).First(&out)
	return &out, res.Error
}

func (r *BidRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]bidDomain.Bid, error) {
	var out []bidDomain.Bid
	res := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("placed_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *BidRepository) ListByInvoiceAndStatus(ctx context.Context, invoiceID string, status bidDomain.Status) ([]bidDomain.Bid, error) {
	var out []bidDomain.Bid
	res := r.db.WithContext(ctx).
		Where("invoice_id = ? AND status = ?", invoiceID, status).
		Order("placed_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *BidRepository) ListByInvoiceAndInvestor(ctx context.Context, invoiceID, investorID string) ([]bidDomain.Bid, error) {
	var out []bidDomain.Bid
	res := r.db.WithContext(ctx).
		Where("invoice_id = ? AND investor_id = ?", invoiceID, investorID).
		Order("placed_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *BidRepository) DeleteExpired(ctx context.Context, invoiceID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("invoice_id = ? AND status = ? AND expires_at < ?", invoiceID, bidDomain.StatusPlaced, now).
		Delete(&bidDomain.Bid{})
	return res.RowsAffected, res.Error
}

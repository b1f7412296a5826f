package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	invoiceDomain "quickfactor-backend/internal/domain/invoice"
)

type InvoiceRepository struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository { return &InvoiceRepository{db: db} }

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoiceDomain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceRepository) Save(ctx context.Context, inv *invoiceDomain.Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvoiceRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*invoiceDomain.Invoice, error) {
	var out invoiceDomain.Invoice
	res := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&out)
	return &out, res.Error
}

// GetByInvoiceIDForUpdate locks the invoice row for the transaction.
func (r *InvoiceRepository) GetByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*invoiceDomain.Invoice, error) {
	var out invoiceDomain.Invoice
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("invoice_id = ?", invoiceID).
		First(&out)
	return &out, res.Error
}

func (r *InvoiceRepository) ListByStatus(ctx context.Context, status invoiceDomain.Status) ([]invoiceDomain.Invoice, error) {
	var out []invoiceDomain.Invoice
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *InvoiceRepository) ListByBusiness(ctx context.Context, businessID string) ([]invoiceDomain.Invoice, error) {
	var out []invoiceDomain.Invoice
	res := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *InvoiceRepository) AppendPayment(ctx context.Context, rec *invoiceDomain.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *InvoiceRepository) ListPayments(ctx context.Context, invoiceID string) ([]invoiceDomain.PaymentRecord, error) {
	var out []invoiceDomain.PaymentRecord
	res := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("paid_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

package invoice

import (
	"errors"
	"time"

	"quickfactor-backend/pkg/money"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusVerified  Status = "verified"
	StatusFunded    Status = "funded"
	StatusPaid      Status = "paid"
	StatusDefaulted Status = "defaulted"
)

type DisputeStatus string

const (
	DisputeNone        DisputeStatus = "none"
	DisputeDisputed    DisputeStatus = "disputed"
	DisputeUnderReview DisputeStatus = "under_review"
	DisputeResolved    DisputeStatus = "resolved"
)

var (
	ErrNotFound           = errors.New("invoice not found")
	ErrInvalidAmount      = errors.New("invoice amount must be positive")
	ErrInvalidDueDate     = errors.New("invoice due date must be in the future")
	ErrInvalidDescription = errors.New("invoice description must not be empty")
	ErrInvalidStatus      = errors.New("invalid invoice status for this operation")
	ErrInvalidDispute     = errors.New("invalid dispute status for this operation")
)

type Invoice struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"-"`
	InvoiceID    string     `gorm:"size:32;uniqueIndex:ux_invoices_invoice_id" json:"invoice_id"`
	BusinessID   string     `gorm:"size:32;index:idx_invoices_business" json:"business_id"`
	Amount       int64      `gorm:"not null" json:"amount"`
	Currency     string     `gorm:"size:16;not null" json:"currency"`
	DueDate      time.Time  `gorm:"not null" json:"due_date"`
	Description  string     `gorm:"type:text" json:"description"`
	Status       Status     `gorm:"type:enum('pending','verified','funded','paid','defaulted');default:'pending';index:idx_invoices_status" json:"status"`
	FundedAmount int64      `gorm:"default:0" json:"funded_amount"`
	FundedAt     *time.Time `json:"funded_at,omitempty"`
	InvestorID   *string    `gorm:"size:32" json:"investor_id,omitempty"`
	SettledAt    *time.Time `json:"settled_at,omitempty"`
	TotalPaid    int64      `gorm:"default:0" json:"total_paid"`

	DisputeStatus DisputeStatus `gorm:"type:enum('none','disputed','under_review','resolved');default:'none'" json:"dispute_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// PaymentRecord is an append-only row per repayment against an invoice.
type PaymentRecord struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	InvoiceRef uint64    `gorm:"column:invoice_ref;not null;index:idx_payments_invoice" json:"-"`
	InvoiceID  string    `gorm:"size:32;index" json:"invoice_id"`
	Amount     int64     `gorm:"not null" json:"amount"`
	TxRef      string    `gorm:"size:64" json:"tx_ref"`
	PaidAt     time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"-"`
}

func (PaymentRecord) TableName() string { return "invoice_payments" }

// Verify moves a pending invoice to verified.
func (i *Invoice) Verify() error {
	if i.Status != StatusPending {
		return ErrInvalidStatus
	}
	i.Status = StatusVerified
	return nil
}

// MarkFunded records the winning investor. The caller guarantees the
// invoice is verified.
func (i *Invoice) MarkFunded(investorID string, amount int64, at time.Time) {
	i.Status = StatusFunded
	i.FundedAmount = amount
	i.FundedAt = &at
	i.InvestorID = &investorID
}

func (i *Invoice) MarkPaid(at time.Time) {
	i.Status = StatusPaid
	i.SettledAt = &at
}

func (i *Invoice) MarkDefaulted() {
	i.Status = StatusDefaulted
}

// RecordPayment appends a payment and bumps the running total, clamping
// instead of overflowing. Returns the record and the progress percentage.
func (i *Invoice) RecordPayment(amount int64, txRef string, at time.Time) (*PaymentRecord, int, error) {
	if amount <= 0 {
		return nil, 0, ErrInvalidAmount
	}
	i.TotalPaid = money.SatAdd(i.TotalPaid, amount)
	rec := &PaymentRecord{
		InvoiceRef: i.ID,
		InvoiceID:  i.InvoiceID,
		Amount:     amount,
		TxRef:      txRef,
		PaidAt:     at,
	}
	return rec, i.PaymentProgress(), nil
}

// PaymentProgress is 0-100, total paid against face value.
func (i *Invoice) PaymentProgress() int {
	if i.Amount <= 0 {
		return 0
	}
	paid := money.Max(i.TotalPaid, 0)
	pct := money.SatMul(paid, 100) / money.Max(i.Amount, 1)
	return int(money.Min(pct, 100))
}

func (i *Invoice) IsFullyPaid() bool { return i.TotalPaid >= i.Amount }

func (i *Invoice) IsOverdue(now time.Time) bool { return now.After(i.DueDate) }

// GraceDeadline is due date plus the grace period, clamped so a huge
// grace period cannot wrap the timestamp.
func (i *Invoice) GraceDeadline(grace time.Duration) time.Time {
	deadline := i.DueDate.Add(grace)
	if grace > 0 && deadline.Before(i.DueDate) {
		return time.Unix(1<<62, 0)
	}
	return deadline
}

// SetDisputeStatus validates the dispute flag transition. The flag is
// informational only and never gates settlement or default handling.
func (i *Invoice) SetDisputeStatus(next DisputeStatus) error {
	switch next {
	case DisputeDisputed:
		if i.DisputeStatus != DisputeNone {
			return ErrInvalidDispute
		}
	case DisputeUnderReview:
		if i.DisputeStatus != DisputeDisputed {
			return ErrInvalidDispute
		}
	case DisputeResolved:
		if i.DisputeStatus != DisputeUnderReview {
			return ErrInvalidDispute
		}
	default:
		return ErrInvalidDispute
	}
	i.DisputeStatus = next
	return nil
}

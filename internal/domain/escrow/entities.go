package escrow

import (
	"errors"
	"time"
)

type Status string

const (
	StatusHeld     Status = "held"
	StatusReleased Status = "released"
	StatusRefunded Status = "refunded"
)

var (
	ErrNotFound = errors.New("escrow not found for invoice")
	ErrNotHeld  = errors.New("escrow is not in held status")
)

// Escrow custodies the accepted bid amount between funding and
// release/refund. Exactly one per invoice, terminal once resolved.
type Escrow struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	EscrowID   string    `gorm:"size:32;uniqueIndex:ux_escrows_escrow_id" json:"escrow_id"`
	InvoiceID  string    `gorm:"size:32;uniqueIndex:ux_escrows_invoice" json:"invoice_id"`
	InvestorID string    `gorm:"size:32;not null" json:"investor_id"`
	BusinessID string    `gorm:"size:32;not null" json:"business_id"`
	Amount     int64     `gorm:"not null" json:"amount"`
	Currency   string    `gorm:"size:16;not null" json:"currency"`
	Status     Status    `gorm:"type:enum('held','released','refunded');default:'held'" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Escrow) TableName() string { return "escrows" }

func (e *Escrow) Release() error {
	if e.Status != StatusHeld {
		return ErrNotHeld
	}
	e.Status = StatusReleased
	return nil
}

func (e *Escrow) Refund() error {
	if e.Status != StatusHeld {
		return ErrNotHeld
	}
	e.Status = StatusRefunded
	return nil
}

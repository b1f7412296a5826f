package bid

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, b *Bid) error
	GetByBidID(ctx context.Context, bidID string) (*Bid, error)
	Save(ctx context.Context, b *Bid) error

	ListByInvoice(ctx context.Context, invoiceID string) ([]Bid, error)
	ListByInvoiceAndStatus(ctx context.Context, invoiceID string, status Status) ([]Bid, error)
	ListByInvoiceAndInvestor(ctx context.Context, invoiceID, investorID string) ([]Bid, error)

	// DeleteExpired evicts placed bids whose expiry has passed and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, invoiceID string, now time.Time) (int64, error)
}

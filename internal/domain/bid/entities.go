package bid

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPlaced    Status = "placed"
	StatusWithdrawn Status = "withdrawn"
	StatusAccepted  Status = "accepted"
)

var (
	ErrNotFound          = errors.New("bid not found")
	ErrInvalidAmount     = errors.New("bid amount or expected return invalid")
	ErrExceedsInvoice    = errors.New("bid amount exceeds invoice amount")
	ErrDuplicateBid      = errors.New("investor already has a placed bid on this invoice")
	ErrNotPlaced         = errors.New("bid is not in placed status")
	ErrNotBidOwner       = errors.New("caller is not the bid's investor")
	ErrInvoiceNotBidding = errors.New("invoice is not open for bidding")
)

type Bid struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	BidID          string    `gorm:"size:32;uniqueIndex:ux_bids_bid_id" json:"bid_id"`
	InvoiceID      string    `gorm:"size:32;index:idx_bids_invoice" json:"invoice_id"`
	InvestorID     string    `gorm:"size:32;index:idx_bids_investor" json:"investor_id"`
	BidAmount      int64     `gorm:"not null" json:"bid_amount"`
	ExpectedReturn int64     `gorm:"not null" json:"expected_return"`
	Status         Status    `gorm:"type:enum('placed','withdrawn','accepted');default:'placed'" json:"status"`
	PlacedAt       time.Time `gorm:"not null" json:"placed_at"`
	ExpiresAt      time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Bid) TableName() string { return "bids" }

func (b *Bid) Profit() int64 { return b.ExpectedReturn - b.BidAmount }

func (b *Bid) IsExpired(now time.Time) bool {
	return b.Status == StatusPlaced && now.After(b.ExpiresAt)
}

// Compare is the platform ranking: higher profit wins, then higher
// expected return, then higher amount, then the earlier bid. Returns >0
// when a outranks b, <0 when b outranks a, 0 only for identical tuples.
func Compare(a, b *Bid) int {
	if pa, pb := a.Profit(), b.Profit(); pa != pb {
		return cmp64(pa, pb)
	}
	if a.ExpectedReturn != b.ExpectedReturn {
		return cmp64(a.ExpectedReturn, b.ExpectedReturn)
	}
	if a.BidAmount != b.BidAmount {
		return cmp64(a.BidAmount, b.BidAmount)
	}
	if !a.PlacedAt.Equal(b.PlacedAt) {
		if a.PlacedAt.Before(b.PlacedAt) {
			return 1
		}
		return -1
	}
	return 0
}

func cmp64(a, b int64) int {
	if a > b {
		return 1
	}
	if a < b {
		return -1
	}
	return 0
}

// Best returns the top-ranked bid, or nil for an empty set.
func Best(bids []Bid) *Bid {
	if len(bids) == 0 {
		return nil
	}
	best := &bids[0]
	for i := 1; i < len(bids); i++ {
		if Compare(&bids[i], best) > 0 {
			best = &bids[i]
		}
	}
	return best
}

// Rank sorts descending under Compare by repeatedly extracting the best
// of the remaining set.
func Rank(bids []Bid) []Bid {
	remaining := make([]Bid, len(bids))
	copy(remaining, bids)
	ranked := make([]Bid, 0, len(bids))
	for len(remaining) > 0 {
		bestIdx := 0
		for i := 1; i < len(remaining); i++ {
			if Compare(&remaining[i], &remaining[bestIdx]) > 0 {
				bestIdx = i
			}
		}
		ranked = append(ranked, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return ranked
}

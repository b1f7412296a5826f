package bid

import (
	"time"

	domain "quickfactor-backend/internal/domain/bid"
)

type PlaceInput struct {
	InvestorID     string `json:"investor_id"`
	InvoiceID      string `json:"invoice_id"`
	BidAmount      int64  `json:"bid_amount"`
	ExpectedReturn int64  `json:"expected_return"`
}

type BidDTO struct {
	BidID          string    `json:"bid_id"`
	InvoiceID      string    `json:"invoice_id"`
	InvestorID     string    `json:"investor_id"`
	BidAmount      int64     `json:"bid_amount"`
	ExpectedReturn int64     `json:"expected_return"`
	Status         string    `json:"status"`
	PlacedAt       time.Time `json:"placed_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func toDTO(b *domain.Bid) *BidDTO {
	return &BidDTO{
		BidID:          b.BidID,
		InvoiceID:      b.InvoiceID,
		InvestorID:     b.InvestorID,
		BidAmount:      b.BidAmount,
		ExpectedReturn: b.ExpectedReturn,
		Status:         string(b.Status),
		PlacedAt:       b.PlacedAt,
		ExpiresAt:      b.ExpiresAt,
	}
}

func toDTOs(bids []domain.Bid) []BidDTO {
	out := make([]BidDTO, 0, len(bids))
	for i := range bids {
		out = append(out, *toDTO(&bids[i]))
	}
	return out
}

package invoice

import (
	"time"

	domain "quickfactor-backend/internal/domain/invoice"
)

type UploadInput struct {
	BusinessID  string    `json:"business_id"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	DueDate     time.Time `json:"due_date"`
	Description string    `json:"description"`
}

type InvoiceDTO struct {
	InvoiceID     string     `json:"invoice_id"`
	BusinessID    string     `json:"business_id"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	DueDate       time.Time  `json:"due_date"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	FundedAmount  int64      `json:"funded_amount"`
	FundedAt      *time.Time `json:"funded_at,omitempty"`
	InvestorID    *string    `json:"investor_id,omitempty"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
	TotalPaid     int64      `json:"total_paid"`
	Progress      int        `json:"payment_progress"`
	DisputeStatus string     `json:"dispute_status"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toDTO(inv *domain.Invoice) *InvoiceDTO {
	return &InvoiceDTO{
		InvoiceID:     inv.InvoiceID,
		BusinessID:    inv.BusinessID,
		Amount:        inv.Amount,
		Currency:      inv.Currency,
		DueDate:       inv.DueDate,
		Description:   inv.Description,
		Status:        string(inv.Status),
		FundedAmount:  inv.FundedAmount,
		FundedAt:      inv.FundedAt,
		InvestorID:    inv.InvestorID,
		SettledAt:     inv.SettledAt,
		TotalPaid:     inv.TotalPaid,
		Progress:      inv.PaymentProgress(),
		DisputeStatus: string(inv.DisputeStatus),
		CreatedAt:     inv.CreatedAt,
	}
}

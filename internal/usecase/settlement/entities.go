package settlement

import "errors"

var (
	ErrPaymentTooLow = errors.New("payment does not cover principal and invoice amount")
	ErrNoInvestor    = errors.New("invoice has no bound investor")
)

type PartialPaymentInput struct {
	InvoiceID string `json:"invoice_id"`
	Amount    int64  `json:"amount"`
	TxRef     string `json:"tx_ref"`
}

type PaymentResult struct {
	InvoiceID string `json:"invoice_id"`
	TotalPaid int64  `json:"total_paid"`
	Progress  int    `json:"payment_progress"`
	Settled   bool   `json:"settled"`
}

type SettlementResult struct {
	InvoiceID      string `json:"invoice_id"`
	TotalPaid      int64  `json:"total_paid"`
	InvestorReturn int64  `json:"investor_return"`
	PlatformFee    int64  `json:"platform_fee"`
}

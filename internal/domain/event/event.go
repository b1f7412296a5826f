package event

import "context"

// Kind names every lifecycle notification the engine emits.
type Kind string

const (
	InvoiceUploaded      Kind = "invoice.uploaded"
	InvoiceVerified      Kind = "invoice.verified"
	InvoiceStatusChanged Kind = "invoice.status_changed"
	InvoiceSettled       Kind = "invoice.settled"
	InvoiceDefaulted     Kind = "invoice.defaulted"
	BidReceived          Kind = "bid.received"
	BidAccepted          Kind = "bid.accepted"
	PaymentReceived      Kind = "payment.received"
	EscrowCreated        Kind = "escrow.created"
	EscrowReleased       Kind = "escrow.released"
	EscrowRefunded       Kind = "escrow.refunded"
	InsuranceClaimed     Kind = "insurance.claimed"
	DisputeOpened        Kind = "dispute.opened"
	DisputeUnderReview   Kind = "dispute.under_review"
	DisputeResolved      Kind = "dispute.resolved"
)

// Event is one notification to emit after a usecase commits. Payload
// holds small scalar facts (ids, amounts, statuses).
type Event struct {
	Kind    Kind           `json:"kind"`
	Payload map[string]any `json:"payload"`
}

func New(kind Kind, payload map[string]any) Event {
	return Event{Kind: kind, Payload: payload}
}

// Dispatcher delivers events best-effort. The core never reads a result
// from it; implementations log their own failures.
type Dispatcher interface {
	Dispatch(ctx context.Context, events ...Event)
}

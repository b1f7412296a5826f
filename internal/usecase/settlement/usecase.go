package settlement

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"quickfactor-backend/internal/domain/auth"
	"quickfactor-backend/internal/domain/event"
	"quickfactor-backend/internal/domain/funds"
	investmentdomain "quickfactor-backend/internal/domain/investment"
	invoicedomain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/domain/uow"
	"quickfactor-backend/pkg/clock"
	"quickfactor-backend/pkg/money"
)

type Usecase struct {
	uow      uow.UnitOfWork
	funds    funds.Transferer
	clock    clock.Clock
	dispatch event.Dispatcher
}

func NewUsecase(tx uow.UnitOfWork, transferer funds.Transferer, clk clock.Clock, d event.Dispatcher) *Usecase {
	return &Usecase{uow: tx, funds: transferer, clock: clk, dispatch: d}
}

// ProcessPartialPayment records a repayment from the business against a
// funded invoice. Once the accumulated total covers the face value the
// invoice is settled in the same transaction, so settlement fires exactly
// once.
func (u *Usecase) ProcessPartialPayment(ctx context.Context, actorID string, in PartialPaymentInput) (*PaymentResult, error) {
	if in.Amount <= 0 {
		return nil, invoicedomain.ErrInvalidAmount
	}
	var (
		result *PaymentResult
		events []event.Event
	)
	err := u.uow.WithinInvoiceTx(ctx, in.InvoiceID, func(r uow.Repos, inv *invoicedomain.Invoice) error {
		if inv.Status != invoicedomain.StatusFunded {
			return invoicedomain.ErrInvalidStatus
		}
		if actorID != inv.BusinessID {
			return auth.ErrNotOwner
		}
		now := u.clock.Now()
		rec, progress, err := inv.RecordPayment(in.Amount, in.TxRef, now)
		if err != nil {
			return err
		}
		if err := r.Invoices.AppendPayment(ctx, rec); err != nil {
			return err
		}
		if err := r.Invoices.Save(ctx, inv); err != nil {
			return err
		}
		events = append(events, event.New(event.PaymentReceived, map[string]any{
			"invoice_id": inv.InvoiceID,
			"amount":     in.Amount,
			"total_paid": inv.TotalPaid,
			"progress":   progress,
			"tx_ref":     in.TxRef,
			"final":      false,
		}))
		result = &PaymentResult{
			InvoiceID: inv.InvoiceID,
			TotalPaid: inv.TotalPaid,
			Progress:  progress,
		}
		if inv.IsFullyPaid() {
			if _, err := u.settle(ctx, r, inv, inv.TotalPaid, now, &events); err != nil {
				return err
			}
			result.Settled = true
			result.TotalPaid = inv.TotalPaid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.dispatch.Dispatch(ctx, events...)
	return result, nil
}

// Settle closes out a funded invoice against a repayment amount,
// splitting it between investor return and platform fee.
func (u *Usecase) Settle(ctx context.Context, invoiceID string, paymentAmount int64) (*SettlementResult, error) {
	if paymentAmount <= 0 {
		return nil, invoicedomain.ErrInvalidAmount
	}
	var (
		result *SettlementResult
		events []event.Event
	)
	err := u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *invoicedomain.Invoice) error {
		var err error
		result, err = u.settle(ctx, r, inv, paymentAmount, u.clock.Now(), &events)
		return err
	})
	if err != nil {
		return nil, err
	}
	u.dispatch.Dispatch(ctx, events...)
	return result, nil
}

// settle runs inside an invoice-locked transaction. Any failure, a funds
// transfer included, rolls back every mutation made here.
func (u *Usecase) settle(ctx context.Context, r uow.Repos, inv *invoicedomain.Invoice, paymentAmount int64, now time.Time, events *[]event.Event) (*SettlementResult, error) {
	if inv.Status != invoicedomain.StatusFunded {
		return nil, invoicedomain.ErrInvalidStatus
	}
	if inv.InvestorID == nil {
		return nil, ErrNoInvestor
	}
	investorID := *inv.InvestorID

	investm, err := r.Investments.GetByInvoiceID(ctx, inv.InvoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investmentdomain.ErrNotFound
		}
		return nil, err
	}

	// Reconcile the recorded total with the payment attempt before
	// judging sufficiency.
	total := inv.TotalPaid
	switch {
	case total == 0:
		rec, _, err := inv.RecordPayment(paymentAmount, "settlement", now)
		if err != nil {
			return nil, err
		}
		if err := r.Invoices.AppendPayment(ctx, rec); err != nil {
			return nil, err
		}
		total = inv.TotalPaid
	case paymentAmount > total:
		additional := money.SatSub(paymentAmount, total)
		rec, _, err := inv.RecordPayment(additional, "settlement_adj", now)
		if err != nil {
			return nil, err
		}
		if err := r.Invoices.AppendPayment(ctx, rec); err != nil {
			return nil, err
		}
		total = inv.TotalPaid
	default:
		total = money.Max(total, paymentAmount)
		inv.TotalPaid = total
	}

	if total < investm.Amount || total < inv.Amount {
		return nil, ErrPaymentTooLow
	}

	feeCfg, err := r.Fees.Get(ctx)
	if err != nil {
		return nil, err
	}
	split := feeCfg.SplitPayment(investm.Amount, total)

	if err := u.funds.Transfer(ctx, inv.Currency, inv.BusinessID, investorID, split.InvestorReturn); err != nil {
		return nil, err
	}
	if split.PlatformFee > 0 {
		if err := u.funds.Transfer(ctx, inv.Currency, inv.BusinessID, funds.PlatformAccountID, split.PlatformFee); err != nil {
			return nil, err
		}
	}

	inv.MarkPaid(now)
	if err := r.Invoices.Save(ctx, inv); err != nil {
		return nil, err
	}

	investm.Status = investmentdomain.StatusCompleted
	if err := r.Investments.Save(ctx, investm); err != nil {
		return nil, err
	}

	*events = append(*events,
		event.New(event.PaymentReceived, map[string]any{
			"invoice_id": inv.InvoiceID,
			"amount":     total,
			"total_paid": total,
			"progress":   inv.PaymentProgress(),
			"final":      true,
		}),
		event.New(event.InvoiceSettled, map[string]any{
			"invoice_id":      inv.InvoiceID,
			"investor_return": split.InvestorReturn,
			"platform_fee":    split.PlatformFee,
		}),
		event.New(event.InvoiceStatusChanged, map[string]any{
			"invoice_id": inv.InvoiceID,
			"from":       string(invoicedomain.StatusFunded),
			"to":         string(invoicedomain.StatusPaid),
		}),
	)
	return &SettlementResult{
		InvoiceID:      inv.InvoiceID,
		TotalPaid:      total,
		InvestorReturn: split.InvestorReturn,
		PlatformFee:    split.PlatformFee,
	}, nil
}

package defaults

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"quickfactor-backend/internal/domain/event"
	investmentdomain "quickfactor-backend/internal/domain/investment"
	invoicedomain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/domain/uow"
	"quickfactor-backend/pkg/clock"
)

// ErrNotOverdue: the invoice's due date has not passed yet.
var ErrNotOverdue = errors.New("invoice is not overdue")

type Usecase struct {
	repo     invoicedomain.Repository
	uow      uow.UnitOfWork
	clock    clock.Clock
	dispatch event.Dispatcher
	grace    time.Duration
}

func NewUsecase(repo invoicedomain.Repository, tx uow.UnitOfWork, clk clock.Clock, d event.Dispatcher, gracePeriod time.Duration) *Usecase {
	return &Usecase{repo: repo, uow: tx, clock: clk, dispatch: d, grace: gracePeriod}
}

type DefaultResult struct {
	InvoiceID      string `json:"invoice_id"`
	InvestmentID   string `json:"investment_id,omitempty"`
	ClaimProvider  string `json:"claim_provider,omitempty"`
	ClaimAmount    int64  `json:"claim_amount,omitempty"`
	InsuranceClaim bool   `json:"insurance_claim"`
}

// HandleDefault marks an overdue funded invoice as defaulted, flips its
// investment to defaulted, and processes a pending insurance claim at
// most once.
func (u *Usecase) HandleDefault(ctx context.Context, invoiceID string) (*DefaultResult, error) {
	var (
		result *DefaultResult
		events []event.Event
	)
	err := u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *invoicedomain.Invoice) error {
		if inv.Status != invoicedomain.StatusFunded {
			return invoicedomain.ErrInvalidStatus
		}
		now := u.clock.Now()
		if !inv.IsOverdue(now) {
			return ErrNotOverdue
		}
		inv.MarkDefaulted()
		if err := r.Invoices.Save(ctx, inv); err != nil {
			return err
		}
		result = &DefaultResult{InvoiceID: invoiceID}

		investm, err := r.Investments.GetByInvoiceID(ctx, invoiceID)
		switch {
		case err == nil:
			investm.Status = investmentdomain.StatusDefaulted
			claim := investm.ProcessInsuranceClaim()
			if err := r.Investments.Save(ctx, investm); err != nil {
				return err
			}
			result.InvestmentID = investm.InvestmentID
			if claim != nil && claim.CoverageAmount > 0 {
				result.InsuranceClaim = true
				result.ClaimProvider = claim.ProviderID
				result.ClaimAmount = claim.CoverageAmount
				events = append(events, event.New(event.InsuranceClaimed, map[string]any{
					"investment_id": investm.InvestmentID,
					"invoice_id":    invoiceID,
					"provider_id":   claim.ProviderID,
					"amount":        claim.CoverageAmount,
				}))
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// funded invoice without an investment row: default the
			// invoice anyway
		default:
			return err
		}

		events = append(events,
			event.New(event.InvoiceDefaulted, map[string]any{"invoice_id": invoiceID}),
			event.New(event.InvoiceStatusChanged, map[string]any{
				"invoice_id": invoiceID,
				"from":       string(invoicedomain.StatusFunded),
				"to":         string(invoicedomain.StatusDefaulted),
			}),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.dispatch.Dispatch(ctx, events...)
	return result, nil
}

// CheckAndHandleExpiration defaults the invoice only once the grace
// period after the due date has fully elapsed. Reports whether a default
// was triggered.
func (u *Usecase) CheckAndHandleExpiration(ctx context.Context, invoiceID string) (bool, error) {
	inv, err := u.repo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return false, err
	}
	if inv.Status != invoicedomain.StatusFunded {
		return false, nil
	}
	if !u.clock.Now().After(inv.GraceDeadline(u.grace)) {
		return false, nil
	}
	if _, err := u.HandleDefault(ctx, invoiceID); err != nil {
		return false, err
	}
	return true, nil
}

// SweepFunded runs the expiration check over every funded invoice. The
// scheduler invoking it stays outside the core.
func (u *Usecase) SweepFunded(ctx context.Context) (int, error) {
	invs, err := u.repo.ListByStatus(ctx, invoicedomain.StatusFunded)
	if err != nil {
		return 0, err
	}
	defaulted := 0
	for i := range invs {
		triggered, err := u.CheckAndHandleExpiration(ctx, invs[i].InvoiceID)
		if err != nil {
			return defaulted, err
		}
		if triggered {
			defaulted++
		}
	}
	return defaulted, nil
}

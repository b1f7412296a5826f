package escrow

import (
	"context"
	"time"

	"quickfactor-backend/internal/domain/auth"
	domain "quickfactor-backend/internal/domain/escrow"
	"quickfactor-backend/internal/domain/event"
	"quickfactor-backend/internal/domain/funds"
	invoicedomain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/domain/uow"
	"quickfactor-backend/pkg/id"
)

type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	funds    funds.Transferer
	dispatch event.Dispatcher
	adminID  string
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, transferer funds.Transferer, d event.Dispatcher, adminID string) *Usecase {
	return &Usecase{repo: repo, uow: tx, funds: transferer, dispatch: d, adminID: adminID}
}

// CreateHeld takes custody of the investor's funds for an invoice. It is
// called inside the bid-acceptance transaction so a failed transfer rolls
// the whole acceptance back.
func CreateHeld(ctx context.Context, r uow.Repos, transferer funds.Transferer, inv *invoicedomain.Invoice, investorID string, amount int64, now time.Time) (*domain.Escrow, error) {
	if amount <= 0 {
		return nil, funds.ErrInvalidAmount
	}
	if err := transferer.Transfer(ctx, inv.Currency, investorID, funds.PlatformAccountID, amount); err != nil {
		return nil, err
	}
	esc := &domain.Escrow{
		EscrowID:   id.NewID32(),
		InvoiceID:  inv.InvoiceID,
		InvestorID: investorID,
		BusinessID: inv.BusinessID,
		Amount:     amount,
		Currency:   inv.Currency,
		Status:     domain.StatusHeld,
		CreatedAt:  now,
	}
	if err := r.Escrows.Create(ctx, esc); err != nil {
		return nil, err
	}
	return esc, nil
}

// Release pays the custodied funds out to the business. Admin only, and
// only while the escrow is held.
func (u *Usecase) Release(ctx context.Context, actorID, invoiceID string) error {
	if actorID != u.adminID {
		return auth.ErrNotAdmin
	}
	var esc *domain.Escrow
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		esc, err = r.Escrows.GetByInvoiceID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := esc.Release(); err != nil {
			return err
		}
		if err := u.funds.Transfer(ctx, esc.Currency, funds.PlatformAccountID, esc.BusinessID, esc.Amount); err != nil {
			return err
		}
		return r.Escrows.Save(ctx, esc)
	})
	if err != nil {
		return err
	}
	u.dispatch.Dispatch(ctx, event.New(event.EscrowReleased, map[string]any{
		"escrow_id":  esc.EscrowID,
		"invoice_id": invoiceID,
		"amount":     esc.Amount,
	}))
	return nil
}

// Refund returns the custodied funds to the investor. Admin only, and
// only while the escrow is held.
func (u *Usecase) Refund(ctx context.Context, actorID, invoiceID string) error {
	if actorID != u.adminID {
		return auth.ErrNotAdmin
	}
	var esc *domain.Escrow
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		esc, err = r.Escrows.GetByInvoiceID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := esc.Refund(); err != nil {
			return err
		}
		if err := u.funds.Transfer(ctx, esc.Currency, funds.PlatformAccountID, esc.InvestorID, esc.Amount); err != nil {
			return err
		}
		return r.Escrows.Save(ctx, esc)
	})
	if err != nil {
		return err
	}
	u.dispatch.Dispatch(ctx, event.New(event.EscrowRefunded, map[string]any{
		"escrow_id":  esc.EscrowID,
		"invoice_id": invoiceID,
		"amount":     esc.Amount,
	}))
	return nil
}

func (u *Usecase) Get(ctx context.Context, invoiceID string) (*domain.Escrow, error) {
	return u.repo.GetByInvoiceID(ctx, invoiceID)
}

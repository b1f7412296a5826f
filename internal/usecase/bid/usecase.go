package bid

import (
	"context"
	"time"

	"quickfactor-backend/internal/domain/auth"
	domain "quickfactor-backend/internal/domain/bid"
	"quickfactor-backend/internal/domain/event"
	"quickfactor-backend/internal/domain/funds"
	investmentdomain "quickfactor-backend/internal/domain/investment"
	invoicedomain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/domain/uow"
	escrowuc "quickfactor-backend/internal/usecase/escrow"
	"quickfactor-backend/pkg/clock"
	"quickfactor-backend/pkg/id"
)

type Usecase struct {
	repo      domain.Repository
	uow       uow.UnitOfWork
	funds     funds.Transferer
	clock     clock.Clock
	dispatch  event.Dispatcher
	minAmount int64
	window    time.Duration
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, transferer funds.Transferer, clk clock.Clock, d event.Dispatcher, minAmount int64, expirationWindow time.Duration) *Usecase {
	return &Usecase{
		repo:      repo,
		uow:       tx,
		funds:     transferer,
		clock:     clk,
		dispatch:  d,
		minAmount: minAmount,
		window:    expirationWindow,
	}
}

// Place validates and stores a funding offer on a verified invoice.
// Expired bids are evicted before validation so a stale bid never blocks
// a fresh one from the same investor.
func (u *Usecase) Place(ctx context.Context, in PlaceInput) (*BidDTO, error) {
	var dto *BidDTO
	err := u.uow.WithinInvoiceTx(ctx, in.InvoiceID, func(r uow.Repos, inv *invoicedomain.Invoice) error {
		if inv.Status != invoicedomain.StatusVerified {
			return domain.ErrInvoiceNotBidding
		}
		now := u.clock.Now()
		if _, err := r.Bids.DeleteExpired(ctx, in.InvoiceID, now); err != nil {
			return err
		}
		if err := u.validate(ctx, r, inv, in); err != nil {
			return err
		}
		b := &domain.Bid{
			BidID:          id.NewID32(),
			InvoiceID:      in.InvoiceID,
			InvestorID:     in.InvestorID,
			BidAmount:      in.BidAmount,
			ExpectedReturn: in.ExpectedReturn,
			Status:         domain.StatusPlaced,
			PlacedAt:       now,
			ExpiresAt:      now.Add(u.window),
		}
		if err := r.Bids.Create(ctx, b); err != nil {
			return err
		}
		dto = toDTO(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.dispatch.Dispatch(ctx, event.New(event.BidReceived, map[string]any{
		"bid_id":          dto.BidID,
		"invoice_id":      dto.InvoiceID,
		"investor_id":     dto.InvestorID,
		"bid_amount":      dto.BidAmount,
		"expected_return": dto.ExpectedReturn,
	}))
	return dto, nil
}

func (u *Usecase) validate(ctx context.Context, r uow.Repos, inv *invoicedomain.Invoice, in PlaceInput) error {
	if in.BidAmount <= 0 || in.BidAmount < u.minAmount {
		return domain.ErrInvalidAmount
	}
	if in.BidAmount > inv.Amount {
		return domain.ErrExceedsInvoice
	}
	if in.ExpectedReturn <= in.BidAmount {
		return domain.ErrInvalidAmount
	}
	existing, err := r.Bids.ListByInvoiceAndInvestor(ctx, inv.InvoiceID, in.InvestorID)
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].Status == domain.StatusPlaced {
			return domain.ErrDuplicateBid
		}
	}
	return nil
}

// Withdraw retracts a placed bid. Only the bid's investor may withdraw.
func (u *Usecase) Withdraw(ctx context.Context, actorID, bidID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Bids.GetByBidID(ctx, bidID)
		if err != nil {
			return err
		}
		if b.InvestorID != actorID {
			return domain.ErrNotBidOwner
		}
		if b.Status != domain.StatusPlaced {
			return domain.ErrNotPlaced
		}
		b.Status = domain.StatusWithdrawn
		return r.Bids.Save(ctx, b)
	})
}

// Accept lets the invoice owner take a bid: investor funds move into
// escrow, the bid is accepted, the invoice becomes funded and an active
// investment is recorded, all in one transaction.
func (u *Usecase) Accept(ctx context.Context, actorID, invoiceID, bidID string) (*BidDTO, error) {
	var (
		dto       *BidDTO
		escrowID  string
		investmID string
	)
	err := u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *invoicedomain.Invoice) error {
		now := u.clock.Now()
		if _, err := r.Bids.DeleteExpired(ctx, invoiceID, now); err != nil {
			return err
		}
		b, err := r.Bids.GetByBidID(ctx, bidID)
		if err != nil {
			return err
		}
		if b.InvoiceID != invoiceID {
			return domain.ErrNotFound
		}
		if inv.BusinessID != actorID {
			return auth.ErrNotOwner
		}
		if inv.Status != invoicedomain.StatusVerified || b.Status != domain.StatusPlaced {
			return invoicedomain.ErrInvalidStatus
		}

		esc, err := escrowuc.CreateHeld(ctx, r, u.funds, inv, b.InvestorID, b.BidAmount, now)
		if err != nil {
			return err
		}
		escrowID = esc.EscrowID

		b.Status = domain.StatusAccepted
		if err := r.Bids.Save(ctx, b); err != nil {
			return err
		}

		inv.MarkFunded(b.InvestorID, b.BidAmount, now)
		if err := r.Invoices.Save(ctx, inv); err != nil {
			return err
		}

		investm := &investmentdomain.Investment{
			InvestmentID: id.NewID32(),
			InvoiceID:    invoiceID,
			InvestorID:   b.InvestorID,
			Amount:       b.BidAmount,
			FundedAt:     now,
			Status:       investmentdomain.StatusActive,
		}
		if err := r.Investments.Create(ctx, investm); err != nil {
			return err
		}
		investmID = investm.InvestmentID

		dto = toDTO(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.dispatch.Dispatch(ctx,
		event.New(event.EscrowCreated, map[string]any{
			"escrow_id":  escrowID,
			"invoice_id": invoiceID,
			"amount":     dto.BidAmount,
		}),
		event.New(event.BidAccepted, map[string]any{
			"bid_id":        bidID,
			"invoice_id":    invoiceID,
			"investor_id":   dto.InvestorID,
			"investment_id": investmID,
		}),
		event.New(event.InvoiceStatusChanged, map[string]any{
			"invoice_id": invoiceID,
			"from":       string(invoicedomain.StatusVerified),
			"to":         string(invoicedomain.StatusFunded),
		}),
	)
	return dto, nil
}

// CleanupExpired evicts placed bids past their expiry and reports how
// many were removed.
func (u *Usecase) CleanupExpired(ctx context.Context, invoiceID string) (int64, error) {
	return u.repo.DeleteExpired(ctx, invoiceID, u.clock.Now())
}

// Ranked returns all bids for an invoice ordered best-first.
func (u *Usecase) Ranked(ctx context.Context, invoiceID string) ([]BidDTO, error) {
	bids, err := u.repo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toDTOs(domain.Rank(bids)), nil
}

// Best returns the top-ranked bid, or nil when none exist.
func (u *Usecase) Best(ctx context.Context, invoiceID string) (*BidDTO, error) {
	bids, err := u.repo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	best := domain.Best(bids)
	if best == nil {
		return nil, nil
	}
	return toDTO(best), nil
}

// ByStatus lists an invoice's bids with the given status.
func (u *Usecase) ByStatus(ctx context.Context, invoiceID string, status domain.Status) ([]BidDTO, error) {
	bids, err := u.repo.ListByInvoiceAndStatus(ctx, invoiceID, status)
	if err != nil {
		return nil, err
	}
	return toDTOs(bids), nil
}

// ByInvestor lists an investor's bids on an invoice.
func (u *Usecase) ByInvestor(ctx context.Context, invoiceID, investorID string) ([]BidDTO, error) {
	bids, err := u.repo.ListByInvoiceAndInvestor(ctx, invoiceID, investorID)
	if err != nil {
		return nil, err
	}
	return toDTOs(bids), nil
}

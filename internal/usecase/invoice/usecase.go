package invoice

import (
	"context"

	"quickfactor-backend/internal/domain/auth"
	"quickfactor-backend/internal/domain/event"
	domain "quickfactor-backend/internal/domain/invoice"
	"quickfactor-backend/internal/domain/kyc"
	"quickfactor-backend/internal/domain/uow"
	"quickfactor-backend/pkg/clock"
	"quickfactor-backend/pkg/id"
)

type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	kyc      kyc.Verifier
	clock    clock.Clock
	dispatch event.Dispatcher
	adminID  string
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, verifier kyc.Verifier, clk clock.Clock, d event.Dispatcher, adminID string) *Usecase {
	return &Usecase{repo: repo, uow: tx, kyc: verifier, clock: clk, dispatch: d, adminID: adminID}
}

// Upload creates a pending invoice for a verified business.
func (u *Usecase) Upload(ctx context.Context, in UploadInput) (*InvoiceDTO, error) {
	ok, err := u.kyc.IsVerified(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, kyc.ErrBusinessNotVerified
	}

	now := u.clock.Now()
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !in.DueDate.After(now) {
		return nil, domain.ErrInvalidDueDate
	}
	if in.Description == "" {
		return nil, domain.ErrInvalidDescription
	}

	inv := &domain.Invoice{
		InvoiceID:     id.NewID32(),
		BusinessID:    in.BusinessID,
		Amount:        in.Amount,
		Currency:      in.Currency,
		DueDate:       in.DueDate.UTC(),
		Description:   in.Description,
		Status:        domain.StatusPending,
		DisputeStatus: domain.DisputeNone,
	}
	if err := u.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	u.dispatch.Dispatch(ctx, event.New(event.InvoiceUploaded, map[string]any{
		"invoice_id":  inv.InvoiceID,
		"business_id": inv.BusinessID,
		"amount":      inv.Amount,
		"currency":    inv.Currency,
		"due_date":    inv.DueDate,
	}))
	return toDTO(inv), nil
}

// Verify moves a pending invoice to verified. Admin only.
func (u *Usecase) Verify(ctx context.Context, actorID, invoiceID string) (*InvoiceDTO, error) {
	if actorID != u.adminID {
		return nil, auth.ErrNotAdmin
	}
	var dto *InvoiceDTO
	err := u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *domain.Invoice) error {
		if err := inv.Verify(); err != nil {
			return err
		}
		if err := r.Invoices.Save(ctx, inv); err != nil {
			return err
		}
		dto = toDTO(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.dispatch.Dispatch(ctx,
		event.New(event.InvoiceVerified, map[string]any{"invoice_id": invoiceID}),
		event.New(event.InvoiceStatusChanged, map[string]any{
			"invoice_id": invoiceID,
			"from":       string(domain.StatusPending),
			"to":         string(domain.StatusVerified),
		}),
	)
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, invoiceID string) (*InvoiceDTO, error) {
	inv, err := u.repo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toDTO(inv), nil
}

func (u *Usecase) ListByStatus(ctx context.Context, status domain.Status) ([]InvoiceDTO, error) {
	invs, err := u.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]InvoiceDTO, 0, len(invs))
	for i := range invs {
		out = append(out, *toDTO(&invs[i]))
	}
	return out, nil
}

func (u *Usecase) ListByBusiness(ctx context.Context, businessID string) ([]InvoiceDTO, error) {
	invs, err := u.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	out := make([]InvoiceDTO, 0, len(invs))
	for i := range invs {
		out = append(out, *toDTO(&invs[i]))
	}
	return out, nil
}

func (u *Usecase) ListPayments(ctx context.Context, invoiceID string) ([]domain.PaymentRecord, error) {
	if _, err := u.repo.GetByInvoiceID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return u.repo.ListPayments(ctx, invoiceID)
}

// OpenDispute flags the invoice as disputed. Only a party with a stake in
// the invoice may open one. The flag never blocks settlement or default.
func (u *Usecase) OpenDispute(ctx context.Context, actorID, invoiceID string) error {
	err := u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *domain.Invoice) error {
		if actorID != inv.BusinessID && (inv.InvestorID == nil || actorID != *inv.InvestorID) {
			return auth.ErrUnauthorized
		}
		if err := inv.SetDisputeStatus(domain.DisputeDisputed); err != nil {
			return err
		}
		return r.Invoices.Save(ctx, inv)
	})
	if err != nil {
		return err
	}
	u.dispatch.Dispatch(ctx, event.New(event.DisputeOpened, map[string]any{
		"invoice_id": invoiceID,
		"opened_by":  actorID,
	}))
	return nil
}

// ReviewDispute marks an open dispute as under review. Admin only.
func (u *Usecase) ReviewDispute(ctx context.Context, actorID, invoiceID string) error {
	if actorID != u.adminID {
		return auth.ErrNotAdmin
	}
	err := u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *domain.Invoice) error {
		if err := inv.SetDisputeStatus(domain.DisputeUnderReview); err != nil {
			return err
		}
		return r.Invoices.Save(ctx, inv)
	})
	if err != nil {
		return err
	}
	u.dispatch.Dispatch(ctx, event.New(event.DisputeUnderReview, map[string]any{"invoice_id": invoiceID}))
	return nil
}

// ResolveDispute closes a dispute under review. Admin only.
func (u *Usecase) ResolveDispute(ctx context.Context, actorID, invoiceID string) error {
	if actorID != u.adminID {
		return auth.ErrNotAdmin
	}
	err := u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *domain.Invoice) error {
		if err := inv.SetDisputeStatus(domain.DisputeResolved); err != nil {
			return err
		}
		return r.Invoices.Save(ctx, inv)
	})
	if err != nil {
		return err
	}
	u.dispatch.Dispatch(ctx, event.New(event.DisputeResolved, map[string]any{"invoice_id": invoiceID}))
	return nil
}

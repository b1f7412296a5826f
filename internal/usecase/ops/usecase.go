package ops

import (
	"context"

	"quickfactor-backend/internal/domain/auth"
	fundsdomain "quickfactor-backend/internal/domain/funds"
	kycdomain "quickfactor-backend/internal/domain/kyc"
)

// Usecase covers the operational surface: funding ledger accounts,
// granting the platform spending authority over them, and recording
// KYC review outcomes.
type Usecase struct {
	ledger          fundsdomain.Ledger
	registrar       kycdomain.Registrar
	adminID         string
	defaultCurrency string
}

func NewUsecase(ledger fundsdomain.Ledger, registrar kycdomain.Registrar, adminID, defaultCurrency string) *Usecase {
	return &Usecase{ledger: ledger, registrar: registrar, adminID: adminID, defaultCurrency: defaultCurrency}
}

// AccountBalance is the read model for a single holder/currency account.
type AccountBalance struct {
	HolderID string `json:"holder_id"`
	Currency string `json:"currency"`
	Balance  int64  `json:"balance"`
}

// Deposit credits a holder's account. Admin only.
func (u *Usecase) Deposit(ctx context.Context, actorID, holderID, currency string, amount int64) error {
	if actorID != u.adminID {
		return auth.ErrNotAdmin
	}
	return u.ledger.Deposit(ctx, u.currency(currency), holderID, amount)
}

// Approve sets how much of the holder's balance the platform may move on
// their behalf. Holders manage their own allowance; zero revokes it.
func (u *Usecase) Approve(ctx context.Context, actorID, holderID, currency string, amount int64) error {
	if actorID != holderID {
		return auth.ErrUnauthorized
	}
	return u.ledger.Approve(ctx, u.currency(currency), holderID, amount)
}

// Balance is visible to the holder and to the admin, nobody else.
func (u *Usecase) Balance(ctx context.Context, actorID, holderID, currency string) (*AccountBalance, error) {
	if actorID != holderID && actorID != u.adminID {
		return nil, auth.ErrUnauthorized
	}
	cur := u.currency(currency)
	bal, err := u.ledger.Balance(ctx, cur, holderID)
	if err != nil {
		return nil, err
	}
	return &AccountBalance{HolderID: holderID, Currency: cur, Balance: bal}, nil
}

// VerifyBusiness records a passed KYC review. Admin only.
func (u *Usecase) VerifyBusiness(ctx context.Context, actorID, businessID string) error {
	if actorID != u.adminID {
		return auth.ErrNotAdmin
	}
	return u.registrar.MarkVerified(ctx, businessID)
}

func (u *Usecase) currency(c string) string {
	if c == "" {
		return u.defaultCurrency
	}
	return c
}

package investment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"quickfactor-backend/internal/domain/auth"
	"quickfactor-backend/internal/domain/event"
	"quickfactor-backend/internal/domain/funds"
	domain "quickfactor-backend/internal/domain/investment"
	"quickfactor-backend/internal/domain/uow"
)

// ErrNotInsurable: coverage can only be added while the investment is
// active.
var ErrNotInsurable = errors.New("investment is not active")

type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	funds    funds.Transferer
	dispatch event.Dispatcher
	currency string
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, transferer funds.Transferer, d event.Dispatcher, premiumCurrency string) *Usecase {
	return &Usecase{repo: repo, uow: tx, funds: transferer, dispatch: d, currency: premiumCurrency}
}

type AddInsuranceInput struct {
	InvestmentID       string `json:"investment_id"`
	ProviderID         string `json:"provider_id"`
	CoveragePercentage int    `json:"coverage_percentage"`
}

type InsuranceDTO struct {
	InvestmentID       string `json:"investment_id"`
	ProviderID         string `json:"provider_id"`
	CoverageAmount     int64  `json:"coverage_amount"`
	PremiumAmount      int64  `json:"premium_amount"`
	CoveragePercentage int    `json:"coverage_percentage"`
}

// AddInsurance buys default coverage for an active investment. The
// premium moves from the investor to the platform in the same
// transaction that records the coverage.
func (u *Usecase) AddInsurance(ctx context.Context, actorID string, in AddInsuranceInput) (*InsuranceDTO, error) {
	var dto *InsuranceDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		investm, err := r.Investments.GetByInvestmentID(ctx, in.InvestmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if investm.InvestorID != actorID {
			return auth.ErrUnauthorized
		}
		if investm.Status != domain.StatusActive {
			return ErrNotInsurable
		}
		premium := domain.CalculatePremium(investm.Amount, in.CoveragePercentage)
		coverage, err := investm.AddInsurance(in.ProviderID, in.CoveragePercentage, premium)
		if err != nil {
			return err
		}
		if err := u.funds.Transfer(ctx, u.currency, actorID, funds.PlatformAccountID, premium); err != nil {
			return err
		}
		if err := r.Investments.Save(ctx, investm); err != nil {
			return err
		}
		dto = &InsuranceDTO{
			InvestmentID:       investm.InvestmentID,
			ProviderID:         in.ProviderID,
			CoverageAmount:     coverage,
			PremiumAmount:      premium,
			CoveragePercentage: in.CoveragePercentage,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) GetByInvoice(ctx context.Context, invoiceID string) (*domain.Investment, error) {
	investm, err := u.repo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return investm, nil
}

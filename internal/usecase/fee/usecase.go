package fee

import (
	"context"

	"quickfactor-backend/internal/domain/auth"
	domain "quickfactor-backend/internal/domain/fee"
	"quickfactor-backend/pkg/clock"
)

type Usecase struct {
	repo    domain.Repository
	clock   clock.Clock
	adminID string
}

func NewUsecase(repo domain.Repository, clk clock.Clock, adminID string) *Usecase {
	return &Usecase{repo: repo, clock: clk, adminID: adminID}
}

func (u *Usecase) Get(ctx context.Context) (*domain.PlatformFeeConfig, error) {
	return u.repo.Get(ctx)
}

// Update sets the platform fee rate. Admin only, capped at
// fee.MaxPlatformFeeBps.
func (u *Usecase) Update(ctx context.Context, actorID string, feeBps int) (*domain.PlatformFeeConfig, error) {
	if actorID != u.adminID {
		return nil, auth.ErrNotAdmin
	}
	if err := domain.ValidateBps(feeBps); err != nil {
		return nil, err
	}
	cfg, err := u.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg.FeeBps = feeBps
	cfg.UpdatedBy = actorID
	cfg.UpdatedAt = u.clock.Now()
	if err := u.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Preview exposes the profit split as a pure calculation.
func (u *Usecase) Preview(ctx context.Context, investmentAmount, paymentAmount int64) (*domain.ProfitSplit, error) {
	cfg, err := u.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	split := cfg.SplitPayment(investmentAmount, paymentAmount)
	return &split, nil
}

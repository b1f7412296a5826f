package feemock

import (
	"context"

	domain "quickfactor-backend/internal/domain/fee"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset Get falls back to the default config so most tests need no setup.
type Repo struct {
	GetFn  func(ctx context.Context) (*domain.PlatformFeeConfig, error)
	SaveFn func(ctx context.Context, cfg *domain.PlatformFeeConfig) error
}

func (m *Repo) Get(ctx context.Context) (*domain.PlatformFeeConfig, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return &domain.PlatformFeeConfig{FeeBps: domain.DefaultPlatformFeeBps}, nil
}

func (m *Repo) Save(ctx context.Context, cfg *domain.PlatformFeeConfig) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, cfg)
	}
	return nil
}

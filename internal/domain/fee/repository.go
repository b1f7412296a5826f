package fee

import "context"

type Repository interface {
	// Get returns the singleton config, inserting the default row when
	// none exists yet.
	Get(ctx context.Context) (*PlatformFeeConfig, error)
	Save(ctx context.Context, cfg *PlatformFeeConfig) error
}

package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	feeDomain "quickfactor-backend/internal/domain/fee"
)

type FeeRepository struct{ db *gorm.DB }

func NewFeeRepository(db *gorm.DB) *FeeRepository { return &FeeRepository{db: db} }

// Get returns the singleton config row, seeding the default rate on
// first use.
func (r *FeeRepository) Get(ctx context.Context) (*feeDomain.PlatformFeeConfig, error) {
	var out feeDomain.PlatformFeeConfig
	res := r.db.WithContext(ctx).Order("id ASC").First(&out)
	if res.Error != nil {
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, res.Error
		}
		out = feeDomain.PlatformFeeConfig{FeeBps: feeDomain.DefaultPlatformFeeBps}
		if err := r.db.WithContext(ctx).Create(&out).Error; err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func (r *FeeRepository) Save(ctx context.Context, cfg *feeDomain.PlatformFeeConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

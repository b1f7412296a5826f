package fee

import (
	"errors"
	"time"

	"quickfactor-backend/pkg/money"
)

const (
	DefaultPlatformFeeBps = 200  // 2%
	MaxPlatformFeeBps     = 1000 // 10% hard cap
	bpsDenominator        = 10_000
)

var (
	ErrNotFound   = errors.New("platform fee config not found")
	ErrInvalidBps = errors.New("fee bps out of range")
)

// PlatformFeeConfig is the single admin-mutable fee row.
type PlatformFeeConfig struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	FeeBps    int       `gorm:"not null" json:"fee_bps"`
	UpdatedBy string    `gorm:"size:32" json:"updated_by"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (PlatformFeeConfig) TableName() string { return "platform_fee_config" }

func ValidateBps(bps int) error {
	if bps < 0 || bps > MaxPlatformFeeBps {
		return ErrInvalidBps
	}
	return nil
}

// SplitPayment applies this config's rate to a repayment.
func (c *PlatformFeeConfig) SplitPayment(investmentAmount, paymentAmount int64) ProfitSplit {
	return Split(investmentAmount, paymentAmount, c.FeeBps)
}

// ProfitSplit is the outcome of dividing a repayment between the investor
// and the platform.
type ProfitSplit struct {
	InvestorReturn int64 `json:"investor_return"`
	PlatformFee    int64 `json:"platform_fee"`
}

// Split computes the platform's cut of the profit on a repayment. The fee
// applies to profit only: a repayment at or below principal carries no
// fee. Division truncates toward zero; all arithmetic saturates.
func Split(investmentAmount, paymentAmount int64, feeBps int) ProfitSplit {
	profit := money.SatSub(paymentAmount, investmentAmount)
	if profit <= 0 {
		return ProfitSplit{InvestorReturn: money.Max(paymentAmount, 0), PlatformFee: 0}
	}
	platformFee := money.SatMul(profit, int64(feeBps)) / bpsDenominator
	return ProfitSplit{
		InvestorReturn: money.SatSub(paymentAmount, platformFee),
		PlatformFee:    platformFee,
	}
}

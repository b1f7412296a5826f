package investment

import (
	"errors"
	"time"

	"quickfactor-backend/pkg/money"
)

// Premium rate charged on the covered amount, in basis points.
const InsurancePremiumBps = 200

type Status string

const (
	StatusActive    Status = "active"
	StatusWithdrawn Status = "withdrawn"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
)

var (
	ErrNotFound        = errors.New("investment not found for invoice")
	ErrInvalidCoverage = errors.New("coverage percentage must be 1-100")
	ErrInvalidPremium  = errors.New("premium must be positive")
	ErrCoverageActive  = errors.New("investment already has active coverage")
)

type Investment struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	InvestmentID string    `gorm:"size:32;uniqueIndex:ux_investments_investment_id" json:"investment_id"`
	InvoiceID    string    `gorm:"size:32;uniqueIndex:ux_investments_invoice" json:"invoice_id"`
	InvestorID   string    `gorm:"size:32;index:idx_investments_investor" json:"investor_id"`
	Amount       int64     `gorm:"not null" json:"amount"`
	FundedAt     time.Time `gorm:"not null" json:"funded_at"`
	Status       Status    `gorm:"type:enum('active','withdrawn','completed','defaulted');default:'active'" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`

	Insurance []InsuranceCoverage `gorm:"foreignKey:InvestmentRef" json:"insurance,omitempty"`
}

func (Investment) TableName() string { return "investments" }

type InsuranceCoverage struct {
	ID                 uint64 `gorm:"primaryKey;column:id" json:"-"`
	InvestmentRef      uint64 `gorm:"column:investment_ref;not null;index" json:"-"`
	ProviderID         string `gorm:"size:32;not null" json:"provider_id"`
	CoverageAmount     int64  `gorm:"not null" json:"coverage_amount"`
	PremiumAmount      int64  `gorm:"not null" json:"premium_amount"`
	CoveragePercentage int    `gorm:"not null" json:"coverage_percentage"`
	// no default tag: gorm skips zero-valued defaulted columns on save,
	// which would lose the claim flip to false
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (InsuranceCoverage) TableName() string { return "investment_insurance" }

// CalculatePremium prices coverage at InsurancePremiumBps of the covered
// amount, with a floor of 1 whenever any amount is covered.
func CalculatePremium(amount int64, coveragePercentage int) int64 {
	if amount <= 0 || coveragePercentage <= 0 {
		return 0
	}
	coverage := money.SatMul(amount, int64(coveragePercentage)) / 100
	premium := money.SatMul(coverage, InsurancePremiumBps) / 10_000
	if premium == 0 && coverage > 0 {
		return 1
	}
	return premium
}

// AddInsurance attaches a coverage entry. Only one entry may be active at
// a time. Returns the covered amount.
func (inv *Investment) AddInsurance(providerID string, coveragePercentage int, premium int64) (int64, error) {
	if coveragePercentage <= 0 || coveragePercentage > 100 {
		return 0, ErrInvalidCoverage
	}
	if premium <= 0 {
		return 0, ErrInvalidPremium
	}
	if inv.HasActiveInsurance() {
		return 0, ErrCoverageActive
	}
	coverage := money.SatMul(inv.Amount, int64(coveragePercentage)) / 100
	inv.Insurance = append(inv.Insurance, InsuranceCoverage{
		InvestmentRef:      inv.ID,
		ProviderID:         providerID,
		CoverageAmount:     coverage,
		PremiumAmount:      premium,
		CoveragePercentage: coveragePercentage,
		Active:             true,
	})
	return coverage, nil
}

func (inv *Investment) HasActiveInsurance() bool {
	for i := range inv.Insurance {
		if inv.Insurance[i].Active {
			return true
		}
	}
	return false
}

// ProcessInsuranceClaim flips the first active coverage inactive and
// returns it, so a claim is surfaced at most once per investment.
func (inv *Investment) ProcessInsuranceClaim() *InsuranceCoverage {
	for i := range inv.Insurance {
		if inv.Insurance[i].Active {
			inv.Insurance[i].Active = false
			return &inv.Insurance[i]
		}
	}
	return nil
}

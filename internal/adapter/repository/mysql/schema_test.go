package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	feeDomain "quickfactor-backend/internal/domain/fee"
	investmentDomain "quickfactor-backend/internal/domain/investment"
	invoiceDomain "quickfactor-backend/internal/domain/invoice"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type invoiceSQLite struct {
	ID            uint64     `gorm:"primaryKey;column:id"`
	InvoiceID     string     `gorm:"size:32;column:invoice_id"`
	BusinessID    string     `gorm:"size:32;column:business_id"`
	Amount        int64      `gorm:"column:amount"`
	Currency      string     `gorm:"size:16;column:currency"`
	DueDate       time.Time  `gorm:"column:due_date"`
	Description   string     `gorm:"type:text;column:description"`
	Status        string     `gorm:"type:text;column:status"` // ← no enum
	FundedAmount  int64      `gorm:"column:funded_amount"`
	FundedAt      *time.Time `gorm:"column:funded_at"`
	InvestorID    *string    `gorm:"size:32;column:investor_id"`
	SettledAt     *time.Time `gorm:"column:settled_at"`
	TotalPaid     int64      `gorm:"column:total_paid"`
	DisputeStatus string     `gorm:"type:text;column:dispute_status"` // ← no enum
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (invoiceSQLite) TableName() string { return "invoices" }

type bidSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	BidID          string    `gorm:"size:32;column:bid_id"`
	InvoiceID      string    `gorm:"size:32;column:invoice_id"`
	InvestorID     string    `gorm:"size:32;column:investor_id"`
	BidAmount      int64     `gorm:"column:bid_amount"`
	ExpectedReturn int64     `gorm:"column:expected_return"`
	Status         string    `gorm:"type:text;column:status"` // ← no enum
	PlacedAt       time.Time `gorm:"column:placed_at"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (bidSQLite) TableName() string { return "bids" }

type escrowSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	EscrowID   string    `gorm:"size:32;column:escrow_id"`
	InvoiceID  string    `gorm:"size:32;column:invoice_id"`
	InvestorID string    `gorm:"size:32;column:investor_id"`
	BusinessID string    `gorm:"size:32;column:business_id"`
	Amount     int64     `gorm:"column:amount"`
	Currency   string    `gorm:"size:16;column:currency"`
	Status     string    `gorm:"type:text;column:status"` // ← no enum
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (escrowSQLite) TableName() string { return "escrows" }

type investmentSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	InvestmentID string    `gorm:"size:32;column:investment_id"`
	InvoiceID    string    `gorm:"size:32;column:invoice_id"`
	InvestorID   string    `gorm:"size:32;column:investor_id"`
	Amount       int64     `gorm:"column:amount"`
	FundedAt     time.Time `gorm:"column:funded_at"`
	Status       string    `gorm:"type:text;column:status"` // ← no enum
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (investmentSQLite) TableName() string { return "investments" }

// openTestDB creates an in-memory sqlite DB and migrates the sqlite-safe
// models in place of the enum-bearing domain ones. Payment, insurance and
// fee rows carry no enum so their domain models migrate directly.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&invoiceSQLite{},
		&bidSQLite{},
		&escrowSQLite{},
		&investmentSQLite{},
		&invoiceDomain.PaymentRecord{},
		&investmentDomain.InsuranceCoverage{},
		&feeDomain.PlatformFeeConfig{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

package funds

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	fundsDomain "quickfactor-backend/internal/domain/funds"
	"quickfactor-backend/pkg/money"
)

// Account is a per-holder per-currency balance row.
type Account struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	HolderID  string    `gorm:"size:32;uniqueIndex:ux_accounts_holder_currency"`
	Currency  string    `gorm:"size:16;uniqueIndex:ux_accounts_holder_currency"`
	Balance   int64     `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Account) TableName() string { return "ledger_accounts" }

// Allowance is a holder's pre-authorization letting the platform debit
// their account up to the remaining amount.
type Allowance struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	HolderID  string    `gorm:"size:32;uniqueIndex:ux_allowances_holder_currency"`
	Currency  string    `gorm:"size:16;uniqueIndex:ux_allowances_holder_currency"`
	Remaining int64     `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Allowance) TableName() string { return "ledger_allowances" }

// Ledger implements funds.Transferer against the database. The platform
// custody account may be debited directly; any other debit consumes the
// holder's allowance first.
type Ledger struct{ db *gorm.DB }

func NewLedger(db *gorm.DB) *Ledger { return &Ledger{db: db} }

func (l *Ledger) Transfer(ctx context.Context, currency, from, to string, amount int64) error {
	if amount <= 0 {
		return fundsDomain.ErrInvalidAmount
	}
	if from == to {
		return nil
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		src, err := lockAccount(ctx, tx, from, currency)
		if err != nil {
			return err
		}
		if src.Balance < amount {
			return fundsDomain.ErrInsufficientFunds
		}
		if from != fundsDomain.PlatformAccountID {
			var allow Allowance
			res := tx.WithContext(ctx).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("holder_id = ? AND currency = ?", from, currency).
				First(&allow)
			if res.Error != nil {
				if errors.Is(res.Error, gorm.ErrRecordNotFound) {
					return fundsDomain.ErrNotAuthorized
				}
				return res.Error
			}
			if allow.Remaining < amount {
				return fundsDomain.ErrNotAuthorized
			}
			allow.Remaining -= amount
			if err := tx.WithContext(ctx).Save(&allow).Error; err != nil {
				return err
			}
		}

		dst, err := lockOrCreateAccount(ctx, tx, to, currency)
		if err != nil {
			return err
		}
		src.Balance -= amount
		dst.Balance = money.SatAdd(dst.Balance, amount)
		if err := tx.WithContext(ctx).Save(src).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Save(dst).Error
	})
}

// Deposit credits a holder's account, creating it on first use.
func (l *Ledger) Deposit(ctx context.Context, currency, holder string, amount int64) error {
	if amount <= 0 {
		return fundsDomain.ErrInvalidAmount
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acct, err := lockOrCreateAccount(ctx, tx, holder, currency)
		if err != nil {
			return err
		}
		acct.Balance = money.SatAdd(acct.Balance, amount)
		return tx.WithContext(ctx).Save(acct).Error
	})
}

// Approve sets the remaining platform allowance for a holder.
func (l *Ledger) Approve(ctx context.Context, currency, holder string, amount int64) error {
	if amount < 0 {
		return fundsDomain.ErrInvalidAmount
	}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "holder_id"}, {Name: "currency"}},
			DoUpdates: clause.AssignmentColumns([]string{"remaining"}),
		}).
		Create(&Allowance{HolderID: holder, Currency: currency, Remaining: amount}).Error
}

func (l *Ledger) Balance(ctx context.Context, currency, holder string) (int64, error) {
	var acct Account
	res := l.db.WithContext(ctx).
		Where("holder_id = ? AND currency = ?", holder, currency).
		First(&acct)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return 0, fundsDomain.ErrAccountNotFound
		}
		return 0, res.Error
	}
	return acct.Balance, nil
}

func lockAccount(ctx context.Context, tx *gorm.DB, holder, currency string) (*Account, error) {
	var acct Account
	res := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("holder_id = ? AND currency = ?", holder, currency).
		First(&acct)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, fundsDomain.ErrInsufficientFunds
		}
		return nil, res.Error
	}
	return &acct, nil
}

func lockOrCreateAccount(ctx context.Context, tx *gorm.DB, holder, currency string) (*Account, error) {
	var acct Account
	res := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("holder_id = ? AND currency = ?", holder, currency).
		First(&acct)
	if res.Error == nil {
		return &acct, nil
	}
	if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, res.Error
	}
	acct = Account{HolderID: holder, Currency: currency}
	if err := tx.WithContext(ctx).Create(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidInterestRate = errors.New("interest rate must be between 0 and 1")

// AccountType is a rate table row: one per account variant, keyed by name.
// The engine reads rates through a refreshable cache rather than rebuilding
// a lookup on every use.
type AccountType struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
	InterestRate decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"interest_rate"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

func (t *AccountType) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

func (t *AccountType) Validate() error {
	if !IsValidAccountType(t.Name) {
		return ErrInvalidAccountType
	}

	if t.InterestRate.IsNegative() || t.InterestRate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidInterestRate
	}

	return nil
}

func (t *AccountType) TableName() string {
	return "account_types"
}

// DefaultInterestRates returns the seeded standard rate per account type.
func DefaultInterestRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		AccountTypeChequing:          decimal.NewFromFloat(0.0050),
		AccountTypeSavings:           decimal.NewFromFloat(0.0100),
		AccountTypeTfsa:              decimal.NewFromFloat(0.0150),
		AccountTypeRestrictedSavings: decimal.NewFromFloat(0.0125),
		AccountTypeBalanceOwing:      decimal.NewFromFloat(0.2000),
	}
}

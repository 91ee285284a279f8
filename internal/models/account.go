package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountTypeChequing          = "chequing"
	AccountTypeSavings           = "savings"
	AccountTypeTfsa              = "tfsa"
	AccountTypeRestrictedSavings = "restricted savings"
	AccountTypeBalanceOwing      = "balance owing"
)

// MinimumSavingsBalance is the floor below which a savings account is
// converted to chequing as a withdrawal side effect.
var MinimumSavingsBalance = decimal.NewFromInt(1000)

var (
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidBalance     = errors.New("balance cannot be negative for this account type")
	ErrAccountNameEmpty   = errors.New("account name is required")
)

// Account represents a bank account. The ID is assigned once by the database
// and immutable afterwards; the balance is only ever mutated through the
// transaction engine.
type Account struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64           `gorm:"not null;index" json:"user_id"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	AccountType  string          `gorm:"type:varchar(20);not null;index" json:"account_type"`
	Balance      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	InterestRate decimal.Decimal `gorm:"type:decimal(7,4);default:0" json:"interest_rate,omitempty"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	// Opening balances are committed with the same rounding rule as every
	// later mutation.
	a.Balance = RoundBalance(a.Balance)

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		// Column-level updates (balance/type commits) bypass struct validation
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.UserID == 0 {
		return errors.New("owner user ID is required")
	}

	if a.Name == "" {
		return ErrAccountNameEmpty
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}

	if a.Balance.IsNegative() && !a.CanOverdraw() {
		return ErrInvalidBalance
	}

	return nil
}

// CanOverdraw reports whether the balance may go negative without bound.
// Only balance owing accounts are exempt from the non-negative invariant.
func (a *Account) CanOverdraw() bool {
	return a.AccountType == AccountTypeBalanceOwing
}

// WithdrawalsBlocked reports whether the account type forbids withdrawals
// outright. This is a per-type hard policy, independent of authentication
// and ownership.
func (a *Account) WithdrawalsBlocked() bool {
	return a.AccountType == AccountTypeRestrictedSavings
}

// IsSavings reports whether the account is subject to the minimum-balance
// conversion policy.
func (a *Account) IsSavings() bool {
	return a.AccountType == AccountTypeSavings
}

// CanWithdraw checks whether the amount can be withdrawn under the type's
// balance policy.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	if a.WithdrawalsBlocked() {
		return false
	}
	if a.CanOverdraw() {
		return true
	}
	return amount.GreaterThan(decimal.Zero) && a.Balance.GreaterThanOrEqual(amount)
}

// BalanceWithInterest returns the balance after one interest application at
// the given rate, rounded with the uniform balance rule.
func (a *Account) BalanceWithInterest(rate decimal.Decimal) decimal.Decimal {
	return RoundBalance(a.Balance.Add(a.Balance.Mul(rate)))
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// RoundBalance applies the single rounding discipline used at every monetary
// mutation: two fractional digits, rounded toward positive infinity.
func RoundBalance(d decimal.Decimal) decimal.Decimal {
	return d.RoundCeil(2)
}

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChequing, AccountTypeSavings, AccountTypeTfsa,
		AccountTypeRestrictedSavings, AccountTypeBalanceOwing:
		return true
	default:
		return false
	}
}

// AccountTypeNames returns every valid account type name, in seed order.
func AccountTypeNames() []string {
	return []string{
		AccountTypeChequing,
		AccountTypeSavings,
		AccountTypeTfsa,
		AccountTypeRestrictedSavings,
		AccountTypeBalanceOwing,
	}
}

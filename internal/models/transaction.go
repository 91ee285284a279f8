package models

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeCredit   = "credit"
	TransactionTypeDebit    = "debit"
	TransactionTypeInterest = "interest"
)

var ErrInvalidTransactionType = errors.New("invalid transaction type")

// Transaction is the ledger row written for every successful balance
// mutation: deposits, withdrawals and interest applications.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID       int64           `gorm:"not null;index" json:"account_id"`
	TransactionType string          `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	BalanceBefore   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_before"`
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	Description     string          `gorm:"type:text" json:"description"`
	Reference       string          `gorm:"type:varchar(100);index" json:"reference,omitempty"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.AccountID == 0 {
		return errors.New("account ID is required")
	}

	switch t.TransactionType {
	case TransactionTypeCredit, TransactionTypeDebit, TransactionTypeInterest:
	default:
		return ErrInvalidTransactionType
	}

	return nil
}

func (t *Transaction) TableName() string {
	return "transactions"
}

// GenerateTransactionReference generates a human-quotable ledger reference
func GenerateTransactionReference() string {
	return fmt.Sprintf("TXN-%d-%04d", time.Now().UnixNano(), rand.Intn(10000))
}

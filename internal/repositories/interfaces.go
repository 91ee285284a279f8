package repositories

import (
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
)

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id int64) (*models.Account, error)
	GetByUserID(userID int64) ([]models.Account, error)
	GetOwnedIDs(userID int64) ([]int64, error)
	UpdateName(accountID int64, name string) error
	CommitBalanceChange(accountID int64, newBalance decimal.Decimal, entry *models.Transaction) error
	ConvertType(accountID int64, newType string) error
	TotalBalanceByUserID(userID int64) (decimal.Decimal, error)
	TotalBalance() (decimal.Decimal, error)
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByRole(role string) ([]models.User, error)
	UpdateRole(userID int64, role string) error
	UpdateFields(userID int64, fields map[string]interface{}) error
	UpdatePasswordHash(userID int64, passwordHash string) error
}

// MessageRepositoryInterface defines the contract for message repository operations
type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	GetByID(id int64) (*models.Message, error)
	GetByUserID(userID int64) ([]models.Message, error)
	MarkViewed(id int64) error
}

// AccountTypeRepositoryInterface defines the contract for rate table lookups
type AccountTypeRepositoryInterface interface {
	GetAll() ([]models.AccountType, error)
	GetByName(name string) (*models.AccountType, error)
}

// TransactionRepositoryInterface defines the contract for ledger queries.
// Ledger rows are written by the account repository as part of balance
// commits; this interface only reads them back.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByAccountID(accountID int64, offset, limit int) ([]models.Transaction, int64, error)
	GetRecentByAccountID(accountID int64, limit int) ([]models.Transaction, error)
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetByUserID(userID int64, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error)
}

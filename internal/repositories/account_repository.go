package repositories

import (
	"errors"
	"fmt"
	"strings"

	apperrors "bank-management/internal/errors"
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account
func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(id int64) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByUserID retrieves all accounts owned by a user
func (r *accountRepository) GetByUserID(userID int64) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for user: %w", err)
	}
	return accounts, nil
}

// GetOwnedIDs retrieves the ids of every account owned by a user. Ownership
// checks only need the id set, not full rows.
func (r *accountRepository) GetOwnedIDs(userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.Model(&models.Account{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get account ids for user: %w", err)
	}
	return ids, nil
}

// UpdateName renames an account
func (r *accountRepository) UpdateName(accountID int64, name string) error {
	result := r.db.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("name", name)

	if result.Error != nil {
		return fmt.Errorf("failed to update account name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// CommitBalanceChange writes a new balance and its ledger entry atomically.
// The caller computes the new balance; this only persists it. Lock contention
// and serialization failures surface as ErrConflict so the caller can retry.
func (r *accountRepository) CommitBalanceChange(accountID int64, newBalance decimal.Decimal, entry *models.Transaction) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account

		// Row-level locking prevents concurrent balance modifications
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&account, accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account for update: %w", err)
		}

		if err := tx.Model(&account).Update("balance", newBalance).Error; err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}

		if entry != nil {
			entry.AccountID = accountID
			if err := tx.Create(entry).Error; err != nil {
				return fmt.Errorf("failed to create ledger entry: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		if isLockConflict(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// isLockConflict matches the driver errors raised when a concurrent
// transaction holds or invalidates the row lock: postgres serialization
// failure (40001), deadlock (40P01), and sqlite busy.
func isLockConflict(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 40001") ||
		strings.Contains(msg, "SQLSTATE 40P01") ||
		strings.Contains(msg, "database is locked")
}

// ConvertType changes the account type
func (r *accountRepository) ConvertType(accountID int64, newType string) error {
	if !models.IsValidAccountType(newType) {
		return models.ErrInvalidAccountType
	}

	result := r.db.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("account_type", newType)

	if result.Error != nil {
		return fmt.Errorf("failed to convert account type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// TotalBalanceByUserID calculates the total balance across all accounts for a user.
// A user with no accounts sums to zero.
func (r *accountRepository) TotalBalanceByUserID(userID int64) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Account{}).
		Select("COALESCE(SUM(balance), 0) as total").
		Where("user_id = ?", userID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to calculate total balance: %w", err)
	}

	return result.Total, nil
}

// TotalBalance calculates the bank-wide balance across every account
func (r *accountRepository) TotalBalance() (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Account{}).
		Select("COALESCE(SUM(balance), 0) as total").
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to calculate bank-wide balance: %w", err)
	}

	return result.Total, nil
}

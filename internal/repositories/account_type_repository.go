package repositories

import (
	"errors"
	"fmt"

	"bank-management/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccountTypeNotFound = errors.New("account type not found")
)

// accountTypeRepository implements AccountTypeRepositoryInterface
type accountTypeRepository struct {
	db *gorm.DB
}

// NewAccountTypeRepository creates a new account type repository
func NewAccountTypeRepository(db *gorm.DB) AccountTypeRepositoryInterface {
	return &accountTypeRepository{
		db: db,
	}
}

// GetAll retrieves every rate table row
func (r *accountTypeRepository) GetAll() ([]models.AccountType, error) {
	var types []models.AccountType
	if err := r.db.Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to get account types: %w", err)
	}
	return types, nil
}

// GetByName retrieves the rate table row for one account type
func (r *accountTypeRepository) GetByName(name string) (*models.AccountType, error) {
	var accountType models.AccountType
	if err := r.db.Where("name = ?", name).First(&accountType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountTypeNotFound
		}
		return nil, fmt.Errorf("failed to get account type: %w", err)
	}
	return &accountType, nil
}

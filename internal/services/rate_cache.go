package services

import (
	"fmt"
	"sync"

	"bank-management/internal/repositories"

	"github.com/shopspring/decimal"
)

// RateCache is a loaded-once lookup over the rate table. Lookups never hit
// the database after the initial load; operators call Refresh after editing
// rates.
type RateCache struct {
	accountTypeRepo repositories.AccountTypeRepositoryInterface

	mu     sync.RWMutex
	rates  map[string]decimal.Decimal
	loaded bool
}

// NewRateCache creates a rate cache over the account type repository
func NewRateCache(accountTypeRepo repositories.AccountTypeRepositoryInterface) RateCacheInterface {
	return &RateCache{
		accountTypeRepo: accountTypeRepo,
		rates:           make(map[string]decimal.Decimal),
	}
}

// Rate returns the interest rate for an account type, loading the table on
// first use.
func (c *RateCache) Rate(accountType string) (decimal.Decimal, error) {
	c.mu.RLock()
	if c.loaded {
		rate, ok := c.rates[accountType]
		c.mu.RUnlock()
		if !ok {
			return decimal.Zero, repositories.ErrAccountTypeNotFound
		}
		return rate, nil
	}
	c.mu.RUnlock()

	if err := c.Refresh(); err != nil {
		return decimal.Zero, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	rate, ok := c.rates[accountType]
	if !ok {
		return decimal.Zero, repositories.ErrAccountTypeNotFound
	}
	return rate, nil
}

// Refresh reloads the whole rate table
func (c *RateCache) Refresh() error {
	types, err := c.accountTypeRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load rate table: %w", err)
	}

	fresh := make(map[string]decimal.Decimal, len(types))
	for _, t := range types {
		fresh[t.Name] = t.InterestRate
	}

	c.mu.Lock()
	c.rates = fresh
	c.loaded = true
	c.mu.Unlock()

	return nil
}

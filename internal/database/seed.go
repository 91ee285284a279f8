package database

import (
	"errors"
	"fmt"
	"log"

	"bank-management/internal/config"
	"bank-management/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAccountTypes ensures a rate table row exists for every account type.
// Existing rows keep whatever rate an operator has set for them.
func (db *DB) SeedAccountTypes() error {
	for name, rate := range models.DefaultInterestRates() {
		var existing models.AccountType
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up account type %q: %w", name, err)
		}

		accountType := models.AccountType{
			Name:         name,
			InterestRate: rate,
		}
		if err := db.Create(&accountType).Error; err != nil {
			return fmt.Errorf("failed to seed account type %q: %w", name, err)
		}
	}

	return nil
}

// SeedAdminUser creates the bootstrap admin when no admin exists yet. A fresh
// database is unusable otherwise since only staff can create users.
func (db *DB) SeedAdminUser(cfg *config.SecurityConfig) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.BootstrapPassword == "" {
		log.Println("No admin users exist and BOOTSTRAP_ADMIN_PASSWORD is unset, skipping admin bootstrap")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), cfg.BCryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	admin := models.User{
		Name:         cfg.BootstrapAdmin,
		Age:          0,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Printf("Created bootstrap admin user %q (id %d)", admin.Name, admin.ID)
	return nil
}

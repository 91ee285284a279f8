package database

import (
	"fmt"
	"testing"

	"bank-management/internal/config"
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         config.DriverSQLite,
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	if err := testDB.SeedAccountTypes(); err != nil {
		t.Fatalf("failed to seed account types: %v", err)
	}

	return testDB
}

func CreateTestUser(t *testing.T, db *DB, name, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Age:          30,
		Address:      "100 Test Street",
		Role:         role,
		PasswordHash: "hashed_password",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestAccount(t *testing.T, db *DB, userID int64, accountType string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:      userID,
		Name:        "test account",
		AccountType: accountType,
		Balance:     balance,
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"transactions",
		"accounts",
		"messages",
		"audit_logs",
		"account_types",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}

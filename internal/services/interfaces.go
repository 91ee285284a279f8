package services

import (
	"time"

	"bank-management/internal/models"

	"github.com/shopspring/decimal"
)

// PasswordServiceInterface defines the contract for password operations
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// AuthServiceInterface defines the contract for session authentication
type AuthServiceInterface interface {
	Login(session *Session, userID int64, password string) error
	Logout(session *Session)
	AuthenticateCustomer(session *Session, customerID int64, password string) error
	DeauthenticateCustomer(session *Session)
}

// TransactionServiceInterface defines the contract for the balance engine
type TransactionServiceInterface interface {
	Deposit(session *Session, accountID int64, amount decimal.Decimal) error
	Withdraw(session *Session, accountID int64, amount decimal.Decimal) error
	CheckBalance(session *Session, accountID int64) (decimal.Decimal, error)
	GiveInterest(session *Session, accountID int64) error
	GiveInterestAll(session *Session) error
	ConvertSavingsToChequing(session *Session, accountID int64) error
	OpenAccount(session *Session, name, accountType string, balance decimal.Decimal) (*models.Account, error)
	ListAccounts(session *Session) ([]models.Account, error)
}

// AdminServiceInterface defines the contract for administrative aggregation
type AdminServiceInterface interface {
	PromoteTellerToAdmin(session *Session, tellerID int64) error
	UserTotalBalance(session *Session, userID int64) (decimal.Decimal, error)
	BankTotalBalance(session *Session) (decimal.Decimal, error)
	ListUsersByRole(session *Session, role string) ([]models.User, error)
}

// UserServiceInterface defines the contract for user management
type UserServiceInterface interface {
	CreateCustomer(session *Session, name string, age int, address, password string) (*models.User, error)
	CreateUser(session *Session, name string, age int, address, role, password string) (*models.User, error)
	UpdateUserName(session *Session, userID int64, name string) error
	UpdateUserAddress(session *Session, userID int64, address string) error
	UpdateUserPassword(session *Session, userID int64, password string) error
}

// MessageServiceInterface defines the contract for the mailbox
type MessageServiceInterface interface {
	LeaveMessage(session *Session, targetUserID int64, body string) (*models.Message, error)
	ViewOwnMessages(session *Session) ([]models.Message, error)
	ViewCustomerMessages(session *Session, customerID int64) ([]models.Message, error)
	ViewMessage(session *Session, messageID int64) (string, error)
}

// RateCacheInterface defines the contract for the loaded-once rate lookup
type RateCacheInterface interface {
	Rate(accountType string) (decimal.Decimal, error)
	Refresh() error
}

// MetricsRecorderInterface defines the contract for recording metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

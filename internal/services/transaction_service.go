package services

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/repositories"

	"github.com/shopspring/decimal"
)

const lockStripes = 64

// TransactionService is the balance engine. Every mutating operation runs the
// same pipeline: validate the amount, validate the session, verify ownership,
// compute the new balance under the per-account lock, commit through the
// account repository, then apply policy side effects.
type TransactionService struct {
	accountRepo repositories.AccountRepositoryInterface
	messageRepo repositories.MessageRepositoryInterface
	rateCache   RateCacheInterface
	audit       *auditLogger
	metrics     MetricsRecorderInterface
	logger      *slog.Logger

	// Striped per-account locks serialize read-modify-write balance
	// mutations so two concurrent withdrawals cannot both observe the
	// pre-withdrawal balance.
	locks [lockStripes]sync.Mutex
}

// NewTransactionService creates the balance engine
func NewTransactionService(
	accountRepo repositories.AccountRepositoryInterface,
	messageRepo repositories.MessageRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	rateCache RateCacheInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		accountRepo: accountRepo,
		messageRepo: messageRepo,
		rateCache:   rateCache,
		audit:       newAuditLogger(auditRepo, logger),
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *TransactionService) lockFor(accountID int64) *sync.Mutex {
	return &s.locks[uint64(accountID)%lockStripes]
}

// Deposit credits an account owned by the acting customer
func (s *TransactionService) Deposit(session *Session, accountID int64, amount decimal.Decimal) error {
	start := time.Now()

	if !amount.IsPositive() {
		s.countFailure("deposit", "illegal_amount")
		return errors.ErrIllegalAmount
	}

	customer, err := s.requireActingCustomer(session)
	if err != nil {
		s.countFailure("deposit", "unauthenticated")
		return err
	}

	if err := s.verifyOwnership(customer.ID, accountID); err != nil {
		s.countFailure("deposit", "not_owner")
		return err
	}

	mu := s.lockFor(accountID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.getAccount(accountID)
	if err != nil {
		return err
	}

	newBalance := models.RoundBalance(account.Balance.Add(amount))
	entry := &models.Transaction{
		TransactionType: models.TransactionTypeCredit,
		Amount:          amount,
		BalanceBefore:   account.Balance,
		BalanceAfter:    newBalance,
		Description:     "deposit",
		Reference:       models.GenerateTransactionReference(),
	}

	if err := s.accountRepo.CommitBalanceChange(accountID, newBalance, entry); err != nil {
		s.logger.Error("deposit commit failed",
			slog.Int64("account_id", accountID),
			slog.String("error", err.Error()))
		if err == errors.ErrConflict {
			s.countFailure("deposit", "conflict")
			return err
		}
		s.countFailure("deposit", "store")
		return errors.ErrConnectionFailed
	}

	s.metrics.IncrementCounter("transaction.processed.success", map[string]string{"operation": "deposit"})
	s.metrics.RecordProcessingTime("transaction.processing", time.Since(start))
	s.audit.record(&customer.ID, models.AuditActionDeposit, "account", strconv.FormatInt(accountID, 10),
		models.JSONBMap{"amount": amount.String(), "balance_after": newBalance.String()})

	return nil
}

// Withdraw debits an account owned by the acting customer. A restricted
// savings account rejects withdrawals outright, before any other check. A
// balance owing account skips the positivity and funds checks entirely.
func (s *TransactionService) Withdraw(session *Session, accountID int64, amount decimal.Decimal) error {
	start := time.Now()

	account, err := s.getAccount(accountID)
	if err != nil {
		return err
	}

	if account.WithdrawalsBlocked() {
		s.countFailure("withdrawal", "type_policy")
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthTypePolicyViolation)
	}

	if !account.CanOverdraw() && !amount.IsPositive() {
		s.countFailure("withdrawal", "illegal_amount")
		return errors.ErrIllegalAmount
	}

	customer, err := s.requireActingCustomer(session)
	if err != nil {
		s.countFailure("withdrawal", "unauthenticated")
		return err
	}

	if err := s.verifyOwnership(customer.ID, accountID); err != nil {
		s.countFailure("withdrawal", "not_owner")
		return err
	}

	mu := s.lockFor(accountID)
	mu.Lock()
	defer mu.Unlock()

	// Re-read under the lock so concurrent withdrawals see committed balances
	account, err = s.getAccount(accountID)
	if err != nil {
		return err
	}

	if !account.CanOverdraw() && account.Balance.LessThan(amount) {
		s.countFailure("withdrawal", "insufficient_funds")
		return errors.ErrInsufficientFunds
	}

	newBalance := models.RoundBalance(account.Balance.Sub(amount))
	entry := &models.Transaction{
		TransactionType: models.TransactionTypeDebit,
		Amount:          amount,
		BalanceBefore:   account.Balance,
		BalanceAfter:    newBalance,
		Description:     "withdrawal",
		Reference:       models.GenerateTransactionReference(),
	}

	if err := s.accountRepo.CommitBalanceChange(accountID, newBalance, entry); err != nil {
		s.logger.Error("withdrawal commit failed",
			slog.Int64("account_id", accountID),
			slog.String("error", err.Error()))
		if err == errors.ErrConflict {
			s.countFailure("withdrawal", "conflict")
			return err
		}
		s.countFailure("withdrawal", "store")
		return errors.ErrConnectionFailed
	}

	s.metrics.IncrementCounter("transaction.processed.success", map[string]string{"operation": "withdrawal"})
	s.metrics.RecordProcessingTime("transaction.processing", time.Since(start))
	s.audit.record(&customer.ID, models.AuditActionWithdrawal, "account", strconv.FormatInt(accountID, 10),
		models.JSONBMap{"amount": amount.String(), "balance_after": newBalance.String()})

	// Post-commit policy hook: a savings account falling below the floor is
	// converted to chequing and the owner is notified.
	if account.IsSavings() && newBalance.LessThan(models.MinimumSavingsBalance) {
		s.convertToChequing(account, customer.ID)
	}

	return nil
}

// CheckBalance returns the display balance of an account owned by the acting
// customer. An ownership mismatch surfaces as a failed read, not a privilege
// error.
func (s *TransactionService) CheckBalance(session *Session, accountID int64) (decimal.Decimal, error) {
	customer, err := s.requireActingCustomer(session)
	if err != nil {
		return decimal.Zero, err
	}

	ids, err := s.accountRepo.GetOwnedIDs(customer.ID)
	if err != nil {
		s.logger.Error("ownership read failed",
			slog.Int64("user_id", customer.ID),
			slog.String("error", err.Error()))
		return decimal.Zero, errors.ErrConnectionFailed
	}

	if !containsID(ids, accountID) {
		return decimal.Zero, errors.ErrConnectionFailed
	}

	account, err := s.getAccount(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return models.RoundBalance(account.Balance), nil
}

// GiveInterest applies one interest accrual to a single account owned by the
// acting customer. Both the staff principal and the customer context must be
// authenticated.
func (s *TransactionService) GiveInterest(session *Session, accountID int64) error {
	customer, err := s.requireStaffWithCustomer(session)
	if err != nil {
		return err
	}

	if err := s.verifyOwnership(customer.ID, accountID); err != nil {
		return err
	}

	return s.applyInterest(session, customer, accountID)
}

// GiveInterestAll applies one interest accrual to every account owned by the
// acting customer.
func (s *TransactionService) GiveInterestAll(session *Session) error {
	customer, err := s.requireStaffWithCustomer(session)
	if err != nil {
		return err
	}

	ids, err := s.accountRepo.GetOwnedIDs(customer.ID)
	if err != nil {
		return errors.ErrConnectionFailed
	}

	for _, id := range ids {
		if err := s.applyInterest(session, customer, id); err != nil {
			return err
		}
	}

	return nil
}

func (s *TransactionService) applyInterest(session *Session, customer *models.User, accountID int64) error {
	mu := s.lockFor(accountID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.getAccount(accountID)
	if err != nil {
		return err
	}

	rate, err := s.rateCache.Rate(account.AccountType)
	if err != nil {
		s.logger.Error("rate lookup failed",
			slog.String("account_type", account.AccountType),
			slog.String("error", err.Error()))
		return errors.ErrConnectionFailed
	}

	newBalance := account.BalanceWithInterest(rate)
	entry := &models.Transaction{
		TransactionType: models.TransactionTypeInterest,
		Amount:          newBalance.Sub(account.Balance),
		BalanceBefore:   account.Balance,
		BalanceAfter:    newBalance,
		Description:     fmt.Sprintf("interest at rate %s", rate.String()),
		Reference:       models.GenerateTransactionReference(),
	}

	if err := s.accountRepo.CommitBalanceChange(accountID, newBalance, entry); err != nil {
		if err == errors.ErrConflict {
			s.countFailure("interest", "conflict")
			return err
		}
		s.countFailure("interest", "store")
		return errors.ErrConnectionFailed
	}

	s.metrics.IncrementCounter("transaction.processed.success", map[string]string{"operation": "interest"})
	s.audit.record(&session.User.ID, models.AuditActionInterest, "account", strconv.FormatInt(accountID, 10),
		models.JSONBMap{"rate": rate.String(), "balance_after": newBalance.String()})

	s.notify(customer.ID, fmt.Sprintf("%s's Account %d has been given interest", customer.Name, accountID))

	return nil
}

// ConvertSavingsToChequing converts one savings account owned by the acting
// customer. Converting an account that is already chequing is a no-op.
func (s *TransactionService) ConvertSavingsToChequing(session *Session, accountID int64) error {
	customer, err := s.requireActingCustomer(session)
	if err != nil {
		return err
	}

	if err := s.verifyOwnership(customer.ID, accountID); err != nil {
		return err
	}

	account, err := s.getAccount(accountID)
	if err != nil {
		return err
	}

	if account.AccountType == models.AccountTypeChequing {
		return nil
	}

	if !account.IsSavings() {
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthTypePolicyViolation)
	}

	s.convertToChequing(account, customer.ID)
	return nil
}

// OpenAccount creates an account for the acting customer. A savings account
// cannot be opened below the minimum savings balance, and only a balance
// owing account may open in the negative.
func (s *TransactionService) OpenAccount(session *Session, name, accountType string, balance decimal.Decimal) (*models.Account, error) {
	customer, err := s.requireStaffWithCustomer(session)
	if err != nil {
		return nil, err
	}

	if !models.IsValidAccountType(accountType) {
		return nil, models.ErrInvalidAccountType
	}

	if balance.IsNegative() && accountType != models.AccountTypeBalanceOwing {
		return nil, errors.ErrIllegalAmount
	}

	if accountType == models.AccountTypeSavings && balance.LessThan(models.MinimumSavingsBalance) {
		return nil, errors.ErrIllegalAmount
	}

	rate, err := s.rateCache.Rate(accountType)
	if err != nil {
		return nil, errors.ErrConnectionFailed
	}

	account := &models.Account{
		UserID:       customer.ID,
		Name:         name,
		AccountType:  accountType,
		Balance:      balance,
		InterestRate: rate,
	}

	if err := s.accountRepo.Create(account); err != nil {
		s.logger.Error("account creation failed",
			slog.Int64("user_id", customer.ID),
			slog.String("error", err.Error()))
		return nil, errors.ErrConnectionFailed
	}

	// Opening ledger row. A failure here is logged and swallowed; the account
	// itself stands.
	if !account.Balance.IsZero() {
		entry := &models.Transaction{
			TransactionType: models.TransactionTypeCredit,
			Amount:          account.Balance,
			BalanceBefore:   decimal.Zero,
			BalanceAfter:    account.Balance,
			Description:     "opening balance",
			Reference:       models.GenerateTransactionReference(),
		}
		if err := s.accountRepo.CommitBalanceChange(account.ID, account.Balance, entry); err != nil {
			s.logger.Error("opening ledger entry failed",
				slog.Int64("account_id", account.ID),
				slog.String("error", err.Error()))
		}
	}

	s.metrics.IncrementCounter("account.opened", map[string]string{"account_type": accountType})
	s.audit.record(&session.User.ID, models.AuditActionAccountCreated, "account", strconv.FormatInt(account.ID, 10),
		models.JSONBMap{"account_type": accountType, "opening_balance": balance.String()})

	return account, nil
}

// ListAccounts returns every account owned by the acting customer
func (s *TransactionService) ListAccounts(session *Session) ([]models.Account, error) {
	customer, err := s.requireActingCustomer(session)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.GetByUserID(customer.ID)
	if err != nil {
		return nil, errors.ErrConnectionFailed
	}

	return accounts, nil
}

// requireActingCustomer resolves the customer the session operates on behalf
// of: the principal itself for a customer session, the authenticated customer
// context for a staff session.
func (s *TransactionService) requireActingCustomer(session *Session) (*models.User, error) {
	if session == nil || !session.IsAuthenticated() {
		return nil, errors.ErrInsufficientPrivileges
	}

	customer := session.ActingCustomer()
	if customer == nil {
		return nil, errors.ErrInsufficientPrivileges
	}

	return customer, nil
}

// requireStaffWithCustomer additionally requires the principal to be staff
func (s *TransactionService) requireStaffWithCustomer(session *Session) (*models.User, error) {
	if session == nil || !session.IsAuthenticated() {
		return nil, errors.ErrInsufficientPrivileges
	}

	if !session.User.IsStaff() {
		return nil, errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}

	customer := session.ActingCustomer()
	if customer == nil {
		return nil, errors.ErrInsufficientPrivileges
	}

	return customer, nil
}

func (s *TransactionService) verifyOwnership(userID, accountID int64) error {
	ids, err := s.accountRepo.GetOwnedIDs(userID)
	if err != nil {
		s.logger.Error("ownership read failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return errors.ErrConnectionFailed
	}

	if !containsID(ids, accountID) {
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthNotOwner)
	}

	return nil
}

func (s *TransactionService) getAccount(accountID int64) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return nil, errors.Coded(errors.ErrConnectionFailed, errors.StoreNotFound)
		}
		s.logger.Error("account read failed",
			slog.Int64("account_id", accountID),
			slog.String("error", err.Error()))
		return nil, errors.ErrConnectionFailed
	}
	return account, nil
}

func (s *TransactionService) convertToChequing(account *models.Account, ownerID int64) {
	if err := s.accountRepo.ConvertType(account.ID, models.AccountTypeChequing); err != nil {
		s.logger.Error("savings conversion failed",
			slog.Int64("account_id", account.ID),
			slog.String("error", err.Error()))
		return
	}

	s.audit.record(&ownerID, models.AuditActionTypeConverted, "account", strconv.FormatInt(account.ID, 10),
		models.JSONBMap{"from": account.AccountType, "to": models.AccountTypeChequing})

	s.notify(ownerID, fmt.Sprintf(
		"Account %d has been converted from a Savings account to a Chequing account", account.ID))
}

// notify drops a mailbox message to the owner. Notification failures are
// logged and swallowed; the committed mutation stands.
func (s *TransactionService) notify(userID int64, body string) {
	message := &models.Message{
		UserID: userID,
		Body:   body,
	}
	if err := s.messageRepo.Create(message); err != nil {
		s.logger.Error("failed to create notification message",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
	}
}

func (s *TransactionService) countFailure(operation, reason string) {
	s.metrics.IncrementCounter("transaction.processed.failed",
		map[string]string{"operation": operation, "reason": reason})
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

package terminal

import (
	"bank-management/internal/dto"
	"bank-management/internal/errors"
	"bank-management/internal/services"
	"bank-management/internal/validation"
)

// ATM is the customer-facing terminal. It binds one session to the service
// layer; a customer authenticates and then operates on its own accounts and
// mailbox.
type ATM struct {
	session      *services.Session
	auth         services.AuthServiceInterface
	transactions services.TransactionServiceInterface
	messages     services.MessageServiceInterface
	users        services.UserServiceInterface
	validator    *validation.Validator
}

// NewATM creates a customer terminal with a fresh session
func NewATM(
	auth services.AuthServiceInterface,
	transactions services.TransactionServiceInterface,
	messages services.MessageServiceInterface,
	users services.UserServiceInterface,
) *ATM {
	return &ATM{
		session:      services.NewSession(),
		auth:         auth,
		transactions: transactions,
		messages:     messages,
		users:        users,
		validator:    validation.GetValidator(),
	}
}

// Session exposes the terminal's session
func (a *ATM) Session() *services.Session {
	return a.session
}

// Login authenticates the terminal's principal
func (a *ATM) Login(req dto.LoginRequest) error {
	if err := a.validator.Validate(req); err != nil {
		return err
	}
	return a.auth.Login(a.session, req.UserID, req.Password)
}

// Logout ends the session
func (a *ATM) Logout() {
	a.auth.Logout(a.session)
}

// Deposit adds funds to one of the acting customer's accounts
func (a *ATM) Deposit(req dto.AmountRequest) error {
	if err := a.validator.Validate(req); err != nil {
		return err
	}
	return a.transactions.Deposit(a.session, req.AccountID, req.Amount)
}

// Withdraw removes funds from one of the acting customer's accounts
func (a *ATM) Withdraw(req dto.AmountRequest) error {
	if err := a.validator.Validate(req); err != nil {
		return err
	}
	return a.transactions.Withdraw(a.session, req.AccountID, req.Amount)
}

// CheckBalance reports one account's balance
func (a *ATM) CheckBalance(accountID int64) (*dto.BalanceResponse, error) {
	balance, err := a.transactions.CheckBalance(a.session, accountID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{AccountID: accountID, Balance: balance.StringFixed(2)}, nil
}

// ListAccounts lists the acting customer's accounts
func (a *ATM) ListAccounts() ([]dto.AccountResponse, error) {
	accounts, err := a.transactions.ListAccounts(a.session)
	if err != nil {
		return nil, err
	}
	return toAccountResponses(accounts), nil
}

// ConvertSavingsToChequing converts one of the acting customer's savings
// accounts in place.
func (a *ATM) ConvertSavingsToChequing(accountID int64) error {
	return a.transactions.ConvertSavingsToChequing(a.session, accountID)
}

// ViewMessages returns the principal's mailbox, marking entries viewed
func (a *ATM) ViewMessages() ([]dto.MessageResponse, error) {
	messages, err := a.messages.ViewOwnMessages(a.session)
	if err != nil {
		return nil, err
	}
	return toMessageResponses(messages), nil
}

// ViewMessage returns one message body, flipping the viewed flag when the
// principal is the target.
func (a *ATM) ViewMessage(messageID int64) (string, error) {
	return a.messages.ViewMessage(a.session, messageID)
}

// UpdateProfile applies any non-empty fields to the principal's own profile
func (a *ATM) UpdateProfile(req dto.UpdateProfileRequest) error {
	if err := a.validator.Validate(req); err != nil {
		return err
	}
	if !a.session.IsAuthenticated() {
		return errors.ErrInsufficientPrivileges
	}
	return a.applyProfileUpdate(a.session.User.ID, req)
}

func (a *ATM) applyProfileUpdate(userID int64, req dto.UpdateProfileRequest) error {
	if req.Name != "" {
		if err := a.users.UpdateUserName(a.session, userID, req.Name); err != nil {
			return err
		}
	}
	if req.Address != "" {
		if err := a.users.UpdateUserAddress(a.session, userID, req.Address); err != nil {
			return err
		}
	}
	if req.Password != "" {
		if err := a.users.UpdateUserPassword(a.session, userID, req.Password); err != nil {
			return err
		}
	}
	return nil
}

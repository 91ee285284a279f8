package terminal

import (
	"bank-management/internal/dto"
	"bank-management/internal/services"
)

// TellerTerminal is the staff-facing terminal. A teller logs in with its own
// credentials, then authenticates a customer; money movement operations run
// against that customer's accounts.
type TellerTerminal struct {
	*ATM
	admin services.AdminServiceInterface
}

// NewTellerTerminal creates a staff terminal with a fresh session
func NewTellerTerminal(
	auth services.AuthServiceInterface,
	transactions services.TransactionServiceInterface,
	messages services.MessageServiceInterface,
	users services.UserServiceInterface,
	admin services.AdminServiceInterface,
) *TellerTerminal {
	return &TellerTerminal{
		ATM:   NewATM(auth, transactions, messages, users),
		admin: admin,
	}
}

// AuthenticateCustomer verifies a customer inside the staff session
func (t *TellerTerminal) AuthenticateCustomer(req dto.CustomerAuthRequest) error {
	if err := t.validator.Validate(req); err != nil {
		return err
	}
	return t.auth.AuthenticateCustomer(t.session, req.CustomerID, req.Password)
}

// DeauthenticateCustomer clears the customer context, keeping the staff login
func (t *TellerTerminal) DeauthenticateCustomer() {
	t.auth.DeauthenticateCustomer(t.session)
}

// OpenAccount opens an account for the authenticated customer
func (t *TellerTerminal) OpenAccount(req dto.OpenAccountRequest) (*dto.AccountResponse, error) {
	if err := t.validator.Validate(req); err != nil {
		return nil, err
	}
	account, err := t.transactions.OpenAccount(t.session, req.Name, req.AccountType, req.Balance)
	if err != nil {
		return nil, err
	}
	response := toAccountResponse(account)
	return &response, nil
}

// CreateCustomer registers a new customer principal and makes them the
// session's customer context, verified with the password just collected.
func (t *TellerTerminal) CreateCustomer(req dto.CreateCustomerRequest) (*dto.UserResponse, error) {
	if err := t.validator.Validate(req); err != nil {
		return nil, err
	}
	user, err := t.users.CreateCustomer(t.session, req.Name, req.Age, req.Address, req.Password)
	if err != nil {
		return nil, err
	}
	if err := t.auth.AuthenticateCustomer(t.session, user.ID, req.Password); err != nil {
		return nil, err
	}
	response := toUserResponse(user)
	return &response, nil
}

// GiveInterest accrues interest on one of the customer's accounts
func (t *TellerTerminal) GiveInterest(accountID int64) error {
	return t.transactions.GiveInterest(t.session, accountID)
}

// GiveInterestAll accrues interest on every account the customer owns
func (t *TellerTerminal) GiveInterestAll() error {
	return t.transactions.GiveInterestAll(t.session)
}

// LeaveMessage stores a message in a user's mailbox
func (t *TellerTerminal) LeaveMessage(req dto.LeaveMessageRequest) (*dto.MessageResponse, error) {
	if err := t.validator.Validate(req); err != nil {
		return nil, err
	}
	message, err := t.messages.LeaveMessage(t.session, req.TargetUserID, req.Body)
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{
		ID:        message.ID,
		Body:      message.Body,
		Viewed:    message.Viewed,
		CreatedAt: message.CreatedAt,
	}, nil
}

// ViewCustomerMessages reads a customer's mailbox without marking it viewed
func (t *TellerTerminal) ViewCustomerMessages(customerID int64) ([]dto.MessageResponse, error) {
	messages, err := t.messages.ViewCustomerMessages(t.session, customerID)
	if err != nil {
		return nil, err
	}
	return toMessageResponses(messages), nil
}

// UpdateCustomerProfile applies non-empty fields to another user's profile
func (t *TellerTerminal) UpdateCustomerProfile(userID int64, req dto.UpdateProfileRequest) error {
	if err := t.validator.Validate(req); err != nil {
		return err
	}
	return t.applyProfileUpdate(userID, req)
}

// UserTotalBalance sums one user's account balances
func (t *TellerTerminal) UserTotalBalance(userID int64) (*dto.TotalBalanceResponse, error) {
	total, err := t.admin.UserTotalBalance(t.session, userID)
	if err != nil {
		return nil, err
	}
	return &dto.TotalBalanceResponse{Total: total.StringFixed(2)}, nil
}

package terminal

import (
	"bank-management/internal/dto"
	"bank-management/internal/services"
)

// AdminTerminal extends the teller terminal with administrative operations
type AdminTerminal struct {
	*TellerTerminal
}

// NewAdminTerminal creates an admin terminal with a fresh session
func NewAdminTerminal(
	auth services.AuthServiceInterface,
	transactions services.TransactionServiceInterface,
	messages services.MessageServiceInterface,
	users services.UserServiceInterface,
	admin services.AdminServiceInterface,
) *AdminTerminal {
	return &AdminTerminal{
		TellerTerminal: NewTellerTerminal(auth, transactions, messages, users, admin),
	}
}

// PromoteTeller promotes a teller to admin in place
func (a *AdminTerminal) PromoteTeller(tellerID int64) error {
	return a.admin.PromoteTellerToAdmin(a.session, tellerID)
}

// BankTotalBalance sums every account balance held by the bank
func (a *AdminTerminal) BankTotalBalance() (*dto.TotalBalanceResponse, error) {
	total, err := a.admin.BankTotalBalance(a.session)
	if err != nil {
		return nil, err
	}
	return &dto.TotalBalanceResponse{Total: total.StringFixed(2)}, nil
}

// CreateUser registers a principal of any role
func (a *AdminTerminal) CreateUser(req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := a.validator.Validate(req); err != nil {
		return nil, err
	}
	user, err := a.users.CreateUser(a.session, req.Name, req.Age, req.Address, req.Role, req.Password)
	if err != nil {
		return nil, err
	}
	response := toUserResponse(user)
	return &response, nil
}

// ListUsersByRole lists every principal holding a role
func (a *AdminTerminal) ListUsersByRole(role string) ([]dto.UserResponse, error) {
	users, err := a.admin.ListUsersByRole(a.session, role)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

package terminal

import (
	"log/slog"
	"testing"

	"bank-management/internal/database"
	"bank-management/internal/dto"
	apperrors "bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/repositories"
	"bank-management/internal/services"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TerminalTestSuite wires real repositories and services over an in-memory
// database and drives them through the terminal facades.
type TerminalTestSuite struct {
	suite.Suite
	db           *database.DB
	userRepo     repositories.UserRepositoryInterface
	accountRepo  repositories.AccountRepositoryInterface
	passwords    services.PasswordServiceInterface
	auth         services.AuthServiceInterface
	transactions services.TransactionServiceInterface
	messages     services.MessageServiceInterface
	users        services.UserServiceInterface
	admin        services.AdminServiceInterface
}

func (s *TerminalTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	s.userRepo = repositories.NewUserRepository(s.db.DB)
	s.accountRepo = repositories.NewAccountRepository(s.db.DB)
	messageRepo := repositories.NewMessageRepository(s.db.DB)
	accountTypeRepo := repositories.NewAccountTypeRepository(s.db.DB)
	auditRepo := repositories.NewAuditLogRepository(s.db.DB)

	logger := slog.Default()
	metrics := services.NewNoopMetrics()
	s.passwords = services.NewPasswordServiceWithCost(4)

	s.auth = services.NewAuthService(s.userRepo, auditRepo, s.passwords, metrics, logger, 600, 50)
	s.transactions = services.NewTransactionService(
		s.accountRepo, messageRepo, auditRepo, services.NewRateCache(accountTypeRepo), metrics, logger)
	s.messages = services.NewMessageService(messageRepo, s.userRepo, logger)
	s.users = services.NewUserService(s.userRepo, auditRepo, s.passwords, logger)
	s.admin = services.NewAdminService(s.userRepo, s.accountRepo, messageRepo, auditRepo, metrics, logger)
}

func (s *TerminalTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestTerminalSuite(t *testing.T) {
	suite.Run(t, new(TerminalTestSuite))
}

func (s *TerminalTestSuite) createPrincipal(role, password string) *models.User {
	hash, err := s.passwords.HashPassword(password)
	s.Require().NoError(err)

	user := &models.User{
		Name:         gofakeit.Name(),
		Age:          gofakeit.Number(18, 90),
		Address:      gofakeit.Street(),
		Role:         role,
		PasswordHash: hash,
	}
	s.Require().NoError(s.userRepo.Create(user))
	return user
}

func (s *TerminalTestSuite) atm() *ATM {
	return NewATM(s.auth, s.transactions, s.messages, s.users)
}

func (s *TerminalTestSuite) tellerTerminal() *TellerTerminal {
	return NewTellerTerminal(s.auth, s.transactions, s.messages, s.users, s.admin)
}

func (s *TerminalTestSuite) adminTerminal() *AdminTerminal {
	return NewAdminTerminal(s.auth, s.transactions, s.messages, s.users, s.admin)
}

func (s *TerminalTestSuite) loginTellerWithCustomer(terminal *TellerTerminal, teller, customer *models.User) {
	s.Require().NoError(terminal.Login(dto.LoginRequest{UserID: teller.ID, Password: "teller pass"}))
	s.Require().NoError(terminal.AuthenticateCustomer(dto.CustomerAuthRequest{
		CustomerID: customer.ID, Password: "customer pass"}))
}

func (s *TerminalTestSuite) TestATM_DepositWithdrawCheckBalance() {
	customer := s.createPrincipal(models.RoleCustomer, "customer pass")
	account := database.CreateTestAccount(s.T(), s.db, customer.ID, models.AccountTypeChequing, decimal.NewFromInt(100))

	atm := s.atm()
	s.Require().NoError(atm.Login(dto.LoginRequest{UserID: customer.ID, Password: "customer pass"}))

	s.NoError(atm.Deposit(dto.AmountRequest{AccountID: account.ID, Amount: decimal.NewFromFloat(50.25)}))
	s.NoError(atm.Withdraw(dto.AmountRequest{AccountID: account.ID, Amount: decimal.NewFromInt(30)}))

	balance, err := atm.CheckBalance(account.ID)
	s.Require().NoError(err)
	s.Equal("120.25", balance.Balance)

	accounts, err := atm.ListAccounts()
	s.Require().NoError(err)
	s.Len(accounts, 1)

	atm.Logout()
	s.ErrorIs(atm.Deposit(dto.AmountRequest{AccountID: account.ID, Amount: decimal.NewFromInt(1)}),
		apperrors.ErrInsufficientPrivileges)
}

func (s *TerminalTestSuite) TestATM_BalanceOwing_NegativeWithdrawalReachesEngine() {
	customer := s.createPrincipal(models.RoleCustomer, "customer pass")
	owing := database.CreateTestAccount(s.T(), s.db, customer.ID, models.AccountTypeBalanceOwing, decimal.NewFromInt(20))
	chequing := database.CreateTestAccount(s.T(), s.db, customer.ID, models.AccountTypeChequing, decimal.NewFromInt(20))

	atm := s.atm()
	s.Require().NoError(atm.Login(dto.LoginRequest{UserID: customer.ID, Password: "customer pass"}))

	// Balance owing is exempt from the positivity rule
	s.Require().NoError(atm.Withdraw(dto.AmountRequest{AccountID: owing.ID, Amount: decimal.NewFromInt(-10)}))

	balance, err := atm.CheckBalance(owing.ID)
	s.Require().NoError(err)
	s.Equal("30.00", balance.Balance)

	// Other types still reject non-positive amounts, in the engine
	err = atm.Withdraw(dto.AmountRequest{AccountID: chequing.ID, Amount: decimal.NewFromInt(-10)})
	s.ErrorIs(err, apperrors.ErrIllegalAmount)
}

func (s *TerminalTestSuite) TestATM_WrongPasswordRejected() {
	customer := s.createPrincipal(models.RoleCustomer, "customer pass")

	atm := s.atm()
	err := atm.Login(dto.LoginRequest{UserID: customer.ID, Password: "nope"})
	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)
	s.False(atm.Session().IsAuthenticated())
}

func (s *TerminalTestSuite) TestSavingsFallsBelowFloor_ConvertsAndNotifies() {
	teller := s.createPrincipal(models.RoleTeller, "teller pass")
	customer := s.createPrincipal(models.RoleCustomer, "customer pass")

	terminal := s.tellerTerminal()
	s.loginTellerWithCustomer(terminal, teller, customer)

	opened, err := terminal.OpenAccount(dto.OpenAccountRequest{
		Name:        "nest egg",
		AccountType: models.AccountTypeSavings,
		Balance:     decimal.NewFromInt(1000),
	})
	s.Require().NoError(err)

	atm := s.atm()
	s.Require().NoError(atm.Login(dto.LoginRequest{UserID: customer.ID, Password: "customer pass"}))
	s.Require().NoError(atm.Deposit(dto.AmountRequest{AccountID: opened.ID, Amount: decimal.NewFromInt(500)}))
	s.Require().NoError(atm.Withdraw(dto.AmountRequest{AccountID: opened.ID, Amount: decimal.NewFromInt(600)}))

	balance, err := atm.CheckBalance(opened.ID)
	s.Require().NoError(err)
	s.Equal("900.00", balance.Balance)

	account, err := s.accountRepo.GetByID(opened.ID)
	s.Require().NoError(err)
	s.Equal(models.AccountTypeChequing, account.AccountType)

	mailbox, err := atm.ViewMessages()
	s.Require().NoError(err)
	s.Require().NotEmpty(mailbox)
	s.Contains(mailbox[len(mailbox)-1].Body, "converted from a Savings account to a Chequing account")
}

func (s *TerminalTestSuite) TestRestrictedSavings_WithdrawalAlwaysRejected() {
	teller := s.createPrincipal(models.RoleTeller, "teller pass")
	customer := s.createPrincipal(models.RoleCustomer, "customer pass")

	terminal := s.tellerTerminal()
	s.loginTellerWithCustomer(terminal, teller, customer)

	opened, err := terminal.OpenAccount(dto.OpenAccountRequest{
		Name:        "locked",
		AccountType: models.AccountTypeRestrictedSavings,
		Balance:     decimal.NewFromInt(5000),
	})
	s.Require().NoError(err)

	atm := s.atm()
	s.Require().NoError(atm.Login(dto.LoginRequest{UserID: customer.ID, Password: "customer pass"}))

	err = atm.Withdraw(dto.AmountRequest{AccountID: opened.ID, Amount: decimal.NewFromInt(1)})
	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)

	s.NoError(atm.Deposit(dto.AmountRequest{AccountID: opened.ID, Amount: decimal.NewFromInt(100)}))
}

func (s *TerminalTestSuite) TestTeller_CreateCustomerAndGiveInterest() {
	teller := s.createPrincipal(models.RoleTeller, "teller pass")

	terminal := s.tellerTerminal()
	s.Require().NoError(terminal.Login(dto.LoginRequest{UserID: teller.ID, Password: "teller pass"}))

	created, err := terminal.CreateCustomer(dto.CreateCustomerRequest{
		Name:     "Alice Morgan",
		Age:      34,
		Address:  "55 King St",
		Password: "customer pass",
	})
	s.Require().NoError(err)

	// The new customer is authenticated as the session's customer context
	s.Require().NotNil(terminal.Session().ActingCustomer())
	s.Equal(created.ID, terminal.Session().ActingCustomer().ID)

	opened, err := terminal.OpenAccount(dto.OpenAccountRequest{
		Name:        "nest egg",
		AccountType: models.AccountTypeSavings,
		Balance:     decimal.NewFromInt(1000),
	})
	s.Require().NoError(err)

	s.Require().NoError(terminal.GiveInterest(opened.ID))

	// 1% savings rate seeded by default
	account, err := s.accountRepo.GetByID(opened.ID)
	s.Require().NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromInt(1010)), "got %s", account.Balance)
}

func (s *TerminalTestSuite) TestTeller_LeaveMessageReachesCustomer() {
	teller := s.createPrincipal(models.RoleTeller, "teller pass")
	customer := s.createPrincipal(models.RoleCustomer, "customer pass")

	terminal := s.tellerTerminal()
	s.Require().NoError(terminal.Login(dto.LoginRequest{UserID: teller.ID, Password: "teller pass"}))

	_, err := terminal.LeaveMessage(dto.LeaveMessageRequest{
		TargetUserID: customer.ID, Body: "your card is ready"})
	s.Require().NoError(err)

	// Staff preview leaves the viewed flag alone
	preview, err := terminal.ViewCustomerMessages(customer.ID)
	s.Require().NoError(err)
	s.Require().Len(preview, 1)
	s.False(preview[0].Viewed)

	atm := s.atm()
	s.Require().NoError(atm.Login(dto.LoginRequest{UserID: customer.ID, Password: "customer pass"}))

	mailbox, err := atm.ViewMessages()
	s.Require().NoError(err)
	s.Require().Len(mailbox, 1)
	s.True(mailbox[0].Viewed)
	s.Contains(mailbox[0].Body, "FROM: "+teller.Name)
	s.Contains(mailbox[0].Body, "your card is ready")
}

func (s *TerminalTestSuite) TestAdmin_PromoteTellerAndBankTotal() {
	admin := s.createPrincipal(models.RoleAdmin, "admin pass")
	teller := s.createPrincipal(models.RoleTeller, "teller pass")
	customer := s.createPrincipal(models.RoleCustomer, "customer pass")
	database.CreateTestAccount(s.T(), s.db, customer.ID, models.AccountTypeChequing, decimal.NewFromInt(250))
	database.CreateTestAccount(s.T(), s.db, customer.ID, models.AccountTypeBalanceOwing, decimal.NewFromInt(-50))

	terminal := s.adminTerminal()
	s.Require().NoError(terminal.Login(dto.LoginRequest{UserID: admin.ID, Password: "admin pass"}))

	total, err := terminal.BankTotalBalance()
	s.Require().NoError(err)
	s.Equal("200.00", total.Total)

	s.Require().NoError(terminal.PromoteTeller(teller.ID))

	promoted, err := s.userRepo.GetByID(teller.ID)
	s.Require().NoError(err)
	s.True(promoted.IsAdmin())

	// A second promotion finds an admin, not a teller
	s.ErrorIs(terminal.PromoteTeller(teller.ID), apperrors.ErrInsufficientPrivileges)
}

func (s *TerminalTestSuite) TestAdmin_CreateTellerAndListByRole() {
	admin := s.createPrincipal(models.RoleAdmin, "admin pass")

	terminal := s.adminTerminal()
	s.Require().NoError(terminal.Login(dto.LoginRequest{UserID: admin.ID, Password: "admin pass"}))

	created, err := terminal.CreateUser(dto.CreateUserRequest{
		Name:     "Tina Teller",
		Age:      41,
		Address:  "60 Queen St",
		Role:     models.RoleTeller,
		Password: "teller pass",
	})
	s.Require().NoError(err)

	tellers, err := terminal.ListUsersByRole(models.RoleTeller)
	s.Require().NoError(err)
	s.Require().Len(tellers, 1)
	s.Equal(created.ID, tellers[0].ID)
}

func (s *TerminalTestSuite) TestTeller_CannotPerformAdminOperations() {
	teller := s.createPrincipal(models.RoleTeller, "teller pass")

	terminal := s.adminTerminal()
	s.Require().NoError(terminal.Login(dto.LoginRequest{UserID: teller.ID, Password: "teller pass"}))

	_, err := terminal.BankTotalBalance()
	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)

	_, err = terminal.CreateUser(dto.CreateUserRequest{
		Name:     "Tina Teller",
		Age:      41,
		Address:  "60 Queen St",
		Role:     models.RoleTeller,
		Password: "teller pass",
	})
	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)
}

func (s *TerminalTestSuite) TestATM_UpdateOwnProfile() {
	customer := s.createPrincipal(models.RoleCustomer, "customer pass")

	atm := s.atm()
	s.Require().NoError(atm.Login(dto.LoginRequest{UserID: customer.ID, Password: "customer pass"}))

	s.Require().NoError(atm.UpdateProfile(dto.UpdateProfileRequest{
		Name:     "Renamed Customer",
		Password: "new pass",
	}))
	atm.Logout()

	s.ErrorIs(atm.Login(dto.LoginRequest{UserID: customer.ID, Password: "customer pass"}),
		apperrors.ErrInsufficientPrivileges)
	s.Require().NoError(atm.Login(dto.LoginRequest{UserID: customer.ID, Password: "new pass"}))

	updated, err := s.userRepo.GetByID(customer.ID)
	s.Require().NoError(err)
	s.Equal("Renamed Customer", updated.Name)
}

package services

import (
	"log/slog"
	"testing"

	apperrors "bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/repositories"
	"bank-management/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	userRepo    *repository_mocks.MockUserRepositoryInterface
	auditRepo   *repository_mocks.MockAuditLogRepositoryInterface
	authService AuthServiceInterface

	customerHash string
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.auditRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.authService = NewAuthService(
		s.userRepo, s.auditRepo, NewPasswordServiceWithCost(4), NewNoopMetrics(), slog.Default(), 600, 10)

	hash, err := bcrypt.GenerateFromPassword([]byte("right password"), 4)
	s.Require().NoError(err)
	s.customerHash = string(hash)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) customer() *models.User {
	return &models.User{ID: 1, Name: "Alice", Role: models.RoleCustomer, PasswordHash: s.customerHash}
}

func (s *AuthServiceTestSuite) teller() *models.User {
	return &models.User{ID: 2, Name: "Tom", Role: models.RoleTeller, PasswordHash: s.customerHash}
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	s.userRepo.EXPECT().GetByID(int64(1)).Return(s.customer(), nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	session := NewSession()
	err := s.authService.Login(session, 1, "right password")

	s.NoError(err)
	s.True(session.IsAuthenticated())
	s.Equal(SessionAuthenticated, session.State)
	s.Equal(int64(1), session.User.ID)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	s.userRepo.EXPECT().GetByID(int64(1)).Return(s.customer(), nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	session := NewSession()
	err := s.authService.Login(session, 1, "wrong password")

	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)
	s.Equal(SessionRejected, session.State)
	s.False(session.IsAuthenticated())
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	s.userRepo.EXPECT().GetByID(int64(42)).Return(nil, repositories.ErrUserNotFound)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	session := NewSession()
	err := s.authService.Login(session, 42, "any")

	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)
	s.Equal(SessionRejected, session.State)
}

func (s *AuthServiceTestSuite) TestLogin_Throttled() {
	service := NewAuthService(
		s.userRepo, s.auditRepo, NewPasswordServiceWithCost(4), NewNoopMetrics(), slog.Default(), 1, 1)

	s.userRepo.EXPECT().GetByID(int64(1)).Return(s.customer(), nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	session := NewSession()
	s.NoError(service.Login(session, 1, "right password"))

	// Burst of one: the second immediate attempt is throttled before any
	// credential check.
	err := service.Login(NewSession(), 1, "right password")
	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)
}

func (s *AuthServiceTestSuite) TestLogout_ResetsSession() {
	s.userRepo.EXPECT().GetByID(int64(1)).Return(s.customer(), nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(2)

	session := NewSession()
	s.Require().NoError(s.authService.Login(session, 1, "right password"))

	s.authService.Logout(session)

	s.False(session.IsAuthenticated())
	s.Nil(session.User)
}

func (s *AuthServiceTestSuite) TestAuthenticateCustomer_Success() {
	s.userRepo.EXPECT().GetByID(int64(2)).Return(s.teller(), nil)
	s.userRepo.EXPECT().GetByID(int64(1)).Return(s.customer(), nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(2)

	session := NewSession()
	s.Require().NoError(s.authService.Login(session, 2, "right password"))

	err := s.authService.AuthenticateCustomer(session, 1, "right password")

	s.NoError(err)
	s.Equal(SessionAuthenticated, session.CustomerState)
	s.Equal(int64(1), session.ActingCustomer().ID)
}

func (s *AuthServiceTestSuite) TestAuthenticateCustomer_RequiresStaffSession() {
	session := NewSession()

	err := s.authService.AuthenticateCustomer(session, 1, "right password")

	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)
}

func (s *AuthServiceTestSuite) TestAuthenticateCustomer_RejectsNonCustomerTarget() {
	otherTeller := &models.User{ID: 3, Name: "Tina", Role: models.RoleTeller, PasswordHash: s.customerHash}

	s.userRepo.EXPECT().GetByID(int64(2)).Return(s.teller(), nil)
	s.userRepo.EXPECT().GetByID(int64(3)).Return(otherTeller, nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	session := NewSession()
	s.Require().NoError(s.authService.Login(session, 2, "right password"))

	err := s.authService.AuthenticateCustomer(session, 3, "right password")

	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)
	s.Equal(SessionRejected, session.CustomerState)
}

func (s *AuthServiceTestSuite) TestAuthenticateCustomer_WrongPassword() {
	s.userRepo.EXPECT().GetByID(int64(2)).Return(s.teller(), nil)
	s.userRepo.EXPECT().GetByID(int64(1)).Return(s.customer(), nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(2)

	session := NewSession()
	s.Require().NoError(s.authService.Login(session, 2, "right password"))

	err := s.authService.AuthenticateCustomer(session, 1, "wrong password")

	s.ErrorIs(err, apperrors.ErrInsufficientPrivileges)
	s.Nil(session.ActingCustomer())
}

func (s *AuthServiceTestSuite) TestDeauthenticateCustomer_KeepsStaffAuthentication() {
	s.userRepo.EXPECT().GetByID(int64(2)).Return(s.teller(), nil)
	s.userRepo.EXPECT().GetByID(int64(1)).Return(s.customer(), nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(2)

	session := NewSession()
	s.Require().NoError(s.authService.Login(session, 2, "right password"))
	s.Require().NoError(s.authService.AuthenticateCustomer(session, 1, "right password"))

	s.authService.DeauthenticateCustomer(session)

	s.True(session.IsAuthenticated())
	s.Nil(session.Customer)
	s.Equal(SessionUnauthenticated, session.CustomerState)
}

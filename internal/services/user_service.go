package services

import (
	"log/slog"
	"strconv"

	"bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/repositories"
)

// UserService manages principals. Staff create users; profile updates are
// allowed on any non-admin target, or on the caller itself.
type UserService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	audit           *auditLogger
	logger          *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	passwordService PasswordServiceInterface,
	logger *slog.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:        userRepo,
		passwordService: passwordService,
		audit:           newAuditLogger(auditRepo, logger),
		logger:          logger,
	}
}

// CreateCustomer creates a customer principal. Tellers and admins may both
// create customers.
func (s *UserService) CreateCustomer(session *Session, name string, age int, address, password string) (*models.User, error) {
	if err := s.requireStaff(session); err != nil {
		return nil, err
	}

	return s.create(session, name, age, address, models.RoleCustomer, password)
}

// CreateUser creates a principal of any role. Only admins may create staff.
func (s *UserService) CreateUser(session *Session, name string, age int, address, role, password string) (*models.User, error) {
	if err := s.requireStaff(session); err != nil {
		return nil, err
	}

	if !models.IsValidRole(role) {
		return nil, models.ErrInvalidRole
	}

	if role != models.RoleCustomer && !session.User.IsAdmin() {
		return nil, errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}

	return s.create(session, name, age, address, role, password)
}

func (s *UserService) create(session *Session, name string, age int, address, role, password string) (*models.User, error) {
	hash, err := s.passwordService.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Age:          age,
		Address:      address,
		Role:         role,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.Error("user creation failed",
			slog.String("role", role),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.audit.record(&session.User.ID, models.AuditActionUserCreated, "user", strconv.FormatInt(user.ID, 10),
		models.JSONBMap{"role": role})

	return user, nil
}

// UpdateUserName renames a user
func (s *UserService) UpdateUserName(session *Session, userID int64, name string) error {
	if err := s.authorizeProfileUpdate(session, userID); err != nil {
		return err
	}

	if name == "" {
		return models.ErrUserNameEmpty
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"name": name}); err != nil {
		return s.mapUpdateError(err)
	}

	s.audit.record(&session.User.ID, models.AuditActionProfileUpdated, "user", strconv.FormatInt(userID, 10),
		models.JSONBMap{"field": "name"})

	return nil
}

// UpdateUserAddress changes a user's address
func (s *UserService) UpdateUserAddress(session *Session, userID int64, address string) error {
	if err := s.authorizeProfileUpdate(session, userID); err != nil {
		return err
	}

	if len(address) > 100 {
		return models.ErrAddressTooLong
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"address": address}); err != nil {
		return s.mapUpdateError(err)
	}

	s.audit.record(&session.User.ID, models.AuditActionProfileUpdated, "user", strconv.FormatInt(userID, 10),
		models.JSONBMap{"field": "address"})

	return nil
}

// UpdateUserPassword replaces a user's credential
func (s *UserService) UpdateUserPassword(session *Session, userID int64, password string) error {
	if err := s.authorizeProfileUpdate(session, userID); err != nil {
		return err
	}

	hash, err := s.passwordService.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(userID, hash); err != nil {
		return s.mapUpdateError(err)
	}

	s.audit.record(&session.User.ID, models.AuditActionPasswordUpdated, "user", strconv.FormatInt(userID, 10), nil)

	return nil
}

// authorizeProfileUpdate permits a user to edit itself, and staff to edit any
// non-admin target. Admin profiles are only editable by themselves.
func (s *UserService) authorizeProfileUpdate(session *Session, targetID int64) error {
	if session == nil || !session.IsAuthenticated() {
		return errors.ErrInsufficientPrivileges
	}

	if session.User.ID == targetID {
		return nil
	}

	if !session.User.IsStaff() {
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return errors.Coded(errors.ErrConnectionFailed, errors.StoreNotFound)
		}
		return errors.ErrConnectionFailed
	}

	if target.IsAdmin() {
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}

	return nil
}

func (s *UserService) mapUpdateError(err error) error {
	if err == repositories.ErrUserNotFound {
		return errors.Coded(errors.ErrConnectionFailed, errors.StoreNotFound)
	}
	return errors.ErrConnectionFailed
}

func (s *UserService) requireStaff(session *Session) error {
	if session == nil || !session.IsAuthenticated() {
		return errors.ErrInsufficientPrivileges
	}
	if !session.User.IsStaff() {
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}
	return nil
}

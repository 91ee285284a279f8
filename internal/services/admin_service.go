package services

import (
	"fmt"
	"log/slog"
	"strconv"

	"bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/repositories"

	"github.com/shopspring/decimal"
)

// AdminService covers administrative aggregation: role promotion and balance
// rollups.
type AdminService struct {
	userRepo    repositories.UserRepositoryInterface
	accountRepo repositories.AccountRepositoryInterface
	messageRepo repositories.MessageRepositoryInterface
	audit       *auditLogger
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo repositories.UserRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	messageRepo repositories.MessageRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AdminServiceInterface {
	return &AdminService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		messageRepo: messageRepo,
		audit:       newAuditLogger(auditRepo, logger),
		metrics:     metrics,
		logger:      logger,
	}
}

// PromoteTellerToAdmin promotes a teller in place. The candidate must
// currently hold the teller role; promoting anyone else, including an
// already-promoted admin, is rejected and leaves roles unchanged.
func (s *AdminService) PromoteTellerToAdmin(session *Session, tellerID int64) error {
	if err := s.requireAdmin(session); err != nil {
		return err
	}

	candidate, err := s.userRepo.GetByID(tellerID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return errors.Coded(errors.ErrConnectionFailed, errors.StoreNotFound)
		}
		return errors.ErrConnectionFailed
	}

	if !candidate.IsTeller() {
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}

	if err := s.userRepo.UpdateRole(tellerID, models.RoleAdmin); err != nil {
		s.logger.Error("role promotion failed",
			slog.Int64("teller_id", tellerID),
			slog.String("error", err.Error()))
		return errors.ErrConnectionFailed
	}

	s.audit.record(&session.User.ID, models.AuditActionUserPromoted, "user", strconv.FormatInt(tellerID, 10),
		models.JSONBMap{"from": models.RoleTeller, "to": models.RoleAdmin})

	s.logger.Info("teller promoted to admin",
		slog.Int64("teller_id", tellerID),
		slog.Int64("promoted_by", session.User.ID))

	return nil
}

// UserTotalBalance sums the balances of every account owned by one user. A
// user with no accounts sums to zero.
func (s *AdminService) UserTotalBalance(session *Session, userID int64) (decimal.Decimal, error) {
	if err := s.requireStaff(session); err != nil {
		return decimal.Zero, err
	}

	total, err := s.accountRepo.TotalBalanceByUserID(userID)
	if err != nil {
		return decimal.Zero, errors.ErrConnectionFailed
	}

	return models.RoundBalance(total), nil
}

// BankTotalBalance sums balances over every principal of every role, leaving
// a review notice in each reviewed account owner's mailbox.
func (s *AdminService) BankTotalBalance(session *Session) (decimal.Decimal, error) {
	if err := s.requireAdmin(session); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, role := range models.RoleNames() {
		users, err := s.userRepo.GetByRole(role)
		if err != nil {
			return decimal.Zero, errors.ErrConnectionFailed
		}

		for _, user := range users {
			userTotal, err := s.accountRepo.TotalBalanceByUserID(user.ID)
			if err != nil {
				return decimal.Zero, errors.ErrConnectionFailed
			}
			total = total.Add(userTotal)

			s.notifyReviewed(user.ID)
		}
	}

	s.audit.record(&session.User.ID, models.AuditActionBalanceReviewed, "bank", "",
		models.JSONBMap{"total": total.String()})

	rounded := models.RoundBalance(total)
	totalFloat, _ := rounded.Float64()
	s.metrics.RecordGauge("bank_balance_total", totalFloat, nil)

	return rounded, nil
}

// ListUsersByRole returns every principal holding a role, ordered by id
func (s *AdminService) ListUsersByRole(session *Session, role string) ([]models.User, error) {
	if err := s.requireStaff(session); err != nil {
		return nil, err
	}

	if !models.IsValidRole(role) {
		return nil, models.ErrInvalidRole
	}

	users, err := s.userRepo.GetByRole(role)
	if err != nil {
		return nil, errors.ErrConnectionFailed
	}

	return users, nil
}

func (s *AdminService) requireAdmin(session *Session) error {
	if session == nil || !session.IsAuthenticated() {
		return errors.ErrInsufficientPrivileges
	}
	if !session.User.IsAdmin() {
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}
	return nil
}

func (s *AdminService) requireStaff(session *Session) error {
	if session == nil || !session.IsAuthenticated() {
		return errors.ErrInsufficientPrivileges
	}
	if !session.User.IsStaff() {
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}
	return nil
}

func (s *AdminService) notifyReviewed(userID int64) {
	message := &models.Message{
		UserID: userID,
		Body:   fmt.Sprintf("System Message: an administrator has reviewed the balances of user %d's accounts", userID),
	}
	if err := s.messageRepo.Create(message); err != nil {
		s.logger.Error("failed to create review notice",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
	}
}

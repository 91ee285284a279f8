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

	"golang.org/x/time/rate"
)

// AuthService drives the session state machine: a synchronous password check
// moves a session from unauthenticated through authenticating to
// authenticated or rejected.
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	audit           *auditLogger
	metrics         MetricsRecorderInterface
	logger          *slog.Logger

	mu       sync.Mutex
	limiters map[int64]*limiterEntry

	loginRate  rate.Limit
	loginBurst int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewAuthService creates a new authentication service. Login attempts are
// throttled per principal id.
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	passwordService PasswordServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	loginRatePerMin, loginBurst int,
) AuthServiceInterface {
	if loginRatePerMin <= 0 {
		loginRatePerMin = 10
	}
	if loginBurst <= 0 {
		loginBurst = 5
	}

	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		audit:           newAuditLogger(auditRepo, logger),
		metrics:         metrics,
		logger:          logger,
		limiters:        make(map[int64]*limiterEntry),
		loginRate:       rate.Limit(float64(loginRatePerMin) / 60.0),
		loginBurst:      loginBurst,
	}
}

// Login authenticates the session principal by user id and password
func (s *AuthService) Login(session *Session, userID int64, password string) error {
	if !s.allow(userID) {
		s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "throttled"})
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthThrottled)
	}

	session.State = SessionAuthenticating

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		session.State = SessionRejected
		if err == repositories.ErrUserNotFound {
			s.auditFailedLogin(userID, "user_not_found")
			// Never reveal whether the id exists
			return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthInvalidCredentials)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(password, user.PasswordHash) {
		session.State = SessionRejected
		s.auditFailedLogin(userID, "wrong_password")
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthInvalidCredentials)
	}

	session.User = user
	session.State = SessionAuthenticated
	session.ResetCustomer()

	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "login"})
	s.audit.record(&user.ID, models.AuditActionLogin, "session", session.ID.String(), nil)

	s.logger.Info("principal authenticated",
		slog.Int64("user_id", user.ID),
		slog.String("role", user.Role))

	return nil
}

// Logout returns the session to its initial state
func (s *AuthService) Logout(session *Session) {
	if session.User != nil {
		s.audit.record(&session.User.ID, models.AuditActionLogout, "session", session.ID.String(), nil)
	}
	session.Reset()
}

// AuthenticateCustomer authenticates the nested customer context of a staff
// session. The staff principal must already be authenticated.
func (s *AuthService) AuthenticateCustomer(session *Session, customerID int64, password string) error {
	if !session.IsAuthenticated() || !session.User.IsStaff() {
		return errors.ErrInsufficientPrivileges
	}

	if !s.allow(customerID) {
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthThrottled)
	}

	session.CustomerState = SessionAuthenticating

	customer, err := s.userRepo.GetByID(customerID)
	if err != nil {
		session.CustomerState = SessionRejected
		if err == repositories.ErrUserNotFound {
			s.auditFailedLogin(customerID, "customer_not_found")
			return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthInvalidCredentials)
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}

	if !customer.IsCustomer() {
		session.CustomerState = SessionRejected
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}

	if !s.passwordService.ComparePassword(password, customer.PasswordHash) {
		session.CustomerState = SessionRejected
		s.auditFailedLogin(customerID, "wrong_password")
		return errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthInvalidCredentials)
	}

	session.Customer = customer
	session.CustomerState = SessionAuthenticated

	s.audit.record(&customer.ID, models.AuditActionLogin, "customer_context", session.ID.String(),
		models.JSONBMap{"staff_id": session.User.ID})

	return nil
}

// DeauthenticateCustomer clears the customer sub-session without touching the
// staff principal's own authentication.
func (s *AuthService) DeauthenticateCustomer(session *Session) {
	session.ResetCustomer()
}

func (s *AuthService) auditFailedLogin(userID int64, reason string) {
	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "failed_login"})
	s.audit.record(nil, models.AuditActionFailedLogin, "user", strconv.FormatInt(userID, 10),
		models.JSONBMap{"reason": reason})
}

func (s *AuthService) allow(principalID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.limiters[principalID]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(s.loginRate, s.loginBurst)}
		s.limiters[principalID] = e
	}
	e.lastSeen = time.Now()

	// Opportunistic cleanup keeps the map bounded without a background goroutine
	if len(s.limiters) > 1024 {
		for id, entry := range s.limiters {
			if time.Since(entry.lastSeen) > 10*time.Minute {
				delete(s.limiters, id)
			}
		}
	}

	return e.limiter.Allow()
}

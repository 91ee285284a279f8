package services

import (
	"bank-management/internal/models"

	"github.com/google/uuid"
)

// SessionState tracks where a principal is in the authentication lifecycle.
// Authenticated is terminal until an explicit logout.
type SessionState string

const (
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionAuthenticating  SessionState = "authenticating"
	SessionAuthenticated   SessionState = "authenticated"
	SessionRejected        SessionState = "rejected"
)

// Session is the ephemeral, process-local state of one terminal interaction.
// It is never persisted. A staff session additionally carries a nested
// customer sub-session, independently resettable without destroying the
// staff principal's own authentication.
type Session struct {
	ID    uuid.UUID
	User  *models.User
	State SessionState

	Customer      *models.User
	CustomerState SessionState
}

// NewSession creates an unauthenticated session
func NewSession() *Session {
	return &Session{
		ID:            uuid.New(),
		State:         SessionUnauthenticated,
		CustomerState: SessionUnauthenticated,
	}
}

// IsAuthenticated reports whether the principal has passed a password check
// for this session.
func (s *Session) IsAuthenticated() bool {
	return s.State == SessionAuthenticated && s.User != nil
}

// HasCustomerContext reports whether an acting customer is authenticated for
// this session. For a customer's own session, the principal is the context.
func (s *Session) HasCustomerContext() bool {
	if s.IsAuthenticated() && s.User.IsCustomer() {
		return true
	}
	return s.CustomerState == SessionAuthenticated && s.Customer != nil
}

// ActingCustomer returns the customer on whose behalf operations run: the
// principal itself for a customer session, the authenticated customer context
// for a staff session, nil otherwise.
func (s *Session) ActingCustomer() *models.User {
	if !s.IsAuthenticated() {
		return nil
	}
	if s.User.IsCustomer() {
		return s.User
	}
	if s.CustomerState == SessionAuthenticated {
		return s.Customer
	}
	return nil
}

// Reset returns the session to its initial state
func (s *Session) Reset() {
	s.User = nil
	s.State = SessionUnauthenticated
	s.ResetCustomer()
}

// ResetCustomer clears only the nested customer sub-session
func (s *Session) ResetCustomer() {
	s.Customer = nil
	s.CustomerState = SessionUnauthenticated
}

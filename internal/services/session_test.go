package services

import (
	"testing"

	"bank-management/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewSession_StartsUnauthenticated(t *testing.T) {
	session := NewSession()

	assert.Equal(t, SessionUnauthenticated, session.State)
	assert.Equal(t, SessionUnauthenticated, session.CustomerState)
	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, session.ActingCustomer())
}

func TestSession_ActingCustomer_CustomerPrincipal(t *testing.T) {
	customer := &models.User{ID: 1, Name: "Alice", Role: models.RoleCustomer}
	session := NewSession()
	session.User = customer
	session.State = SessionAuthenticated

	assert.True(t, session.HasCustomerContext())
	assert.Equal(t, customer, session.ActingCustomer())
}

func TestSession_ActingCustomer_StaffWithoutContext(t *testing.T) {
	session := NewSession()
	session.User = &models.User{ID: 2, Name: "Tom", Role: models.RoleTeller}
	session.State = SessionAuthenticated

	assert.False(t, session.HasCustomerContext())
	assert.Nil(t, session.ActingCustomer())
}

func TestSession_ActingCustomer_StaffWithContext(t *testing.T) {
	customer := &models.User{ID: 1, Name: "Alice", Role: models.RoleCustomer}
	session := NewSession()
	session.User = &models.User{ID: 2, Name: "Tom", Role: models.RoleTeller}
	session.State = SessionAuthenticated
	session.Customer = customer
	session.CustomerState = SessionAuthenticated

	assert.True(t, session.HasCustomerContext())
	assert.Equal(t, customer, session.ActingCustomer())
}

func TestSession_ResetCustomer_KeepsPrincipal(t *testing.T) {
	session := NewSession()
	session.User = &models.User{ID: 2, Role: models.RoleTeller}
	session.State = SessionAuthenticated
	session.Customer = &models.User{ID: 1, Role: models.RoleCustomer}
	session.CustomerState = SessionAuthenticated

	session.ResetCustomer()

	assert.True(t, session.IsAuthenticated())
	assert.Nil(t, session.Customer)
	assert.Equal(t, SessionUnauthenticated, session.CustomerState)
}

func TestSession_Reset_ClearsEverything(t *testing.T) {
	session := NewSession()
	session.User = &models.User{ID: 2, Role: models.RoleTeller}
	session.State = SessionAuthenticated
	session.Customer = &models.User{ID: 1, Role: models.RoleCustomer}
	session.CustomerState = SessionAuthenticated

	session.Reset()

	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, session.User)
	assert.Nil(t, session.Customer)
}

func TestSession_RejectedIsNotAuthenticated(t *testing.T) {
	session := NewSession()
	session.User = &models.User{ID: 1, Role: models.RoleCustomer}
	session.State = SessionRejected

	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, session.ActingCustomer())
}

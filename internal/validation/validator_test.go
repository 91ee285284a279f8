package validation

import (
	"testing"

	"bank-management/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidator_OpenAccountRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.OpenAccountRequest{
		Name:        "daily",
		AccountType: "chequing",
		Balance:     decimal.NewFromInt(100),
	}
	assert.NoError(t, v.Validate(valid))

	unknownType := valid
	unknownType.AccountType = "money market"
	assert.Error(t, v.Validate(unknownType))

	missingName := valid
	missingName.Name = ""
	assert.Error(t, v.Validate(missingName))
}

func TestValidator_AmountRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.AmountRequest{AccountID: 1, Amount: decimal.NewFromFloat(10.50)}
	assert.NoError(t, v.Validate(valid))

	// Amount is not constrained here: balance owing withdrawals may carry
	// non-positive amounts, and the engine enforces positivity per type
	negative := dto.AmountRequest{AccountID: 1, Amount: decimal.NewFromInt(-5)}
	assert.NoError(t, v.Validate(negative))

	missingAccount := dto.AmountRequest{Amount: decimal.NewFromInt(10)}
	assert.Error(t, v.Validate(missingAccount))
}

func TestValidator_CreateUserRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.CreateUserRequest{
		Name:     "Tina",
		Age:      30,
		Address:  "55 King St",
		Role:     "teller",
		Password: "secret pass",
	}
	assert.NoError(t, v.Validate(valid))

	badRole := valid
	badRole.Role = "janitor"
	assert.Error(t, v.Validate(badRole))

	badAge := valid
	badAge.Age = 300
	assert.Error(t, v.Validate(badAge))
}

func TestValidator_LeaveMessageRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.LeaveMessageRequest{TargetUserID: 1, Body: "your card is ready"}
	assert.NoError(t, v.Validate(valid))

	empty := dto.LeaveMessageRequest{TargetUserID: 1, Body: ""}
	assert.Error(t, v.Validate(empty))
}

func TestGetValidator_ReturnsSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

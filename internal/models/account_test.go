package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr error
	}{
		{
			name: "valid chequing account",
			account: Account{
				UserID:      1,
				Name:        "daily",
				AccountType: AccountTypeChequing,
				Balance:     decimal.NewFromFloat(1000.50),
			},
		},
		{
			name: "valid restricted savings account",
			account: Account{
				UserID:      1,
				Name:        "locked",
				AccountType: AccountTypeRestrictedSavings,
				Balance:     decimal.NewFromInt(5000),
			},
		},
		{
			name: "balance owing may be negative",
			account: Account{
				UserID:      1,
				Name:        "loan",
				AccountType: AccountTypeBalanceOwing,
				Balance:     decimal.NewFromInt(-250),
			},
		},
		{
			name: "missing name",
			account: Account{
				UserID:      1,
				AccountType: AccountTypeChequing,
			},
			wantErr: ErrAccountNameEmpty,
		},
		{
			name: "unknown account type",
			account: Account{
				UserID:      1,
				Name:        "daily",
				AccountType: "money market",
			},
			wantErr: ErrInvalidAccountType,
		},
		{
			name: "negative balance on chequing",
			account: Account{
				UserID:      1,
				Name:        "daily",
				AccountType: AccountTypeChequing,
				Balance:     decimal.NewFromInt(-1),
			},
			wantErr: ErrInvalidBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccount_TypePolicies(t *testing.T) {
	restricted := Account{AccountType: AccountTypeRestrictedSavings, Balance: decimal.NewFromInt(5000)}
	assert.True(t, restricted.WithdrawalsBlocked())
	assert.False(t, restricted.CanWithdraw(decimal.NewFromInt(1)))

	owing := Account{AccountType: AccountTypeBalanceOwing, Balance: decimal.NewFromInt(10)}
	assert.True(t, owing.CanOverdraw())
	assert.True(t, owing.CanWithdraw(decimal.NewFromInt(1000)))

	chequing := Account{AccountType: AccountTypeChequing, Balance: decimal.NewFromInt(10)}
	assert.True(t, chequing.CanWithdraw(decimal.NewFromInt(10)))
	assert.False(t, chequing.CanWithdraw(decimal.NewFromInt(11)))
	assert.False(t, chequing.CanWithdraw(decimal.Zero))

	savings := Account{AccountType: AccountTypeSavings}
	assert.True(t, savings.IsSavings())
	assert.False(t, chequing.IsSavings())
}

func TestAccount_BalanceWithInterest(t *testing.T) {
	account := Account{Balance: decimal.NewFromInt(1000)}

	after := account.BalanceWithInterest(decimal.NewFromFloat(0.0100))
	assert.True(t, after.Equal(decimal.NewFromInt(1010)), "got %s", after)

	// Fractional accruals round toward positive infinity
	odd := Account{Balance: decimal.NewFromFloat(100.55)}
	after = odd.BalanceWithInterest(decimal.NewFromFloat(0.0125))
	assert.True(t, after.Equal(decimal.NewFromFloat(101.81)), "got %s", after)
}

func TestRoundBalance(t *testing.T) {
	tests := []struct {
		name string
		in   decimal.Decimal
		want decimal.Decimal
	}{
		{"already two places", decimal.NewFromFloat(10.25), decimal.NewFromFloat(10.25)},
		{"rounds up", decimal.NewFromFloat(10.251), decimal.NewFromFloat(10.26)},
		{"rounds tiny fraction up", decimal.NewFromFloat(10.0001), decimal.NewFromFloat(10.01)},
		{"negative rounds toward zero", decimal.NewFromFloat(-10.255), decimal.NewFromFloat(-10.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundBalance(tt.in)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}

func TestIsValidAccountType(t *testing.T) {
	for _, name := range AccountTypeNames() {
		assert.True(t, IsValidAccountType(name), name)
	}
	assert.False(t, IsValidAccountType("money market"))
	assert.False(t, IsValidAccountType(""))
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account Request DTOs

// OpenAccountRequest contains the data needed to open an account for a customer
type OpenAccountRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	AccountType string          `json:"accountType" validate:"required,account_type"`
	Balance     decimal.Decimal `json:"balance"`
}

// AmountRequest carries a deposit or withdrawal amount. The amount itself is
// deliberately unconstrained here: positivity rules vary by account type and
// belong to the engine.
type AmountRequest struct {
	AccountID int64           `json:"accountId" validate:"required,positive_amount"`
	Amount    decimal.Decimal `json:"amount"`
}

// Account Response DTOs

// AccountResponse represents one account
type AccountResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	AccountType  string    `json:"accountType"`
	Balance      string    `json:"balance"`
	InterestRate string    `json:"interestRate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BalanceResponse reports one account's balance
type BalanceResponse struct {
	AccountID int64  `json:"accountId"`
	Balance   string `json:"balance"`
}

// TotalBalanceResponse reports an aggregated balance
type TotalBalanceResponse struct {
	Total string `json:"total"`
}

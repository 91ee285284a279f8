package dto

// Auth Request DTOs

// LoginRequest contains login credentials
type LoginRequest struct {
	UserID   int64  `json:"userId" validate:"required,positive_amount"`
	Password string `json:"password" validate:"required"`
}

// CustomerAuthRequest authenticates a customer inside a staff session
type CustomerAuthRequest struct {
	CustomerID int64  `json:"customerId" validate:"required,positive_amount"`
	Password   string `json:"password" validate:"required"`
}

// Auth Response DTOs

// SessionResponse describes the authenticated principal
type SessionResponse struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

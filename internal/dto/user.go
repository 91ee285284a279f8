package dto

// User Request DTOs

// CreateCustomerRequest contains customer registration data
type CreateCustomerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Age      int    `json:"age" validate:"required,gte=0,lte=150"`
	Address  string `json:"address" validate:"max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// CreateUserRequest contains registration data for a principal of any role
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Age      int    `json:"age" validate:"required,gte=0,lte=150"`
	Address  string `json:"address" validate:"max=100"`
	Role     string `json:"role" validate:"required,user_role"`
	Password string `json:"password" validate:"required,max=72"`
}

// UpdateProfileRequest carries profile field updates; empty fields are skipped
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,min=1,max=100"`
	Address  string `json:"address" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"omitempty,max=72"`
}

// User Response DTOs

// UserResponse represents one principal
type UserResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

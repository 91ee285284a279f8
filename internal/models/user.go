package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleTeller   = "teller"
	RoleCustomer = "customer"

	MaxUserAge = 150
)

var (
	ErrInvalidRole    = errors.New("invalid role")
	ErrUserNameEmpty  = errors.New("user name is required")
	ErrAddressTooLong = errors.New("address must not exceed 100 characters")
	ErrInvalidUserAge = errors.New("age must be between 0 and 150")
)

// User is a principal known to the bank. The role is assigned at creation
// and only changes through the explicit teller-to-admin promotion.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Age          int       `gorm:"not null" json:"age"`
	Address      string    `gorm:"type:varchar(100)" json:"address"`
	Role         string    `gorm:"type:varchar(20);not null;default:'customer';index" json:"role"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`

	Accounts  []Account  `gorm:"foreignKey:UserID" json:"-"`
	Messages  []Message  `gorm:"foreignKey:UserID" json:"-"`
	AuditLogs []AuditLog `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	// Column-level updates (role promotion, profile field changes) carry a
	// map destination and skip struct validation.
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return u.Validate()
}

func (u *User) Validate() error {
	if u.Name == "" {
		return ErrUserNameEmpty
	}

	if u.Age < 0 || u.Age > MaxUserAge {
		return ErrInvalidUserAge
	}

	if len(u.Address) > 100 {
		return ErrAddressTooLong
	}

	if !IsValidRole(u.Role) {
		return fmt.Errorf("%w: %s", ErrInvalidRole, u.Role)
	}

	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsTeller() bool {
	return u.Role == RoleTeller
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

// IsStaff reports whether the user may operate staff terminals.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleTeller
}

func (u *User) TableName() string {
	return "users"
}

// IsValidRole checks if the role name is one of the known roles
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeller, RoleCustomer:
		return true
	default:
		return false
	}
}

// RoleNames returns every valid role name, in seed order.
func RoleNames() []string {
	return []string{RoleAdmin, RoleTeller, RoleCustomer}
}

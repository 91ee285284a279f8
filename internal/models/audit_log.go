package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AuditActionLogin           = "login"
	AuditActionFailedLogin     = "failed_login"
	AuditActionLogout          = "logout"
	AuditActionDeposit         = "transaction.deposit"
	AuditActionWithdrawal      = "transaction.withdrawal"
	AuditActionInterest        = "transaction.interest"
	AuditActionAccountCreated  = "account.created"
	AuditActionTypeConverted   = "account.type_converted"
	AuditActionUserCreated     = "user.created"
	AuditActionUserPromoted    = "user.promoted"
	AuditActionProfileUpdated  = "user.profile_updated"
	AuditActionPasswordUpdated = "user.password_updated"
	AuditActionBalanceReviewed = "balance.reviewed"
)

// JSONBMap stores free-form audit metadata as jsonb (text on sqlite)
type JSONBMap map[string]interface{}

// Value implements driver.Valuer for JSONBMap
func (m JSONBMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONBMap
func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for JSONBMap: %T", value)
	}
}

// AuditLog records who did what to which resource. Staff operations and all
// balance mutations append one row; failures to append never block the
// operation itself.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     *int64    `gorm:"index" json:"user_id,omitempty"`
	Action     string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Resource   string    `gorm:"type:varchar(100);not null" json:"resource"`
	ResourceID string    `gorm:"type:varchar(100)" json:"resource_id"`
	Metadata   JSONBMap  `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	return nil
}

func (a *AuditLog) TableName() string {
	return "audit_logs"
}

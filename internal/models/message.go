package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// MaxMessageLength caps the mailbox body size.
const MaxMessageLength = 512

var (
	ErrMessageTooLong = errors.New("message body must not exceed 512 characters")
	ErrMessageEmpty   = errors.New("message body is required")
)

// Message is a mailbox entry for a user. The viewed flag is flipped only
// when the target reads the message, never by staff peeking at it.
type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Body      string    `gorm:"type:varchar(512);not null" json:"body"`
	Viewed    bool      `gorm:"not null;default:false" json:"viewed"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}

	return m.Validate()
}

func (m *Message) Validate() error {
	if m.UserID == 0 {
		return errors.New("target user ID is required")
	}

	if m.Body == "" {
		return ErrMessageEmpty
	}

	if len(m.Body) > MaxMessageLength {
		return ErrMessageTooLong
	}

	return nil
}

func (m *Message) TableName() string {
	return "messages"
}

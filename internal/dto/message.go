package dto

import "time"

// Message Request DTOs

// LeaveMessageRequest contains a message for a target user's mailbox
type LeaveMessageRequest struct {
	TargetUserID int64  `json:"targetUserId" validate:"required,positive_amount"`
	Body         string `json:"body" validate:"required,message_body"`
}

// Message Response DTOs

// MessageResponse represents one mailbox entry
type MessageResponse struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	Viewed    bool      `json:"viewed"`
	CreatedAt time.Time `json:"createdAt"`
}

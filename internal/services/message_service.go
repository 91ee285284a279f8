package services

import (
	"fmt"
	"log/slog"

	"bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/repositories"
)

// MessageService runs the mailbox. Bodies are composed with a FROM/TO header
// naming sender and target; the viewed flag flips only when the target itself
// reads a message.
type MessageService struct {
	messageRepo repositories.MessageRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	logger      *slog.Logger
}

// NewMessageService creates a new message service
func NewMessageService(
	messageRepo repositories.MessageRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *slog.Logger,
) MessageServiceInterface {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// LeaveMessage composes and stores a message for a target user. Tellers may
// only message customers; admins may message anyone.
func (s *MessageService) LeaveMessage(session *Session, targetUserID int64, body string) (*models.Message, error) {
	if session == nil || !session.IsAuthenticated() {
		return nil, errors.ErrInsufficientPrivileges
	}

	if body == "" {
		return nil, models.ErrMessageEmpty
	}

	target, err := s.userRepo.GetByID(targetUserID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, errors.Coded(errors.ErrConnectionFailed, errors.StoreNotFound)
		}
		return nil, errors.ErrConnectionFailed
	}

	if session.User.IsTeller() && !target.IsCustomer() {
		return nil, errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthWrongRole)
	}

	composed := fmt.Sprintf("FROM: %s\nTO: %s\nMESSAGE: %s", session.User.Name, target.Name, body)
	if len(composed) > models.MaxMessageLength {
		return nil, models.ErrMessageTooLong
	}

	message := &models.Message{
		UserID: targetUserID,
		Body:   composed,
	}

	if err := s.messageRepo.Create(message); err != nil {
		s.logger.Error("failed to create message",
			slog.Int64("target_user_id", targetUserID),
			slog.String("error", err.Error()))
		return nil, errors.ErrConnectionFailed
	}

	return message, nil
}

// ViewOwnMessages returns the caller's mailbox and marks every entry viewed
func (s *MessageService) ViewOwnMessages(session *Session) ([]models.Message, error) {
	if session == nil || !session.IsAuthenticated() {
		return nil, errors.ErrInsufficientPrivileges
	}

	messages, err := s.messageRepo.GetByUserID(session.User.ID)
	if err != nil {
		return nil, errors.ErrConnectionFailed
	}

	for i := range messages {
		if messages[i].Viewed {
			continue
		}
		if err := s.messageRepo.MarkViewed(messages[i].ID); err != nil {
			s.logger.Error("failed to mark message viewed",
				slog.Int64("message_id", messages[i].ID),
				slog.String("error", err.Error()))
			continue
		}
		messages[i].Viewed = true
	}

	return messages, nil
}

// ViewCustomerMessages lets staff read a customer's mailbox without flipping
// the viewed flags.
func (s *MessageService) ViewCustomerMessages(session *Session, customerID int64) ([]models.Message, error) {
	if session == nil || !session.IsAuthenticated() || !session.User.IsStaff() {
		return nil, errors.ErrInsufficientPrivileges
	}

	messages, err := s.messageRepo.GetByUserID(customerID)
	if err != nil {
		return nil, errors.ErrConnectionFailed
	}

	return messages, nil
}

// ViewMessage returns one message body. The viewed flag flips only when the
// reader is the message's target.
func (s *MessageService) ViewMessage(session *Session, messageID int64) (string, error) {
	if session == nil || !session.IsAuthenticated() {
		return "", errors.ErrInsufficientPrivileges
	}

	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		if err == repositories.ErrMessageNotFound {
			return "", errors.Coded(errors.ErrConnectionFailed, errors.StoreNotFound)
		}
		return "", errors.ErrConnectionFailed
	}

	if message.UserID != session.User.ID && !session.User.IsStaff() {
		return "", errors.Coded(errors.ErrInsufficientPrivileges, errors.AuthNotOwner)
	}

	if message.UserID == session.User.ID && !message.Viewed {
		if err := s.messageRepo.MarkViewed(messageID); err != nil {
			s.logger.Error("failed to mark message viewed",
				slog.Int64("message_id", messageID),
				slog.String("error", err.Error()))
		}
	}

	return message.Body, nil
}

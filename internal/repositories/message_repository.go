package repositories

import (
	"errors"
	"fmt"

	"bank-management/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("message not found")
)

// messageRepository implements MessageRepositoryInterface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepositoryInterface {
	return &messageRepository{
		db: db,
	}
}

// Create creates a new message
func (r *messageRepository) Create(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetByID retrieves a message by ID
func (r *messageRepository) GetByID(id int64) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &message, nil
}

// GetByUserID retrieves all messages addressed to a user, oldest first
func (r *messageRepository) GetByUserID(userID int64) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to get messages for user: %w", err)
	}
	return messages, nil
}

// MarkViewed flags a message as read by its target
func (r *messageRepository) MarkViewed(id int64) error {
	result := r.db.Model(&models.Message{}).
		Where("id = ?", id).
		Update("viewed", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark message viewed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

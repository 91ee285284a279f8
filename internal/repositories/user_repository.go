package repositories

import (
	"errors"
	"fmt"

	"bank-management/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// userRepository implements UserRepositoryInterface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepositoryInterface {
	return &userRepository{
		db: db,
	}
}

// Create creates a new user
func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByRole retrieves every user holding the given role, ordered by id. The
// role column is indexed so this replaces scanning ids sequentially.
func (r *userRepository) GetByRole(role string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("role = ?", role).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by role: %w", err)
	}
	return users, nil
}

// UpdateRole changes a user's role
func (r *userRepository) UpdateRole(userID int64, role string) error {
	if !models.IsValidRole(role) {
		return models.ErrInvalidRole
	}

	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", role)

	if result.Error != nil {
		return fmt.Errorf("failed to update user role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateFields updates specific profile fields for a user
func (r *userRepository) UpdateFields(userID int64, fields map[string]interface{}) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update user fields: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePasswordHash replaces a user's stored credential
func (r *userRepository) UpdatePasswordHash(userID int64, passwordHash string) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return fmt.Errorf("failed to update password hash: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

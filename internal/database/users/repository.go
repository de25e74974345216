// Package users provides database operations for user profile management.
package users

import (
	"errors"

	"gorm.io/gorm"

	"booktracker/internal/database"
	"booktracker/internal/entities"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Repository handles user profile database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(userID int64) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUsername renames the user. Uniqueness is enforced by the unique
// index on username: the UPDATE either succeeds or fails atomically, so
// two concurrent renames to the same name cannot both win. Renaming a user
// to the name it already holds is a no-op success.
func (r *Repository) UpdateUsername(userID int64, username string) error {
	err := r.db.Model(&entities.User{}).
		Where("user_id = ?", userID).
		Update("username", username).Error
	if err != nil {
		if database.IsUniqueConstraintViolation(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

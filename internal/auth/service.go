// Package auth implements the credential service: registration, login
// verification, and password change. Plaintext passwords are never stored;
// only bcrypt hashes reach the database.
package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"booktracker/internal/database"
	"booktracker/internal/entities"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles credential verification and user registration.
type Service struct {
	db         *gorm.DB
	bcryptCost int
}

// NewService creates a new credential service.
func NewService(db *gorm.DB, bcryptCost int) *Service {
	return &Service{db: db, bcryptCost: bcryptCost}
}

// Register creates a new user and returns the generated user id. A taken
// username surfaces as ErrUsernameTaken, detected from the unique-index
// violation on insert rather than a pre-check, so concurrent registrations
// of the same name cannot both succeed.
func (s *Service) Register(username, password string) (int64, error) {
	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if database.IsUniqueConstraintViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return user.UserID, nil
}

// Authenticate verifies the credentials and returns the user id. An
// unknown username and a wrong password both map to ErrInvalidCredentials
// so the response does not reveal which one failed.
func (s *Service) Authenticate(username, password string) (int64, error) {
	var user entities.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidCredentials
		}
		return 0, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return 0, ErrInvalidCredentials
	}

	return user.UserID, nil
}

// ChangePassword re-verifies the current password before replacing the
// stored hash. A failed verification leaves the stored hash untouched.
func (s *Service) ChangePassword(userID int64, currentPassword, newPassword string) error {
	var user entities.User
	err := s.db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(currentPassword, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password", hash).Error
}

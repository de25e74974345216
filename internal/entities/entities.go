package entities

import "strings"

type ReadStatus string

const (
	StatusNotRead          ReadStatus = "not read"
	StatusRead             ReadStatus = "read"
	StatusCurrentlyReading ReadStatus = "currently reading"
)

// ValidStatuses lists the accepted read states in the order they are
// reported to clients.
var ValidStatuses = []ReadStatus{StatusNotRead, StatusRead, StatusCurrentlyReading}

// IsValid reports whether the status is one of the enumerated read states.
func (s ReadStatus) IsValid() bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// StatusList returns the valid statuses joined for error messages.
func StatusList() string {
	names := make([]string, len(ValidStatuses))
	for i, s := range ValidStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

type User struct {
	UserID       int64  `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username     string `gorm:"column:username;uniqueIndex:idx_users_username;size:100;not null" json:"username"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type Book struct {
	BookID     int64      `gorm:"column:book_id;primaryKey;autoIncrement" json:"book_id"`
	UserID     int64      `gorm:"column:user_id;index" json:"user_id"`
	BookTitle  string     `gorm:"column:book_title;size:200" json:"book_title"`
	BookAuthor string     `gorm:"column:book_author;size:200" json:"book_author"`
	BookYear   int        `gorm:"column:book_year" json:"book_year"`
	Read       ReadStatus `gorm:"column:read;size:20;not null;default:'not read'" json:"read"`
	Rating     *int       `gorm:"column:rating;check:rating BETWEEN 1 AND 5" json:"rating"`
	ImageURL   *string    `gorm:"column:image_url" json:"image_url"`
	// Stored as an ISO YYYY-MM-DD date; only meaningful when Read is "read".
	FinishedReading *string `gorm:"column:finished_reading" json:"finished_reading"`
}

func (Book) TableName() string {
	return "books"
}

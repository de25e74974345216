// Package books provides database operations for the book catalogue,
// including the aggregate reporting queries.
package books

import (
	"database/sql"
	"errors"
	"math"
	"strconv"

	"gorm.io/gorm"

	"booktracker/internal/entities"
)

var (
	ErrBookNotFound     = errors.New("book not found or not owned by user")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// updatableColumns is the fixed set of columns a partial update may touch.
// Column identifiers are never taken from caller input.
var updatableColumns = map[string]bool{
	"book_title":       true,
	"book_author":      true,
	"book_year":        true,
	"read":             true,
	"rating":           true,
	"image_url":        true,
	"finished_reading": true,
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book row. Validation happens at the HTTP boundary;
// the insert itself is unconditional and no duplicate detection is done.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// ListByUser returns every book belonging to the user. Order is not
// guaranteed by the store.
func (r *Repository) ListByUser(userID int64) ([]entities.Book, error) {
	list := make([]entities.Book, 0)
	err := r.db.Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

// ListByStatus returns the user's books filtered by exact read status.
func (r *Repository) ListByStatus(userID int64, status entities.ReadStatus) ([]entities.Book, error) {
	list := make([]entities.Book, 0)
	err := r.db.Where("user_id = ? AND read = ?", userID, status).Find(&list).Error
	return list, err
}

// Update applies a partial update to the book. Keys outside the fixed
// updatable column set are dropped. A book_id with no matching row is not
// an error; the statement simply affects zero rows.
func (r *Repository) Update(bookID int64, updates map[string]any) error {
	filtered := make(map[string]any, len(updates))
	for column, value := range updates {
		if updatableColumns[column] {
			filtered[column] = value
		}
	}
	if len(filtered) == 0 {
		return ErrNoFieldsToUpdate
	}

	return r.db.Model(&entities.Book{}).
		Where("book_id = ?", bookID).
		Updates(filtered).Error
}

// Delete removes the book only when both book_id and user_id match,
// preventing cross-user deletion. The single DELETE is atomic; ownership
// is checked by the statement itself, not a prior read.
func (r *Repository) Delete(bookID, userID int64) error {
	result := r.db.Where("book_id = ? AND user_id = ?", bookID, userID).
		Delete(&entities.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// StatusCounts holds per-status book counts for a user.
type StatusCounts struct {
	Read             int64 `json:"read"`
	NotRead          int64 `json:"not_read"`
	CurrentlyReading int64 `json:"currently_reading"`
	Total            int64 `json:"total"`
}

// StatusCounts groups the user's books by read status, defaulting absent
// statuses to zero, and counts the total separately.
func (r *Repository) StatusCounts(userID int64) (StatusCounts, error) {
	var counts StatusCounts

	var rows []struct {
		Read  entities.ReadStatus
		Count int64
	}
	err := r.db.Model(&entities.Book{}).
		Select("read, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("read").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}

	for _, row := range rows {
		switch row.Read {
		case entities.StatusRead:
			counts.Read = row.Count
		case entities.StatusNotRead:
			counts.NotRead = row.Count
		case entities.StatusCurrentlyReading:
			counts.CurrentlyReading = row.Count
		}
	}

	err = r.db.Model(&entities.Book{}).
		Where("user_id = ?", userID).
		Count(&counts.Total).Error
	return counts, err
}

// RatingSummary holds the rating distribution for a user's books.
// RatingCounts always carries all five keys "1".."5"; AverageRating is
// null when no rated books exist.
type RatingSummary struct {
	TotalBooks    int64            `json:"total_books"`
	RatingCounts  map[string]int64 `json:"rating_counts"`
	AverageRating *float64         `json:"average_rating"`
}

// RatingSummary computes the rating distribution and the mean of non-null
// ratings rounded to two decimal places.
func (r *Repository) RatingSummary(userID int64) (RatingSummary, error) {
	summary := RatingSummary{
		RatingCounts: map[string]int64{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}

	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.Model(&entities.Book{}).
		Select("rating, COUNT(*) AS count").
		Where("user_id = ? AND rating IS NOT NULL", userID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return summary, err
	}
	for _, row := range rows {
		key := strconv.Itoa(row.Rating)
		if _, ok := summary.RatingCounts[key]; ok {
			summary.RatingCounts[key] = row.Count
		}
	}

	err = r.db.Model(&entities.Book{}).
		Where("user_id = ?", userID).
		Count(&summary.TotalBooks).Error
	if err != nil {
		return summary, err
	}

	var avg sql.NullFloat64
	err = r.db.Model(&entities.Book{}).
		Select("AVG(rating)").
		Where("user_id = ? AND rating IS NOT NULL", userID).
		Row().Scan(&avg)
	if err != nil {
		return summary, err
	}
	if avg.Valid {
		rounded := math.Round(avg.Float64*100) / 100
		summary.AverageRating = &rounded
	}

	return summary, nil
}

// CountFinishedBetween counts the user's finished books whose
// finished_reading date falls within [from, to], both ISO YYYY-MM-DD.
func (r *Repository) CountFinishedBetween(userID int64, from, to string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).
		Where("user_id = ? AND read = ? AND finished_reading IS NOT NULL", userID, entities.StatusRead).
		Where("date(finished_reading) BETWEEN date(?) AND date(?)", from, to).
		Count(&count).Error
	return count, err
}

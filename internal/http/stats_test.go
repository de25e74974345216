package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktracker/internal/entities"
)

func TestCounts(t *testing.T) {
	t.Run("counts books per status with a separate total", func(t *testing.T) {
		router, db, cleanup := setupRouter(t)
		defer cleanup()

		seedBook(t, db, entities.Book{UserID: 1, BookTitle: "R1", BookAuthor: "A", BookYear: 2001, Read: entities.StatusRead})
		seedBook(t, db, entities.Book{UserID: 1, BookTitle: "R2", BookAuthor: "B", BookYear: 2002, Read: entities.StatusRead})
		seedBook(t, db, entities.Book{UserID: 1, BookTitle: "N1", BookAuthor: "C", BookYear: 2003, Read: entities.StatusNotRead})

		w := doRequest(t, router, "GET", "/books/1/counts", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, float64(2), response["read"])
		assert.Equal(t, float64(1), response["not_read"])
		assert.Equal(t, float64(0), response["currently_reading"])
		assert.Equal(t, float64(3), response["total"])
	})

	t.Run("returns zeros for a user with no books", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doRequest(t, router, "GET", "/books/1/counts", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, float64(0), response["read"])
		assert.Equal(t, float64(0), response["total"])
	})
}

func TestRatingSummary(t *testing.T) {
	t.Run("returns the distribution and rounded average", func(t *testing.T) {
		router, db, cleanup := setupRouter(t)
		defer cleanup()

		for _, rating := range []int{3, 3, 5} {
			r := rating
			seedBook(t, db, entities.Book{
				UserID: 1, BookTitle: "Rated", BookAuthor: "A", BookYear: 2001, Rating: &r,
			})
		}

		w := doRequest(t, router, "GET", "/books/1/rating_summary", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, float64(3), response["total_books"])
		assert.Equal(t, 3.67, response["average_rating"])

		counts := response["rating_counts"].(map[string]any)
		assert.Equal(t, float64(0), counts["1"])
		assert.Equal(t, float64(0), counts["2"])
		assert.Equal(t, float64(2), counts["3"])
		assert.Equal(t, float64(0), counts["4"])
		assert.Equal(t, float64(1), counts["5"])
	})

	t.Run("returns a null average when no book is rated", func(t *testing.T) {
		router, db, cleanup := setupRouter(t)
		defer cleanup()

		seedBook(t, db, entities.Book{UserID: 1, BookTitle: "Unrated", BookAuthor: "A", BookYear: 2001})

		w := doRequest(t, router, "GET", "/books/1/rating_summary", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, float64(1), response["total_books"])
		assert.Nil(t, response["average_rating"])

		counts := response["rating_counts"].(map[string]any)
		require.Len(t, counts, 5)
	})
}

func TestFinishedThisMonth(t *testing.T) {
	t.Run("counts finished books in the current month", func(t *testing.T) {
		router, db, cleanup := setupRouter(t)
		defer cleanup()

		today := time.Now().Format("2006-01-02")
		lastYear := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")

		thisMonth := today
		seedBook(t, db, entities.Book{
			UserID: 1, BookTitle: "Fresh", BookAuthor: "A", BookYear: 2001,
			Read: entities.StatusRead, FinishedReading: &thisMonth,
		})
		seedBook(t, db, entities.Book{
			UserID: 1, BookTitle: "Old", BookAuthor: "B", BookYear: 2002,
			Read: entities.StatusRead, FinishedReading: &lastYear,
		})
		seedBook(t, db, entities.Book{
			UserID: 1, BookTitle: "Unfinished", BookAuthor: "C", BookYear: 2003,
			Read: entities.StatusCurrentlyReading,
		})

		w := doRequest(t, router, "GET", "/books/finished_this_month?user_id=1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, float64(1), response["count"])
	})

	t.Run("returns 400 without user_id", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doRequest(t, router, "GET", "/books/finished_this_month", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing user_id")
	})
}

func TestFinishedThisYear(t *testing.T) {
	t.Run("counts finished books in the current year", func(t *testing.T) {
		router, db, cleanup := setupRouter(t)
		defer cleanup()

		janFirst := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.Local).Format("2006-01-02")
		lastYear := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")

		seedBook(t, db, entities.Book{
			UserID: 1, BookTitle: "This year", BookAuthor: "A", BookYear: 2001,
			Read: entities.StatusRead, FinishedReading: &janFirst,
		})
		seedBook(t, db, entities.Book{
			UserID: 1, BookTitle: "Last year", BookAuthor: "B", BookYear: 2002,
			Read: entities.StatusRead, FinishedReading: &lastYear,
		})

		w := doRequest(t, router, "GET", "/books/finished_this_year?user_id=1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, float64(1), response["count"])
	})

	t.Run("returns 400 for a non-numeric user_id", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doRequest(t, router, "GET", "/books/finished_this_year?user_id=abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing user_id")
	})
}

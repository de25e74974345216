package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"booktracker/internal/database/books"
)

// StatsController handles the aggregate reporting endpoints.
type StatsController struct {
	repo *books.Repository
}

func NewStatsController(repo *books.Repository) *StatsController {
	return &StatsController{repo: repo}
}

// Counts returns per-status book counts plus the total.
// GET /books/:user_id/counts
func (sc *StatsController) Counts(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	counts, err := sc.repo.StatusCounts(userID)
	if err != nil {
		respondInternalError(c, err, "book counts")
		return
	}
	c.JSON(http.StatusOK, counts)
}

// RatingSummary returns the rating distribution and average rating.
// GET /books/:user_id/rating_summary
func (sc *StatsController) RatingSummary(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	summary, err := sc.repo.RatingSummary(userID)
	if err != nil {
		respondInternalError(c, err, "rating summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// currentMonthWindow returns the first and last day of now's calendar
// month as ISO dates.
func currentMonthWindow(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// currentYearWindow returns January 1st and December 31st of now's year as
// ISO dates.
func currentYearWindow(now time.Time) (string, string) {
	first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	last := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// userIDFromQuery reads the user_id query parameter. Absent and
// non-numeric values are both reported as missing.
func userIDFromQuery(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Missing user_id")
		return 0, false
	}
	return userID, true
}

func (sc *StatsController) finishedBetween(c *gin.Context, from, to string) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	count, err := sc.repo.CountFinishedBetween(userID, from, to)
	if err != nil {
		respondInternalError(c, err, "finished books count")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// FinishedThisMonth counts books finished within the current calendar
// month, computed from local wall-clock time at request time.
// GET /books/finished_this_month?user_id=
func (sc *StatsController) FinishedThisMonth(c *gin.Context) {
	from, to := currentMonthWindow(time.Now())
	sc.finishedBetween(c, from, to)
}

// FinishedThisYear counts books finished within the current calendar year.
// GET /books/finished_this_year?user_id=
func (sc *StatsController) FinishedThisYear(c *gin.Context) {
	from, to := currentYearWindow(time.Now())
	sc.finishedBetween(c, from, to)
}

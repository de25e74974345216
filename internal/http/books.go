package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"booktracker/internal/database/books"
	"booktracker/internal/entities"
)

const maxTitleLength = 200

// BooksController handles the book CRUD endpoints.
type BooksController struct {
	repo *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{repo: repo}
}

// parseBookYear accepts a year supplied as a JSON number or a numeric
// string and rejects values whose decimal representation (including any
// sign) exceeds six digits.
func parseBookYear(raw any) (int, bool) {
	var year int
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		year = int(v)
	case json.Number:
		parsed, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, false
		}
		year = parsed
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		year = parsed
	default:
		return 0, false
	}

	if len(strconv.Itoa(year)) > 6 {
		return 0, false
	}
	return year, true
}

type addBookRequest struct {
	UserID          *int64  `json:"user_id"`
	BookTitle       *string `json:"book_title"`
	BookAuthor      *string `json:"book_author"`
	BookYear        any     `json:"book_year"`
	Read            *string `json:"read"`
	Rating          *int    `json:"rating"`
	ImageURL        *string `json:"image_url"`
	FinishedReading *string `json:"finished_reading"`
}

// AddBook validates and inserts a new book. The insert is unconditional
// once validation passes; no duplicate detection is done.
// POST /addbook
func (bc *BooksController) AddBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Missing fields")
		return
	}

	if req.UserID == nil || req.BookTitle == nil || req.BookAuthor == nil ||
		req.BookYear == nil || req.Read == nil {
		respondBadRequest(c, "Missing fields")
		return
	}

	if utf8.RuneCountInString(*req.BookTitle) > maxTitleLength ||
		utf8.RuneCountInString(*req.BookAuthor) > maxTitleLength {
		respondBadRequest(c, "Title and Author must be 200 characters or less.")
		return
	}

	year, ok := parseBookYear(req.BookYear)
	if !ok {
		respondBadRequest(c, "Year must be a valid number.")
		return
	}

	status := entities.ReadStatus(*req.Read)
	if !status.IsValid() {
		respondBadRequest(c, "Invalid 'read' status. Must be one of: "+entities.StatusList())
		return
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		respondBadRequest(c, "Rating must be an integer between 1 and 5.")
		return
	}

	book := entities.Book{
		UserID:          *req.UserID,
		BookTitle:       *req.BookTitle,
		BookAuthor:      *req.BookAuthor,
		BookYear:        year,
		Read:            status,
		Rating:          req.Rating,
		ImageURL:        req.ImageURL,
		FinishedReading: req.FinishedReading,
	}
	if err := bc.repo.Create(&book); err != nil {
		respondInternalError(c, err, "add book")
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "Book added successfully"})
}

type deleteBookRequest struct {
	BookID int64 `json:"book_id"`
	UserID int64 `json:"user_id"`
}

// DeleteBook removes a book, but only when it belongs to the supplied
// user.
// POST /deletebook
func (bc *BooksController) DeleteBook(c *gin.Context) {
	var req deleteBookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 || req.UserID == 0 {
		respondBadRequest(c, "Missing book_id or user_id")
		return
	}

	if err := bc.repo.Delete(req.BookID, req.UserID); err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "Book not found or not owned by user")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	respondSuccess(c, "Book deleted successfully")
}

// EditBook applies a partial update. Each supplied field is converted by
// an explicit typed setter keyed on the fixed updatable set and validated
// with the same rules as AddBook; column names never come from the
// payload.
// POST /editbook
func (bc *BooksController) EditBook(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "Missing book_id")
		return
	}

	rawID, ok := payload["book_id"]
	if !ok {
		respondBadRequest(c, "Missing book_id")
		return
	}
	bookID, ok := parseBookID(rawID)
	if !ok {
		respondBadRequest(c, "Missing book_id")
		return
	}

	updates := make(map[string]any)
	for _, field := range []string{
		"book_title", "book_author", "book_year", "read",
		"rating", "image_url", "finished_reading",
	} {
		raw, supplied := payload[field]
		if !supplied {
			continue
		}
		value, errMsg := convertBookField(field, raw)
		if errMsg != "" {
			respondBadRequest(c, errMsg)
			return
		}
		updates[field] = value
	}

	if len(updates) == 0 {
		respondBadRequest(c, "No fields to update")
		return
	}

	if err := bc.repo.Update(bookID, updates); err != nil {
		if errors.Is(err, books.ErrNoFieldsToUpdate) {
			respondBadRequest(c, "No fields to update")
			return
		}
		respondInternalError(c, err, "edit book")
		return
	}

	respondSuccess(c, "Book updated successfully")
}

func parseBookID(raw any) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}

// convertBookField turns a raw JSON value into the typed column value for
// the given field, enforcing the same constraints AddBook applies. An
// explicit JSON null clears the optional fields. Returns a non-empty
// message when the value is rejected.
func convertBookField(field string, raw any) (any, string) {
	switch field {
	case "book_title", "book_author":
		text, ok := raw.(string)
		if !ok || utf8.RuneCountInString(text) > maxTitleLength {
			return nil, "Title and Author must be 200 characters or less."
		}
		return text, ""

	case "book_year":
		year, ok := parseBookYear(raw)
		if !ok {
			return nil, "Year must be a valid number."
		}
		return year, ""

	case "read":
		text, ok := raw.(string)
		if !ok || !entities.ReadStatus(text).IsValid() {
			return nil, "Invalid 'read' status. Must be one of: " + entities.StatusList()
		}
		return text, ""

	case "rating":
		if raw == nil {
			return nil, ""
		}
		number, ok := raw.(float64)
		if !ok || number != math.Trunc(number) || number < 1 || number > 5 {
			return nil, "Rating must be an integer between 1 and 5."
		}
		return int(number), ""

	case "image_url", "finished_reading":
		if raw == nil {
			return nil, ""
		}
		text, ok := raw.(string)
		if !ok {
			return nil, "Invalid value for " + field
		}
		return text, ""
	}

	return nil, "Invalid value for " + field
}

// ListBooks returns every book belonging to the user.
// GET /books/:user_id
func (bc *BooksController) ListBooks(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	list, err := bc.repo.ListByUser(userID)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (bc *BooksController) listByStatus(c *gin.Context, status entities.ReadStatus) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	list, err := bc.repo.ListByStatus(userID, status)
	if err != nil {
		respondInternalError(c, err, "list books by status")
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListRead returns the user's finished books.
// GET /books/:user_id/read
func (bc *BooksController) ListRead(c *gin.Context) {
	bc.listByStatus(c, entities.StatusRead)
}

// ListNotRead returns the user's unread books.
// GET /books/:user_id/not_read
func (bc *BooksController) ListNotRead(c *gin.Context) {
	bc.listByStatus(c, entities.StatusNotRead)
}

// ListCurrentlyReading returns the books the user is reading now.
// GET /books/:user_id/currently_reading
func (bc *BooksController) ListCurrentlyReading(c *gin.Context) {
	bc.listByStatus(c, entities.StatusCurrentlyReading)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booktracker/internal/auth"
	"booktracker/internal/database"
	"booktracker/internal/database/books"
	"booktracker/internal/database/users"
)

// RouterConfig carries the dependencies of all controllers.
type RouterConfig struct {
	Database        *database.Database
	AuthService     *auth.Service
	BooksRepository *books.Repository
	UsersRepository *users.Repository
	Version         string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService)
	booksController := NewBooksController(cfg.BooksRepository)
	statsController := NewStatsController(cfg.BooksRepository)
	usersController := NewUsersController(cfg.UsersRepository)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/hi", func(c *gin.Context) {
		c.String(http.StatusOK, "hi")
	})

	// Credential endpoints
	router.POST("/register", authController.Register)
	router.POST("/login", authController.Login)
	router.POST("/change_password", authController.ChangePassword)

	// Book mutation endpoints
	router.POST("/addbook", booksController.AddBook)
	router.POST("/deletebook", booksController.DeleteBook)
	router.POST("/editbook", booksController.EditBook)

	// Book query and reporting endpoints
	router.GET("/books/finished_this_month", statsController.FinishedThisMonth)
	router.GET("/books/finished_this_year", statsController.FinishedThisYear)
	router.GET("/books/:user_id", booksController.ListBooks)
	router.GET("/books/:user_id/read", booksController.ListRead)
	router.GET("/books/:user_id/not_read", booksController.ListNotRead)
	router.GET("/books/:user_id/currently_reading", booksController.ListCurrentlyReading)
	router.GET("/books/:user_id/counts", statsController.Counts)
	router.GET("/books/:user_id/rating_summary", statsController.RatingSummary)

	// User profile endpoints
	router.GET("/username/:user_id", usersController.GetUsername)
	router.PUT("/username/:user_id", usersController.UpdateUsername)

	return router
}

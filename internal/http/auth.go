package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booktracker/internal/auth"
)

// AuthController handles registration, login and password change.
type AuthController struct {
	service *auth.Service
}

func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new user account.
// POST /register
func (ac *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		respondBadRequest(c, "Username and password required")
		return
	}

	userID, err := ac.service.Register(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			respondConflict(c, "Username taken")
		case errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, auth.ErrPasswordTooLong.Error())
		default:
			respondInternalError(c, err, "register user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registered", "user_id": userID})
}

// Login verifies credentials and returns the user id. The caller manages
// session state; no token is issued.
// POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		respondBadRequest(c, "Username and password required")
		return
	}

	userID, err := ac.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondUnauthorized(c, "Invalid credentials")
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged in", "user_id": userID})
}

type changePasswordRequest struct {
	UserID          int64  `json:"user_id"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword replaces the stored hash after re-verifying the current
// password.
// POST /change_password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.UserID == 0 || req.CurrentPassword == "" || req.NewPassword == "" {
		respondBadRequest(c, "User ID, current password, and new password required")
		return
	}

	err := ac.service.ChangePassword(req.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			respondNotFound(c, "User not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			respondUnauthorized(c, "Current password is incorrect")
		case errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, auth.ErrPasswordTooLong.Error())
		default:
			respondInternalError(c, err, "change password")
		}
		return
	}

	respondSuccess(c, "Password updated successfully")
}

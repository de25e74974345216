package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booktracker/internal/database/users"
)

// UsersController handles username lookup and rename.
type UsersController struct {
	repo *users.Repository
}

func NewUsersController(repo *users.Repository) *UsersController {
	return &UsersController{repo: repo}
}

// GetUsername returns the username for a user id.
// GET /username/:user_id
func (uc *UsersController) GetUsername(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	user, err := uc.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			respondNotFound(c, "User not found")
			return
		}
		respondInternalError(c, err, "get username")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": user.UserID, "username": user.Username})
}

type updateUsernameRequest struct {
	Username string `json:"username"`
}

// UpdateUsername renames the user, enforcing global username uniqueness.
// PUT /username/:user_id
func (uc *UsersController) UpdateUsername(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req updateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		respondBadRequest(c, "Username is required")
		return
	}

	if err := uc.repo.UpdateUsername(userID, req.Username); err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			respondConflict(c, "Username already taken")
			return
		}
		respondInternalError(c, err, "update username")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Username updated successfully", "username": req.Username})
}

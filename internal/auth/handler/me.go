package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"token-auth-service/internal/autherr"
	"token-auth-service/internal/middleware"
)

type userResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Disabled bool   `json:"disabled"`
}

// Me returns the profile of the user the bearer token resolves to.
func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		// RequireAuth always sets the user; reaching here is a wiring bug.
		c.JSON(
			http.StatusInternalServerError,
			autherr.Response{Success: false, Message: "internal error"},
		)
		return
	}

	c.JSON(http.StatusOK, autherr.OK(userResponse{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Disabled: user.Disabled,
	}))
}

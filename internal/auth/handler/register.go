package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"token-auth-service/internal/auth"
	"token-auth-service/internal/auth/credentials"
	"token-auth-service/internal/autherr"
)

// Register creates a user and immediately logs it in, so no separate login
// round-trip is needed after signup.
func (h *Handler) Register(c *gin.Context) {
	var req auth.UserIn
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			autherr.Response{Success: false, Message: "invalid request"},
		)
		return
	}

	pair, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, credentials.ErrPasswordTooShort) {
			c.JSON(
				http.StatusBadRequest,
				autherr.Response{Success: false, Message: err.Error()},
			)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, autherr.OK(pair))
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"token-auth-service/internal/autherr"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Refresh exchanges a valid refresh token for a new access token.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			autherr.Response{Success: false, Message: "invalid request"},
		)
		return
	}

	access, err := h.resolver.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, autherr.OK(refreshResponse{
		AccessToken: access,
		TokenType:   "bearer",
	}))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"token-auth-service/internal/auth"
	"token-auth-service/internal/auth/resolver"
	"token-auth-service/internal/autherr"
	"token-auth-service/internal/logger"
	"token-auth-service/internal/middleware"
)

type Handler struct {
	service  *auth.Service
	resolver resolver.Resolver
}

func NewHandler(service *auth.Service, resolver resolver.Resolver) *Handler {
	return &Handler{
		service:  service,
		resolver: resolver,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, authMW *middleware.AuthMiddleware) {
	r.GET("/", h.Root)
	r.POST("/token", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/users", h.Register)
	r.GET("/users/me", authMW.RequireAuth(), h.Me)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"isAlive": true})
}

// respondError translates a failure into the response envelope. Taxonomy
// errors keep their stable codes; anything else is an unexpected condition
// and answers 500 without detail.
func respondError(c *gin.Context, err error) {
	var authErr *autherr.Error
	if errors.As(err, &authErr) {
		status := autherr.HTTPStatus(authErr)
		if status == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		c.JSON(status, autherr.Fail(authErr))
		return
	}

	logger.Error("request failed", map[string]any{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	c.JSON(
		http.StatusInternalServerError,
		autherr.Response{Success: false, Message: "internal error"},
	)
}

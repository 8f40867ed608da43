package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"token-auth-service/internal/auth"
	"token-auth-service/internal/auth/handler"
	"token-auth-service/internal/auth/resolver"
	"token-auth-service/internal/auth/token"
	"token-auth-service/internal/config"
	"token-auth-service/internal/middleware"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	codec := token.NewCodec([]byte(cfg.SecretKey))
	issuer := token.NewIssuer(codec, nil)

	authService := auth.NewService(
		infra.Store,
		issuer,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	sessionResolver := resolver.NewStoreResolver(
		codec,
		infra.Store,
		issuer,
		cfg.AccessTokenTTL,
	)

	authHandler := handler.NewHandler(authService, sessionResolver)
	authMiddleware := middleware.NewAuthMiddleware(sessionResolver)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router, authMiddleware)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, infra.cleanup, nil
}

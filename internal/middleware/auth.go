package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"token-auth-service/internal/auth/resolver"
	"token-auth-service/internal/autherr"
	"token-auth-service/internal/userstore"
)

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (*userstore.User, bool) {
	u, ok := ctx.Value(userKey).(*userstore.User)
	return u, ok
}

type AuthMiddleware struct {
	Resolver resolver.Resolver
}

func NewAuthMiddleware(r resolver.Resolver) *AuthMiddleware {
	return &AuthMiddleware{Resolver: r}
}

// RequireAuth resolves the bearer access token on the request and attaches
// the user to the request context. Missing or invalid credentials answer
// 401 with a Bearer challenge; a disabled account answers 400.
func (a *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			challenge(c, autherr.ErrExpiredOrInvalidToken)
			return
		}

		user, err := a.Resolver.ResolveAccess(c.Request.Context(), tok)
		if err != nil {
			var authErr *autherr.Error
			if errors.As(err, &authErr) {
				challenge(c, authErr)
				return
			}
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				autherr.Response{Success: false, Message: "internal error"},
			)
			return
		}

		if user.Disabled {
			c.AbortWithStatusJSON(
				http.StatusBadRequest,
				autherr.Response{Success: false, Message: "Inactive user"},
			)
			return
		}

		ctx := context.WithValue(c.Request.Context(), userKey, user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}

func challenge(c *gin.Context, err *autherr.Error) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(autherr.HTTPStatus(err), autherr.Fail(err))
}

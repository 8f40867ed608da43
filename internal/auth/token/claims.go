package token

import "github.com/golang-jwt/jwt/v5"

// Kind discriminates access tokens from refresh tokens. It is an explicit
// required claim on every token; a refresh token presented where an access
// token is expected must be rejected, and vice versa.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the payload signed into every token.
type Claims struct {
	Kind Kind `json:"kind"`
	jwt.RegisteredClaims
}

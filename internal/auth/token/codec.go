package token

import (
	"github.com/golang-jwt/jwt/v5"

	"token-auth-service/internal/autherr"
)

const signingAlg = "HS256"

// Codec signs claims into compact tokens and validates them back. The
// signing secret is fixed at construction and never mutated, so a single
// Codec is safe for unrestricted concurrent use.
type Codec struct {
	secret []byte
	parser *jwt.Parser
}

func NewCodec(secret []byte) *Codec {
	return &Codec{
		secret: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signingAlg}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Encode serializes claims and signs them with HMAC-SHA-256.
func (c *Codec) Encode(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode validates the signature and expiry of a token and returns its
// claims. Every failure mode (bad signature, malformed payload, missing or
// past expiry, wrong algorithm) collapses into ExpiredOrInvalidToken so the
// response leaks nothing about token structure.
func (c *Codec) Decode(tok string) (*Claims, error) {
	var claims Claims
	parsed, err := c.parser.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, autherr.ErrExpiredOrInvalidToken
	}

	if claims.Subject == "" || (claims.Kind != KindAccess && claims.Kind != KindRefresh) {
		return nil, autherr.ErrExpiredOrInvalidToken
	}

	return &claims, nil
}

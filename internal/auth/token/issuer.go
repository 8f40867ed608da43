package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultAccessTTL  = 30 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Issuer builds access and refresh claim sets and hands them to the codec.
// Issuing never consults the user store; callers must have authenticated the
// subject already.
type Issuer struct {
	codec *Codec
	now   func() time.Time
}

// NewIssuer creates an issuer. now may be nil, in which case time.Now is
// used; tests inject a fixed clock.
func NewIssuer(codec *Codec, now func() time.Time) *Issuer {
	if now == nil {
		now = time.Now
	}
	return &Issuer{codec: codec, now: now}
}

// IssueAccess signs a short-lived access token for subject. A zero ttl
// falls back to DefaultAccessTTL; a negative ttl produces an already-expired
// token.
func (i *Issuer) IssueAccess(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultAccessTTL
	}
	return i.issue(subject, KindAccess, ttl)
}

// IssueRefresh signs a long-lived refresh token for subject. A zero ttl
// falls back to DefaultRefreshTTL.
func (i *Issuer) IssueRefresh(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultRefreshTTL
	}
	return i.issue(subject, KindRefresh, ttl)
}

func (i *Issuer) issue(subject string, kind Kind, ttl time.Duration) (string, error) {
	now := i.now()
	return i.codec.Encode(Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})
}

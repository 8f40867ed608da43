package resolver

import (
	"context"
	"errors"
	"time"

	"token-auth-service/internal/auth/token"
	"token-auth-service/internal/autherr"
	"token-auth-service/internal/userstore"
)

// Resolver turns a bearer token into the user it represents. It is the ONLY
// place where token-to-user mapping logic lives.
type Resolver interface {
	ResolveAccess(ctx context.Context, tok string) (*userstore.User, error)
	ResolveRefresh(ctx context.Context, tok string) (*userstore.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// StoreResolver resolves tokens against the user store.
type StoreResolver struct {
	codec     *token.Codec
	store     userstore.Store
	issuer    *token.Issuer
	accessTTL time.Duration
}

func NewStoreResolver(
	codec *token.Codec,
	store userstore.Store,
	issuer *token.Issuer,
	accessTTL time.Duration,
) *StoreResolver {
	return &StoreResolver{
		codec:     codec,
		store:     store,
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

// ResolveAccess validates an access token and looks up its subject. A
// refresh token presented here is rejected, never silently accepted.
func (r *StoreResolver) ResolveAccess(ctx context.Context, tok string) (*userstore.User, error) {
	return r.resolve(ctx, tok, token.KindAccess)
}

// ResolveRefresh validates a refresh token and looks up its subject.
func (r *StoreResolver) ResolveRefresh(ctx context.Context, tok string) (*userstore.User, error) {
	return r.resolve(ctx, tok, token.KindRefresh)
}

func (r *StoreResolver) resolve(
	ctx context.Context,
	tok string,
	want token.Kind,
) (*userstore.User, error) {

	claims, err := r.codec.Decode(tok)
	if err != nil {
		return nil, err
	}

	if claims.Kind != want {
		return nil, autherr.ErrExpiredOrInvalidToken
	}

	user, err := r.store.FindByUsername(ctx, claims.Subject)
	if errors.Is(err, userstore.ErrNotFound) {
		return nil, autherr.ErrUserDoesNotExist
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated; it stays valid until its own expiry.
func (r *StoreResolver) Refresh(ctx context.Context, refreshToken string) (string, error) {
	user, err := r.ResolveRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	return r.issuer.IssueAccess(user.Username, r.accessTTL)
}

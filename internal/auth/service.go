package auth

import (
	"context"
	"errors"
	"time"

	"token-auth-service/internal/auth/credentials"
	"token-auth-service/internal/auth/token"
	"token-auth-service/internal/autherr"
	"token-auth-service/internal/userstore"
)

// UserIn is the registration input. Field validation beyond password length
// is the transport layer's concern.
type UserIn struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

// TokenPair is issued once per successful login or registration. No
// server-side record ties it to a session; possession is authority.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Service orchestrates login and registration.
type Service struct {
	store      userstore.Store
	issuer     *token.Issuer
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(
	store userstore.Store,
	issuer *token.Issuer,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		store:      store,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Login verifies a username/password pair and issues a token pair. An
// unknown username and a wrong password return the same error so callers
// cannot enumerate accounts.
func (s *Service) Login(
	ctx context.Context,
	username string,
	password string,
) (*TokenPair, error) {

	user, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, userstore.ErrNotFound) {
		return nil, autherr.ErrIncorrectUserOrPassword
	}
	if err != nil {
		return nil, err
	}

	if !credentials.VerifyPassword(user.PasswordHash, password) {
		return nil, autherr.ErrIncorrectUserOrPassword
	}

	return s.issuePair(username)
}

// Register creates a user record and immediately logs the new user in. A
// uniqueness conflict is reported without revealing which field collided.
func (s *Service) Register(ctx context.Context, in UserIn) (*TokenPair, error) {
	hash, err := credentials.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	_, err = s.store.Create(ctx, userstore.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		Disabled:     false,
		PasswordHash: hash,
	})
	if errors.Is(err, userstore.ErrConflict) {
		return nil, autherr.ErrUserAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	return s.issuePair(in.Username)
}

func (s *Service) issuePair(subject string) (*TokenPair, error) {
	access, err := s.issuer.IssueAccess(subject, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := s.issuer.IssueRefresh(subject, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

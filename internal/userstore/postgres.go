package userstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"token-auth-service/internal/db"
)

// PostgresStore is the canonical user store.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, full_name, disabled, password_hash
		FROM users
		WHERE username = $1
	`, username).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FullName,
		&u.Disabled,
		&u.PasswordHash,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *PostgresStore) Create(ctx context.Context, u User) (*User, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, full_name, disabled, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		u.Username,
		u.Email,
		u.FullName,
		u.Disabled,
		u.PasswordHash,
	).Scan(&u.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}

	return &u, nil
}

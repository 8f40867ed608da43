package userstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps user records as JSON values keyed by username, with a
// secondary key per email to enforce email uniqueness. Suited for
// deployments without a relational database.
type RedisStore struct {
	client      *redis.Client
	prefix      string
	emailPrefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:      client,
		prefix:      "user:",
		emailPrefix: "useremail:",
	}
}

func (s *RedisStore) key(username string) string {
	return s.prefix + username
}

func (s *RedisStore) emailKey(email string) string {
	return s.emailPrefix + email
}

func (s *RedisStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	val, err := s.client.Get(ctx, s.key(username)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var u User
	if err := json.Unmarshal([]byte(val), &u); err != nil {
		return nil, fmt.Errorf("userstore: failed to unmarshal: %w", err)
	}

	return &u, nil
}

func (s *RedisStore) Create(ctx context.Context, u User) (*User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	data, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("userstore: failed to marshal: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.key(u.Username), data, 0).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}

	ok, err = s.client.SetNX(ctx, s.emailKey(u.Email), u.Username, 0).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		// Roll back the username key so a later attempt can succeed.
		_ = s.client.Del(ctx, s.key(u.Username)).Err()
		return nil, ErrConflict
	}

	return &u, nil
}

package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"token-auth-service/internal/config"
	"token-auth-service/internal/db"
	"token-auth-service/internal/logger"
	"token-auth-service/internal/redis"
	"token-auth-service/internal/userstore"
)

type Infra struct {
	Store   userstore.Store
	cleanup func() error
}

// setupInfra opens the configured user-store backend and verifies it is
// reachable before the server starts accepting requests.
func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	switch cfg.UserStore {
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, err
		}

		if err := db.RunMigration(ctx, sqlDB); err != nil {
			return nil, err
		}

		logger.Info("database ready", nil)

		return &Infra{
			Store:   userstore.NewPostgresStore(&db.DB{DB: sqlDB}),
			cleanup: sqlDB.Close,
		}, nil

	case "redis":
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}

		logger.Info("redis ready", nil)

		return &Infra{
			Store:   userstore.NewRedisStore(redisClient.Client),
			cleanup: redisClient.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown user store backend: %q", cfg.UserStore)
	}
}

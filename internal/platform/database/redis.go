package database

import (
	"context"
	"fmt"

	"github.com/campuspolls/election-backend/internal/platform/config"
	"github.com/go-redis/redis/v8"
)

// RDB is the global Redis client used as the login session store.
// It stays nil when no Redis address is configured; callers must treat a
// nil RDB as "sessions are stateless JWTs only".
var RDB *redis.Client

// Ctx is the shared context for Redis operations.
var Ctx = context.Background()

// InitRedis connects to the Redis session store. A missing address is not
// an error: the server keeps working with non-revocable JWT sessions.
func InitRedis(cfg config.RedisConfig) error {
	if cfg.Address == "" {
		fmt.Println("Redis not configured, logout revocation disabled.")
		return nil
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	fmt.Println("Redis connection established.")
	return nil
}

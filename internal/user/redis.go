package user

import (
	"fmt"
	"strconv"
	"time"

	"github.com/campuspolls/election-backend/internal/platform/database"
)

// sessionKeyPrefix namespaces the Redis keys holding live login sessions.
// Key: session:<session-id>, value: the user ID, TTL: token lifetime.
const sessionKeyPrefix = "session:"

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// RegisterSession records a freshly issued session in Redis so it can be
// revoked by logout. A nil Redis client means sessions are stateless and
// registration is a no-op.
func RegisterSession(sessionID string, userID uint, expiresAt time.Time) error {
	if database.RDB == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sessionID)
	}
	return database.RDB.Set(database.Ctx, sessionKey(sessionID), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// RevokeSession removes a session from the store, invalidating its token.
func RevokeSession(sessionID string) error {
	if database.RDB == nil {
		return nil
	}
	return database.RDB.Del(database.Ctx, sessionKey(sessionID)).Err()
}

// SessionAlive reports whether the session is still registered. Without a
// Redis store every structurally valid token counts as alive.
func SessionAlive(sessionID string) (bool, error) {
	if database.RDB == nil {
		return true, nil
	}
	n, err := database.RDB.Exists(database.Ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session in Redis: %w", err)
	}
	return n > 0, nil
}

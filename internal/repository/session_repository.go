package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quizxmentor-backend/internal/config"
)

// SessionRepository tracks live login sessions in Redis. A session is valid
// only while its key exists.
type SessionRepository struct {
	rdb *redis.Client
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

// Save registers sessionID for userID until ttl elapses.
func (r *SessionRepository) Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error {
	key := config.CacheKey.SessionKey(sessionID)
	if err := r.rdb.Set(ctx, key, strconv.Itoa(userID), ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Exists reports whether sessionID is still live for userID.
func (r *SessionRepository) Exists(ctx context.Context, sessionID string, userID int) (bool, error) {
	stored, err := r.rdb.Get(ctx, config.CacheKey.SessionKey(sessionID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return stored == strconv.Itoa(userID), nil
}

// Delete removes sessionID. Deleting an unknown session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, config.CacheKey.SessionKey(sessionID)).Err()
}

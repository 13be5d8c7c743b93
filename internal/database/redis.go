package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/config"
)

// NewRedisClient connects the client used for sessions, rate-limit counters
// and the quiz event channel. Every live stats stream holds one extra
// connection for its subscription.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opt.ClientName = applicationName
	opt.DialTimeout = connectTimeout

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := RedisPing(rdb)(pingCtx); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("Redis connected")

	return rdb, nil
}

// RedisPing returns a check reporting whether rdb answers PING.
func RedisPing(rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		return nil
	}
}

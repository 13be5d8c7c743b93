package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/config"
	"github.com/stemsi/quizxmentor-backend/internal/response"
)

// RateLimiter is a per-IP fixed-window limiter whose counters live in Redis,
// so every server instance shares the same budget.
type RateLimiter struct {
	rdb      *redis.Client
	scope    string
	limit    int
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewRateLimiter creates a RateLimiter allowing limit requests per interval
// (e.g. 30 per minute). scope separates counters of unrelated route groups.
func NewRateLimiter(rdb *redis.Client, scope string, limit int, interval time.Duration, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		rdb:      rdb,
		scope:    scope,
		limit:    limit,
		interval: interval,
		log:      log.With().Str("component", "ratelimit").Str("scope", scope).Logger(),
		now:      time.Now,
	}
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
// A limit of zero or less disables it. Redis failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		now := rl.now()
		window := now.Truncate(rl.interval)
		key := config.CacheKey.RateLimitKey(rl.scope, c.ClientIP(), window)

		ctx := c.Request.Context()
		pipe := rl.rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, rl.interval)
		if _, err := pipe.Exec(ctx); err != nil {
			rl.log.Warn().Err(err).Msg("Rate limit check failed")
			c.Next()
			return
		}

		if incr.Val() > int64(rl.limit) {
			retry := window.Add(rl.interval).Sub(now)
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}

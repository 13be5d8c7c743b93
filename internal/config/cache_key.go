package config

import (
	"fmt"
	"time"
)

type CacheKeyStruct struct{}

// CacheKey is the shared namer for every Redis key the backend touches.
var CacheKey = &CacheKeyStruct{}

// EventsChannel is the Redis pub/sub channel carrying quiz events.
const EventsChannel = "quiz:events"

// SessionKey returns the liveness key of a login session.
func (r *CacheKeyStruct) SessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// RateLimitKey returns the counter key for a client inside a fixed window.
func (r *CacheKeyStruct) RateLimitKey(scope, clientIP string, window time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, clientIP, window.Unix())
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/response"
)

// AccessLog writes one structured line per request. Server errors log at
// error level, client errors at warn.
func AccessLog(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "http").Logger()

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		default:
			ev = log.Info()
		}

		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		if sess := GetSession(c); sess != nil {
			ev = ev.Int("user_id", sess.UserID)
		}

		ev.Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("Request")
	}
}

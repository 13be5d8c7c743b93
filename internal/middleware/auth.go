package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/stemsi/quizxmentor-backend/internal/response"
	"github.com/stemsi/quizxmentor-backend/internal/service"
)

// ContextKeySession is the Gin context key for the authenticated session.
const ContextKeySession = "session"

// Authenticator resolves a session token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Session, error)
}

// RequireSession resolves the session token from the session cookie, the
// Authorization bearer header, or the ?token= query parameter (WebSocket
// clients), in that order.
func RequireSession(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAuthRequired)
			return
		}

		sess, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalid)
				return
			}
			_ = c.Error(err)
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// RequireAdmin rejects sessions without the admin flag. It must run after
// RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAuthRequired)
			return
		}
		if !sess.IsAdmin {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}
		c.Next()
	}
}

// GetSession retrieves the authenticated session from the Gin context.
func GetSession(c *gin.Context) *model.Session {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil
	}
	sess, ok := val.(*model.Session)
	if !ok {
		return nil
	}
	return sess
}

func extractToken(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}

	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// Browsers cannot set headers on a WebSocket handshake.
	return c.Query("token")
}

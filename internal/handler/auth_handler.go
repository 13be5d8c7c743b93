package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizxmentor-backend/internal/config"
	"github.com/stemsi/quizxmentor-backend/internal/middleware"
	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/stemsi/quizxmentor-backend/internal/response"
	"github.com/stemsi/quizxmentor-backend/internal/service"
	"github.com/stemsi/quizxmentor-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// Register godoc
// POST /api/register
// Creates a regular account. Registration does not log the user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.CredentialsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"password": err.Error()})
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user.Profile(),
	})
}

// Login godoc
// POST /api/login
// Validates email + password, opens a session, and sets the session cookie.
// The token is also returned for clients that prefer a bearer header.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.CredentialsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sess, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.setSessionCookie(c, token, int(h.cfg.SessionTTL.Seconds()))
	response.Success(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    sess.Profile(),
		"token":   token,
	})
}

// Logout godoc
// POST /api/logout
// Ends the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sess); err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// CurrentUser godoc
// GET /api/user
// Returns the identity of the current session.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrAuthRequired)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": sess.Profile()})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookieName, value, maxAge, "/", "", h.cfg.CookieSecure, true)
}

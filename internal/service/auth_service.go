package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stemsi/quizxmentor-backend/internal/config"
	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/stemsi/quizxmentor-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("no valid session")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooLong    = fmt.Errorf("password exceeds %d bytes", model.MaxPasswordBytes)
)

// UserStore persists user records.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// SessionStore tracks which session ids are still live.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string, userID int) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// Claims extends JWT standard claims with the session identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID  int    `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// AuthService handles registration, password hashing, and login sessions.
type AuthService struct {
	cfg      *config.Config
	users    UserStore
	sessions SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, users UserStore, sessions SessionStore) *AuthService {
	return &AuthService{cfg: cfg, users: users, sessions: sessions}
}

// HashPassword hashes a password with the configured bcrypt cost. Passwords
// longer than model.MaxPasswordBytes yield ErrPasswordTooLong.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Register creates a regular (non-admin) account.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	return s.CreateUser(ctx, email, password, false)
}

// CreateUser stores a new account with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, email, password string, isAdmin bool) (*model.User, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and opens a session. It returns the session
// and its signed token. Unknown email and wrong password both yield
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Session, string, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := s.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, "", err
	}

	now := time.Now()
	sess := &model.Session{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}

	token, err := s.signToken(sess)
	if err != nil {
		return nil, "", err
	}
	if err := s.sessions.Save(ctx, sess.ID, sess.UserID, s.cfg.SessionTTL); err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

// Authenticate resolves a token to its session. Expired, forged, or logged
// out tokens yield ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*model.Session, error) {
	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	live, err := s.sessions.Exists(ctx, claims.ID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, ErrUnauthenticated
	}

	sess := &model.Session{
		ID:      claims.ID,
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// Logout ends sess; its token stops authenticating immediately.
func (s *AuthService) Logout(ctx context.Context, sess *model.Session) error {
	return s.sessions.Delete(ctx, sess.ID)
}

// ResetPassword replaces the password of the account owning email.
func (s *AuthService) ResetPassword(ctx context.Context, email, password string) error {
	hash, err := s.HashPassword(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return err
		}
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, normalizeEmail(email), hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ValidateToken parses and validates a session JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) signToken(sess *model.Session) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   strconv.Itoa(sess.UserID),
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
		UserID:  sess.UserID,
		Email:   sess.Email,
		IsAdmin: sess.IsAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

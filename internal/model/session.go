package model

import "time"

// Session is the server-recognized identity of a logged in browser.
type Session struct {
	ID        string    `json:"-"`
	UserID    int       `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Profile returns the identity fields exposed to the client.
func (s *Session) Profile() UserProfile {
	return UserProfile{ID: s.UserID, Email: s.Email, IsAdmin: s.IsAdmin}
}

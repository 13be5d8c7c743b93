package model

import "time"

// User is a registered quiz taker or administrator.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// MaxPasswordBytes is the longest password bcrypt accepts, in bytes.
const MaxPasswordBytes = 72

// CredentialsRequest is the payload for both registration and login.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72,password_bytes"`
}

// UserProfile is the public view of a user carried in responses.
type UserProfile struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Profile strips everything but the public identity fields.
func (u *User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

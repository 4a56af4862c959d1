package models

import "time"

// User represents a registered user
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	IsActive     bool      `json:"isActive"`
	IsSuperuser  bool      `json:"isSuperuser"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request; Login is a username or email
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// TokenPair is the response to a successful login or refresh
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserPatch is a partial update of a user; nil fields are left untouched
type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

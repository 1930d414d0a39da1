package models

import "time"

type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// ActionToken is a single-use token for password resets and email
// verification, stored hashed-equivalent as an opaque random string.
type ActionToken struct {
	ID        string
	UserID    string
	Token     string
	Purpose   string
	Expires   time.Time
	CreatedAt time.Time
}

// ActionToken purposes.
const (
	TokenPurposeResetPassword = "reset_password"
	TokenPurposeVerifyEmail   = "verify_email"
)

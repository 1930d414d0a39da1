// Package models holds the server-side domain records as they are stored
// and served. JSON tags define the snake_case wire form.
package models

import "time"

// User roles.
const (
	UserTypeClient      = "client"
	UserTypeProvider    = "provider"
	UserTypeAdmin       = "admin"
	UserTypeCoordinator = "coordinator"
)

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	UserType      string    `json:"user_type"`
	PasswordHash  []byte    `json:"-"`
	EmailVerified bool      `json:"email_verified"`
	ProviderID    string    `json:"provider_id,omitempty"`
	ParticipantID string    `json:"participant_id,omitempty"`
	CoordinatorID string    `json:"coordinator_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

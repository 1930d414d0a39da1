package models

import "time"

// Participant statuses.
const (
	ParticipantActive   = "active"
	ParticipantInactive = "inactive"
)

type Participant struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	NDISNumber    string    `json:"ndis_number"`
	Status        string    `json:"status"`
	CoordinatorID string    `json:"coordinator_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

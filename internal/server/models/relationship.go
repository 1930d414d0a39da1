package models

import "time"

// Relationship kinds and statuses.
const (
	RelationshipProvider    = "provider"
	RelationshipCoordinator = "coordinator"

	RelationshipActive = "active"
	RelationshipEnded  = "ended"
)

type Relationship struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	ProviderID    string    `json:"provider_id,omitempty"`
	CoordinatorID string    `json:"coordinator_id,omitempty"`
	Kind          string    `json:"kind"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

package models

import "time"

// Provider statuses.
const (
	ProviderActive   = "active"
	ProviderArchived = "archived"
)

type Provider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ABN       string    `json:"abn"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

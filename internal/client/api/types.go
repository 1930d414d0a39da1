package api

import "time"

// UserType discriminates the four dashboard roles.
type UserType string

const (
	UserTypeClient      UserType = "client"
	UserTypeProvider    UserType = "provider"
	UserTypeAdmin       UserType = "admin"
	UserTypeCoordinator UserType = "coordinator"
)

// User is the client-side view of an authenticated account. Exactly one of
// the role-linkage IDs is populated, consistent with UserType (admins carry
// none).
type User struct {
	ID            string
	Email         string
	Name          string
	UserType      UserType
	ProviderID    string
	ParticipantID string
	CoordinatorID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// List is a decoded page envelope.
type List[T any] struct {
	Items  []T
	Total  int
	Limit  int
	Offset int
}

// listEnvelope matches the wire form {entities, total, limit, offset}.
type listEnvelope[T any] struct {
	Entities []T `json:"entities"`
	Total    int `json:"total"`
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
}

func toList[T any](env listEnvelope[T]) *List[T] {
	return &List[T]{Items: env.Entities, Total: env.Total, Limit: env.Limit, Offset: env.Offset}
}

// PageParams are shared pagination query parameters.
type PageParams struct {
	Limit  int
	Offset int
}

// Participant is an NDIS participant record.
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

// Provider is a registered service provider.
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

// Coordinator is a support coordinator.
type Coordinator struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Invitation statuses.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"
	InvitationRevoked  = "revoked"
)

// Invitation is a pending account invitation.
type Invitation struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      UserType  `json:"role"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Relationship links a participant to a provider or coordinator.
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

// Invoice is a claim lodged by a provider against a participant's plan.
type Invoice struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	ParticipantID string    `json:"participant_id"`
	ProviderID    string    `json:"provider_id"`
	AmountCents   int64     `json:"amount_cents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Document validation statuses. Pending and processing are non-terminal:
// a list containing either keeps the polling loop alive.
const (
	DocumentPending    = "pending"
	DocumentProcessing = "processing"
	DocumentCompleted  = "completed"
	DocumentFailed     = "failed"
)

// Document is an uploaded invoice document going through AI validation.
type Document struct {
	ID                string    `json:"id"`
	InvoiceID         string    `json:"invoice_id"`
	FileName          string    `json:"file_name"`
	Status            string    `json:"status"`
	ValidationSummary string    `json:"validation_summary,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Terminal reports whether validation for the document has finished.
func (d Document) Terminal() bool {
	return d.Status == DocumentCompleted || d.Status == DocumentFailed
}

// Plan is an NDIS plan budget document.
type Plan struct {
	ID               string    `json:"id"`
	ParticipantID    string    `json:"participant_id"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	TotalBudgetCents int64     `json:"total_budget_cents"`
	SpentCents       int64     `json:"spent_cents"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DashboardSummary is the aggregate the dashboard landing page renders.
type DashboardSummary struct {
	Participants       int   `json:"participants"`
	Providers          int   `json:"providers"`
	Coordinators       int   `json:"coordinators"`
	PendingInvitations int   `json:"pending_invitations"`
	OpenInvoices       int   `json:"open_invoices"`
	PendingDocuments   int   `json:"pending_documents"`
	ActivePlans        int   `json:"active_plans"`
	TotalBudgetCents   int64 `json:"total_budget_cents"`
}

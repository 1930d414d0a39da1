package models

import "time"

// Plan statuses.
const (
	PlanActive   = "active"
	PlanExpired  = "expired"
	PlanUpcoming = "upcoming"
)

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

// DashboardSummary is the aggregate served to the dashboard landing page.
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

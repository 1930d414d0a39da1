package models

import "time"

// Invoice statuses.
const (
	InvoiceDraft     = "draft"
	InvoiceSubmitted = "submitted"
	InvoiceApproved  = "approved"
	InvoiceRejected  = "rejected"
	InvoicePaid      = "paid"
)

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

// Document validation statuses. The worker moves documents
// pending -> processing -> completed|failed.
const (
	DocumentPending    = "pending"
	DocumentProcessing = "processing"
	DocumentCompleted  = "completed"
	DocumentFailed     = "failed"
)

type Document struct {
	ID                string    `json:"id"`
	InvoiceID         string    `json:"invoice_id"`
	FileName          string    `json:"file_name"`
	ObjectKey         string    `json:"-"`
	Status            string    `json:"status"`
	ValidationSummary string    `json:"validation_summary,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

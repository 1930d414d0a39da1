package invoices

import (
	"context"

	"github.com/evercare/planhub/internal/server/models"
)

// Filter narrows and pages the invoice list.
type Filter struct {
	ParticipantID string
	ProviderID    string
	Status        string
	Limit         int
	Offset        int
}

// DocumentFilter narrows and pages the document list.
type DocumentFilter struct {
	InvoiceID string
	Status    string
	Limit     int
	Offset    int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.Invoice, int, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status string) (*models.Invoice, error)

	ListDocuments(ctx context.Context, f DocumentFilter) ([]*models.Document, int, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	CreateDocument(ctx context.Context, doc *models.Document) (*models.Document, error)
	ClaimPendingDocuments(ctx context.Context, limit int) ([]*models.Document, error)
	FinishDocument(ctx context.Context, id string, status string, summary string) error
}

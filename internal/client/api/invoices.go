package api

import (
	"context"

	"github.com/evercare/planhub/internal/common"
)

// Invoice statuses.
const (
	InvoiceDraft     = "draft"
	InvoiceSubmitted = "submitted"
	InvoiceApproved  = "approved"
	InvoiceRejected  = "rejected"
	InvoicePaid      = "paid"
)

// InvoiceListParams filter and page the invoice list.
type InvoiceListParams struct {
	ParticipantID string
	ProviderID    string
	Status        string
	Page          PageParams
}

func (p InvoiceListParams) query() map[string]string {
	return pageQuery(p.Page, map[string]string{
		"participant_id": p.ParticipantID,
		"provider_id":    p.ProviderID,
		"status":         p.Status,
	})
}

// CreateInvoiceRequest lodges a claim against a participant's plan.
type CreateInvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number"`
	ParticipantID string `json:"participant_id"`
	ProviderID    string `json:"provider_id"`
	AmountCents   int64  `json:"amount_cents"`
}

// DocumentListParams filter and page the document list.
type DocumentListParams struct {
	InvoiceID string
	Status    string
	Page      PageParams
}

func (p DocumentListParams) query() map[string]string {
	return pageQuery(p.Page, map[string]string{
		"invoice_id": p.InvoiceID,
		"status":     p.Status,
	})
}

// DocumentUpload is the server's answer to an upload registration: the
// created document record plus a presigned PUT URL the caller uploads the
// bytes to directly.
type DocumentUpload struct {
	Document  Document `json:"document"`
	UploadURL string   `json:"upload_url"`
}

// ListInvoices returns a page of invoices.
func (c *Client) ListInvoices(ctx context.Context, params InvoiceListParams) (*List[Invoice], error) {
	var env listEnvelope[Invoice]
	err := c.Get(ctx, common.APIBasePath+"/invoices", &env, WithParams(params.query()))
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

// GetInvoice returns one invoice by id.
func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	if err := c.Get(ctx, common.APIBasePath+"/invoices/"+id, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvoice lodges a claim.
func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	var inv Invoice
	if err := c.Post(ctx, common.APIBasePath+"/invoices", req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateInvoiceStatus moves an invoice through its approval workflow.
func (c *Client) UpdateInvoiceStatus(ctx context.Context, id, status string) (*Invoice, error) {
	var inv Invoice
	body := map[string]string{"status": status}
	if err := c.Patch(ctx, common.APIBasePath+"/invoices/"+id+"/status", body, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListDocuments returns a page of invoice documents, optionally filtered by
// invoice or validation status. The dashboard polls this with
// status=pending until validation settles.
func (c *Client) ListDocuments(ctx context.Context, params DocumentListParams) (*List[Document], error) {
	var env listEnvelope[Document]
	err := c.Get(ctx, common.APIBasePath+"/documents", &env, WithParams(params.query()))
	if err != nil {
		return nil, err
	}
	return toList(env), nil
}

// GetDocument returns one document by id.
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	var d Document
	if err := c.Get(ctx, common.APIBasePath+"/documents/"+id, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RegisterDocumentUpload creates a pending document for an invoice and
// returns the presigned URL for the actual byte upload.
func (c *Client) RegisterDocumentUpload(ctx context.Context, invoiceID, fileName, contentType string) (*DocumentUpload, error) {
	body := map[string]string{"file_name": fileName, "content_type": contentType}
	var up DocumentUpload
	if err := c.Post(ctx, common.APIBasePath+"/invoices/"+invoiceID+"/documents", body, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// DocumentDownloadURL returns a presigned GET URL for a completed document.
func (c *Client) DocumentDownloadURL(ctx context.Context, id string) (string, error) {
	var out struct {
		DownloadURL string `json:"download_url"`
	}
	if err := c.Get(ctx, common.APIBasePath+"/documents/"+id+"/download", &out); err != nil {
		return "", err
	}
	return out.DownloadURL, nil
}

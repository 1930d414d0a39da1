package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evercare/planhub/internal/server/models"
	"github.com/evercare/planhub/internal/server/repositories/invoices"
	"github.com/evercare/planhub/internal/server/repositories/plans"
	"github.com/evercare/planhub/internal/server/services"
)

func (h *Handlers) listInvoices(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := r.URL.Query()

	items, total, err := h.invoices.List(r.Context(), invoices.Filter{
		ParticipantID: q.Get("participant_id"),
		ProviderID:    q.Get("provider_id"),
		Status:        q.Get("status"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, items, total, limit, offset)
}

func (h *Handlers) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handlers) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvoiceNumber string `json:"invoice_number"`
		ParticipantID string `json:"participant_id"`
		ProviderID    string `json:"provider_id"`
		AmountCents   int64  `json:"amount_cents"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, err := h.invoices.Create(r.Context(), &models.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		ParticipantID: req.ParticipantID,
		ProviderID:    req.ProviderID,
		AmountCents:   req.AmountCents,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *Handlers) updateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status == "" {
		writeValidationError(w, "status is required", map[string][]string{"status": {"is required"}})
		return
	}

	inv, err := h.invoices.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handlers) listDocuments(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := r.URL.Query()

	items, total, err := h.invoices.ListDocuments(r.Context(), invoices.DocumentFilter{
		InvoiceID: q.Get("invoice_id"),
		Status:    q.Get("status"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, items, total, limit, offset)
}

func (h *Handlers) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.invoices.GetDocument(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handlers) registerDocumentUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName string `json:"file_name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.FileName == "" {
		writeValidationError(w, "file_name is required", map[string][]string{"file_name": {"is required"}})
		return
	}

	doc, uploadURL, err := h.invoices.RegisterUpload(r.Context(), mux.Vars(r)["id"], req.FileName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Document  *models.Document `json:"document"`
		UploadURL string           `json:"upload_url"`
	}{Document: doc, UploadURL: uploadURL})
}

func (h *Handlers) documentDownloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.invoices.DownloadURL(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		DownloadURL string `json:"download_url"`
	}{DownloadURL: url})
}

func (h *Handlers) listPlans(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := r.URL.Query()

	items, total, err := h.plans.List(r.Context(), plans.Filter{
		ParticipantID: q.Get("participant_id"),
		Status:        q.Get("status"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, items, total, limit, offset)
}

func (h *Handlers) getPlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.plans.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) createPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParticipantID    string `json:"participant_id"`
		StartDate        string `json:"start_date"`
		EndDate          string `json:"end_date"`
		TotalBudgetCents int64  `json:"total_budget_cents"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.plans.Create(r.Context(), &models.Plan{
		ParticipantID:    req.ParticipantID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		TotalBudgetCents: req.TotalBudgetCents,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) updatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EndDate          *string `json:"end_date"`
		TotalBudgetCents *int64  `json:"total_budget_cents"`
		Status           *string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.plans.Update(r.Context(), mux.Vars(r)["id"], services.PlanPatch{
		EndDate:          req.EndDate,
		TotalBudgetCents: req.TotalBudgetCents,
		Status:           req.Status,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.dashboard.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

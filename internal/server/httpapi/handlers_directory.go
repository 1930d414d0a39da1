package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evercare/planhub/internal/server/models"
	"github.com/evercare/planhub/internal/server/repositories/coordinators"
	"github.com/evercare/planhub/internal/server/repositories/invitations"
	"github.com/evercare/planhub/internal/server/repositories/participants"
	"github.com/evercare/planhub/internal/server/repositories/providers"
	"github.com/evercare/planhub/internal/server/repositories/relationships"
	"github.com/evercare/planhub/internal/server/services"
)

func (h *Handlers) listParticipants(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := r.URL.Query()

	items, total, err := h.participants.List(r.Context(), participants.Filter{
		Status:        q.Get("status"),
		CoordinatorID: q.Get("coordinator_id"),
		Search:        q.Get("search"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, items, total, limit, offset)
}

func (h *Handlers) getParticipant(w http.ResponseWriter, r *http.Request) {
	p, err := h.participants.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) createParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		Email         string `json:"email"`
		NDISNumber    string `json:"ndis_number"`
		CoordinatorID string `json:"coordinator_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	details := map[string][]string{}
	if req.FirstName == "" {
		details["first_name"] = []string{"is required"}
	}
	if req.LastName == "" {
		details["last_name"] = []string{"is required"}
	}
	if req.Email == "" {
		details["email"] = []string{"is required"}
	}
	if req.NDISNumber == "" {
		details["ndis_number"] = []string{"is required"}
	}
	if len(details) > 0 {
		writeValidationError(w, "participant failed validation", details)
		return
	}

	p, err := h.participants.Create(r.Context(), &models.Participant{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		NDISNumber:    req.NDISNumber,
		CoordinatorID: req.CoordinatorID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) updateParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName     *string `json:"first_name"`
		LastName      *string `json:"last_name"`
		Email         *string `json:"email"`
		Status        *string `json:"status"`
		CoordinatorID *string `json:"coordinator_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.participants.Update(r.Context(), mux.Vars(r)["id"], services.ParticipantPatch{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Status:        req.Status,
		CoordinatorID: req.CoordinatorID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) deleteParticipant(w http.ResponseWriter, r *http.Request) {
	if err := h.participants.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listProviders(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := r.URL.Query()

	items, total, err := h.providers.List(r.Context(), providers.Filter{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, items, total, limit, offset)
}

func (h *Handlers) getProvider(w http.ResponseWriter, r *http.Request) {
	p, err := h.providers.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) createProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		ABN   string `json:"abn"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.ABN == "" || req.Email == "" {
		writeValidationError(w, "name, abn and email are required", nil)
		return
	}

	p, err := h.providers.Create(r.Context(), &models.Provider{
		Name:  req.Name,
		ABN:   req.ABN,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) updateProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   *string `json:"name"`
		Email  *string `json:"email"`
		Phone  *string `json:"phone"`
		Status *string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.providers.Update(r.Context(), mux.Vars(r)["id"], services.ProviderPatch{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) deleteProvider(w http.ResponseWriter, r *http.Request) {
	if err := h.providers.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listCoordinators(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := r.URL.Query()

	items, total, err := h.coordinators.List(r.Context(), coordinators.Filter{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, items, total, limit, offset)
}

func (h *Handlers) getCoordinator(w http.ResponseWriter, r *http.Request) {
	c, err := h.coordinators.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) createCoordinator(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" {
		writeValidationError(w, "name and email are required", nil)
		return
	}

	c, err := h.coordinators.Create(r.Context(), &models.Coordinator{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) updateCoordinator(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   *string `json:"name"`
		Email  *string `json:"email"`
		Phone  *string `json:"phone"`
		Status *string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.coordinators.Update(r.Context(), mux.Vars(r)["id"], services.CoordinatorPatch{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) deleteCoordinator(w http.ResponseWriter, r *http.Request) {
	if err := h.coordinators.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listInvitations(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := r.URL.Query()

	items, total, err := h.invitations.List(r.Context(), invitations.Filter{
		Status: q.Get("status"),
		Role:   q.Get("role"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, items, total, limit, offset)
}

func (h *Handlers) getInvitation(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invitations.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handlers) createInvitation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Role == "" {
		writeValidationError(w, "email and role are required", nil)
		return
	}

	inv, err := h.invitations.Create(r.Context(), req.Email, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *Handlers) resendInvitation(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invitations.Resend(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handlers) revokeInvitation(w http.ResponseWriter, r *http.Request) {
	if err := h.invitations.Revoke(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listRelationships(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := r.URL.Query()

	items, total, err := h.relationships.List(r.Context(), relationships.Filter{
		ParticipantID: q.Get("participant_id"),
		ProviderID:    q.Get("provider_id"),
		CoordinatorID: q.Get("coordinator_id"),
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

func (h *Handlers) createRelationship(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParticipantID string `json:"participant_id"`
		ProviderID    string `json:"provider_id"`
		CoordinatorID string `json:"coordinator_id"`
		Kind          string `json:"kind"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	rel, err := h.relationships.Create(r.Context(), &models.Relationship{
		ParticipantID: req.ParticipantID,
		ProviderID:    req.ProviderID,
		CoordinatorID: req.CoordinatorID,
		Kind:          req.Kind,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rel)
}

func (h *Handlers) endRelationship(w http.ResponseWriter, r *http.Request) {
	if err := h.relationships.End(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

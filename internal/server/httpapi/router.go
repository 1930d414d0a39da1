package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/obs"
	"github.com/evercare/planhub/internal/server/config"
)

// NewRouter assembles the full route table with auth, rate limiting, and
// metrics middleware applied.
func NewRouter(h *Handlers, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.Handle("/metrics", obs.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix(common.APIBasePath).Subrouter()
	api.Use(obs.Instrument)
	api.Use(limitAuth(cfg.AuthRateLimit, cfg.AuthRateBurst))
	api.Use(authenticate([]byte(cfg.SecretKey)))

	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", h.me).Methods(http.MethodGet)
	api.HandleFunc("/auth/forgot-password", h.forgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", h.resetPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-email", h.verifyEmail).Methods(http.MethodPost)

	api.HandleFunc("/invitations/validate", h.validateInvitation).Methods(http.MethodGet)
	api.HandleFunc("/invitations/accept", h.acceptInvitation).Methods(http.MethodPost)
	api.HandleFunc("/invitations", h.listInvitations).Methods(http.MethodGet)
	api.HandleFunc("/invitations", h.createInvitation).Methods(http.MethodPost)
	api.HandleFunc("/invitations/{id}", h.getInvitation).Methods(http.MethodGet)
	api.HandleFunc("/invitations/{id}", h.revokeInvitation).Methods(http.MethodDelete)
	api.HandleFunc("/invitations/{id}/resend", h.resendInvitation).Methods(http.MethodPost)

	api.HandleFunc("/participants", h.listParticipants).Methods(http.MethodGet)
	api.HandleFunc("/participants", h.createParticipant).Methods(http.MethodPost)
	api.HandleFunc("/participants/{id}", h.getParticipant).Methods(http.MethodGet)
	api.HandleFunc("/participants/{id}", h.updateParticipant).Methods(http.MethodPatch)
	api.HandleFunc("/participants/{id}", h.deleteParticipant).Methods(http.MethodDelete)

	api.HandleFunc("/providers", h.listProviders).Methods(http.MethodGet)
	api.HandleFunc("/providers", h.createProvider).Methods(http.MethodPost)
	api.HandleFunc("/providers/{id}", h.getProvider).Methods(http.MethodGet)
	api.HandleFunc("/providers/{id}", h.updateProvider).Methods(http.MethodPatch)
	api.HandleFunc("/providers/{id}", h.deleteProvider).Methods(http.MethodDelete)

	api.HandleFunc("/coordinators", h.listCoordinators).Methods(http.MethodGet)
	api.HandleFunc("/coordinators", h.createCoordinator).Methods(http.MethodPost)
	api.HandleFunc("/coordinators/{id}", h.getCoordinator).Methods(http.MethodGet)
	api.HandleFunc("/coordinators/{id}", h.updateCoordinator).Methods(http.MethodPatch)
	api.HandleFunc("/coordinators/{id}", h.deleteCoordinator).Methods(http.MethodDelete)

	api.HandleFunc("/relationships", h.listRelationships).Methods(http.MethodGet)
	api.HandleFunc("/relationships", h.createRelationship).Methods(http.MethodPost)
	api.HandleFunc("/relationships/{id}", h.endRelationship).Methods(http.MethodDelete)

	api.HandleFunc("/invoices", h.listInvoices).Methods(http.MethodGet)
	api.HandleFunc("/invoices", h.createInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{id}", h.getInvoice).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}/status", h.updateInvoiceStatus).Methods(http.MethodPatch)
	api.HandleFunc("/invoices/{id}/documents", h.registerDocumentUpload).Methods(http.MethodPost)

	api.HandleFunc("/documents", h.listDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", h.getDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/download", h.documentDownloadURL).Methods(http.MethodGet)

	api.HandleFunc("/plans", h.listPlans).Methods(http.MethodGet)
	api.HandleFunc("/plans", h.createPlan).Methods(http.MethodPost)
	api.HandleFunc("/plans/{id}", h.getPlan).Methods(http.MethodGet)
	api.HandleFunc("/plans/{id}", h.updatePlan).Methods(http.MethodPatch)

	api.HandleFunc("/dashboard/summary", h.dashboardSummary).Methods(http.MethodGet)

	return r
}

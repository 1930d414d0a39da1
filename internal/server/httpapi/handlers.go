package httpapi

import (
	"net/http"
	"strconv"

	"github.com/evercare/planhub/internal/logging"
	"github.com/evercare/planhub/internal/server/services"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Handlers bundles the request handlers with the services they call.
type Handlers struct {
	users         *services.UserService
	invitations   *services.InvitationService
	participants  *services.ParticipantService
	providers     *services.ProviderService
	coordinators  *services.CoordinatorService
	relationships *services.RelationshipService
	invoices      *services.InvoiceService
	plans         *services.PlanService
	dashboard     *services.DashboardService
	logger        logging.Logger
}

func NewHandlers(
	users *services.UserService,
	invitations *services.InvitationService,
	participants *services.ParticipantService,
	providers *services.ProviderService,
	coordinators *services.CoordinatorService,
	relationships *services.RelationshipService,
	invoices *services.InvoiceService,
	plans *services.PlanService,
	dashboard *services.DashboardService,
	logger logging.Logger,
) *Handlers {
	return &Handlers{
		users:         users,
		invitations:   invitations,
		participants:  participants,
		providers:     providers,
		coordinators:  coordinators,
		relationships: relationships,
		invoices:      invoices,
		plans:         plans,
		dashboard:     dashboard,
		logger:        logger,
	}
}

// pageParams reads limit/offset from the query, clamping to sane bounds.
func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// Package httpapi exposes the PlanHub REST API: routing, middleware, and
// handlers over the service layer.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evercare/planhub/internal/common"
)

// errorBody is the error envelope every non-2xx response carries.
type errorBody struct {
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// listBody is the paged collection envelope.
type listBody struct {
	Entities any `json:"entities"`
	Total    int `json:"total"`
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeList(w http.ResponseWriter, entities any, total, limit, offset int) {
	writeJSON(w, http.StatusOK, listBody{Entities: entities, Total: total, Limit: limit, Offset: offset})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Message: message, Code: code})
}

func writeValidationError(w http.ResponseWriter, message string, details map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody{
		Message: message,
		Code:    "validation_failed",
		Details: details,
	})
}

// writeServiceError maps the sentinel errors the services return onto HTTP
// statuses. Anything unrecognized is reported as a 500 without leaking the
// underlying error text.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, common.ErrorForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "access denied")
	case errors.Is(err, common.ErrInvitationExpired):
		writeError(w, http.StatusUnprocessableEntity, "invitation_expired", "invitation has expired")
	case errors.Is(err, common.ErrInvitationAccepted):
		writeError(w, http.StatusUnprocessableEntity, "invitation_accepted", "invitation was already accepted")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", "resource already exists")
	case errors.Is(err, common.ErrorValidation):
		writeValidationError(w, "request failed validation", nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeJSON reads the request body into v. A malformed body is a client
// error, answered inline with a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return false
	}
	return true
}

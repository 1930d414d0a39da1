package httpapi

import (
	"net/http"
	"time"

	"github.com/evercare/planhub/internal/server/models"
	"github.com/evercare/planhub/internal/server/services"
)

// tokenBody is the session token block; expires_at is RFC3339.
type tokenBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
	TokenType    string `json:"token_type"`
}

// epochTokenBody is the invitation-accept token block. Its expires_at is
// numeric epoch seconds; the invitation flow predates the RFC3339 encoding
// and deployed clients still parse it this way.
type epochTokenBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	TokenType    string `json:"token_type"`
}

type sessionBody struct {
	Token tokenBody    `json:"token"`
	User  *models.User `json:"user"`
}

type inviteSessionBody struct {
	User   *models.User   `json:"user"`
	Tokens epochTokenBody `json:"tokens"`
}

func toTokenBody(pair *services.TokenPair) tokenBody {
	return tokenBody{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExpires.UTC().Format(time.RFC3339),
		TokenType:    "bearer",
	}
}

func toEpochTokenBody(pair *services.TokenPair) epochTokenBody {
	return epochTokenBody{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExpires.Unix(),
		TokenType:    "bearer",
	}
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeValidationError(w, "email and password are required", nil)
		return
	}

	user, pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionBody{Token: toTokenBody(pair), User: user})
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		UserType string `json:"user_type"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	details := map[string][]string{}
	if req.Email == "" {
		details["email"] = []string{"is required"}
	}
	if len(req.Password) < 8 {
		details["password"] = []string{"must be at least 8 characters"}
	}
	if req.Name == "" {
		details["name"] = []string{"is required"}
	}
	if len(details) > 0 {
		writeValidationError(w, "registration failed validation", details)
		return
	}

	user, pair, err := h.users.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionBody{Token: toTokenBody(pair), User: user})
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token tokenBody `json:"token"`
	}{Token: toTokenBody(pair)})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.Logout(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	user, err := h.users.Me(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handlers) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	// Same answer whether or not the address exists.
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Password) < 8 {
		writeValidationError(w, "password must be at least 8 characters",
			map[string][]string{"password": {"must be at least 8 characters"}})
		return
	}

	if err := h.users.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.VerifyEmail(r.Context(), req.Token); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) validateInvitation(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeValidationError(w, "token is required", map[string][]string{"token": {"is required"}})
		return
	}

	inv, err := h.invitations.Validate(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handlers) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	details := map[string][]string{}
	if req.Token == "" {
		details["token"] = []string{"is required"}
	}
	if len(req.Password) < 8 {
		details["password"] = []string{"must be at least 8 characters"}
	}
	if req.Name == "" {
		details["name"] = []string{"is required"}
	}
	if len(details) > 0 {
		writeValidationError(w, "signup failed validation", details)
		return
	}

	user, pair, err := h.invitations.Accept(r.Context(), req.Token, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inviteSessionBody{User: user, Tokens: toEpochTokenBody(pair)})
}

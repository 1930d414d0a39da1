package httpapi

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/evercare/planhub/internal/common"
	"github.com/evercare/planhub/internal/server/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// claimsFrom returns the verified token claims middleware stored on the
// request, or nil on a public route.
func claimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}

// publicRoutes are reachable without a bearer token.
var publicRoutes = map[string]bool{
	common.APIBasePath + "/auth/login":           true,
	common.APIBasePath + "/auth/register":        true,
	common.APIBasePath + "/auth/refresh":         true,
	common.APIBasePath + "/auth/forgot-password": true,
	common.APIBasePath + "/auth/reset-password":  true,
	common.APIBasePath + "/auth/verify-email":    true,
	common.APIBasePath + "/invitations/validate": true,
	common.APIBasePath + "/invitations/accept":   true,
}

// authenticate rejects requests without a valid bearer token, except on the
// public allowlist. Verified claims are stored on the request context.
func authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicRoutes[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get(common.AuthorizationHeader)
			if !strings.HasPrefix(header, common.BearerPrefix) {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims, err := auth.ParseToken(strings.TrimPrefix(header, common.BearerPrefix), secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// limitAuth throttles the credential endpoints with a shared token bucket
// and answers over-budget requests with 429 plus a Retry-After hint.
func limitAuth(limit float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, common.APIBasePath+"/auth/") {
				if !limiter.Allow() {
					w.Header().Set("Retry-After", "1")
					writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Package api is the typed PlanHub HTTP client. It owns the transport
// concerns (bearer auth, interceptor chains, error classification) and
// exposes one method per server operation; callers never see raw HTTP
// statuses, only the typed error set in errors.go.
package api

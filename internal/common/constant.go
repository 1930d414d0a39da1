// Package common contains shared constants and sentinel errors used across
// PlanHub components.
package common

// APIBasePath is the version prefix every PlanHub endpoint lives under.
const APIBasePath = "/api/v1"

// AuthorizationHeader carries the bearer access token on outbound requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix is the scheme prefix of the Authorization header value.
const BearerPrefix = "Bearer "

// Package common contains shared constants and sentinel errors used across
// client components.
package common

// AuthorizationHeaderName carries the bearer token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request identifier for server-side log correlation.
const RequestIDHeaderName = "X-Request-ID"

// AuthTokenKey is the fixed local key under which the session token is persisted.
const AuthTokenKey = "authToken"

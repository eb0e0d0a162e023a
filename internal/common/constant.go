// Package common contains shared constants and sentinel errors used across
// the server, its transports and the CLI client.
package common

// AuthorizationHeaderName is the HTTP header (and lowercase gRPC metadata key)
// that carries the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries the per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

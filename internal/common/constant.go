// Package common contains header names and small helpers shared by the
// Tijarah client packages.
package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" on authenticated requests.
	AuthorizationHeaderName = "Authorization"

	// TokenExpiredHeaderName is set to "true" by the API on a 401 caused by
	// an expired token.
	TokenExpiredHeaderName = "Token-Expired"

	// RequestIDHeaderName correlates a client request with server logs.
	RequestIDHeaderName = "X-Request-ID"
)

// Package client is the transport layer between the Tijarah CLI and the
// marketplace REST API.
//
// # Overview
//
// The API surface is split into narrow interfaces (AuthAPI, ListingAPI,
// AdminAPI, SettingsAPI) so services depend only on what they call; Client
// combines them. HTTPClient implements Client over net/http:
//
//   - JSON request and response bodies;
//   - a bearer token from the installed TokenSource on authenticated calls;
//   - an X-Request-ID (uuid) on every call;
//   - client-side throttling with a token bucket (golang.org/x/time/rate).
//
// # Error Handling
//
// Failures map onto sentinel errors matched with errors.Is:
//
//	no response               ErrUnavailable
//	401 on login              ErrUnauthorized, or ErrAccountDisabled when titled "Account disabled"
//	403 on login              ErrAccountBanned
//	401 with a bearer token   ErrSessionExpired (the expiry handler runs first)
//	400 / 422                 ErrValidation
//	403 elsewhere             ErrForbidden
//	404                       ErrNotFound
//	5xx                       ErrServer
//
// Non-2xx responses are *APIError values carrying the server's title and
// detail; use Detail to show the message verbatim.
//
// Listing status changes and support contact updates are confirmed by a
// read-back when the write fails ambiguously (see verify.go).
package client

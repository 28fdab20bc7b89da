package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnavailable means no response was received at all.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is a 401 on login: wrong identifier or password.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAccountDisabled is a 401 on login whose title is "Account disabled".
	ErrAccountDisabled = errors.New("account disabled")
	// ErrAccountBanned is a 403 on login.
	ErrAccountBanned = errors.New("account banned")
	// ErrSessionExpired is a 401 on a request that carried a bearer token.
	ErrSessionExpired = errors.New("session expired")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrServer         = errors.New("server error")
	ErrUnexpected     = errors.New("unexpected response")
)

// AccountDisabledTitle is the problem title the API uses for a disabled account.
const AccountDisabledTitle = "Account disabled"

// APIError is a non-2xx response. errors.Is matches it against the sentinel
// for its class.
type APIError struct {
	StatusCode   int
	Title        string
	Detail       string
	Errors       map[string][]string
	RequestID    string
	TokenExpired bool

	kind error
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d): %s", e.kind, e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// problem is the RFC 7807 body the API returns. Some endpoints answer with
// {"message": ...} instead.
type problem struct {
	Title   string              `json:"title"`
	Detail  string              `json:"detail"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}

	var p problem
	trimmed := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &p); err == nil {
		e.Title = p.Title
		e.Detail = p.Detail
		if e.Detail == "" {
			e.Detail = p.Message
		}
		e.Errors = p.Errors
	} else if trimmed != "" && !strings.HasPrefix(trimmed, "<") {
		e.Detail = trimmed
	}

	e.kind = classify(status, e.Title)
	return e
}

func classify(status int, title string) error {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status == http.StatusUnauthorized:
		if strings.EqualFold(strings.TrimSpace(title), AccountDisabledTitle) {
			return ErrAccountDisabled
		}
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrServer
	default:
		return ErrUnexpected
	}
}

// Detail returns the server-provided message carried by err, if any.
func Detail(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

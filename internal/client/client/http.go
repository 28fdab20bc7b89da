package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tijarah/internal/common"
	"github.com/dmitrijs2005/tijarah/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const maxResponseBody = 4 << 20

// Options configures an HTTPClient.
type Options struct {
	// BaseURL is the API root, e.g. https://localhost:7064/api.
	BaseURL string
	// Timeout bounds a single request. Zero means no client-side timeout.
	Timeout time.Duration
	// RateLimit is the sustained request rate in requests per second; zero
	// disables throttling.
	RateLimit float64
	// RateBurst is the token bucket size.
	RateBurst int
	// HTTPClient replaces the default client (tests).
	HTTPClient *http.Client
	Logger     logging.Logger
}

// HTTPClient talks to the Tijarah REST API.
//
// Every request carries an X-Request-ID. Requests made with authentication
// carry the bearer token from the TokenSource; a 401 to such a request is
// reported as ErrSessionExpired and the expiry handler is invoked so the
// session can drop to anonymous.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger

	mu        sync.RWMutex
	tokens    TokenSource
	onExpired func(ctx context.Context)
}

// NewHTTPClient validates opts and builds a client.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
		limiter: limiter,
		logger:  logger.With("component", "api"),
	}, nil
}

// SetTokenSource installs where bearer tokens come from.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// OnSessionExpired installs the handler run after a 401 to an authenticated
// request.
func (c *HTTPClient) OnSessionExpired(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = fn
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type call struct {
	method string
	path   string
	query  url.Values
	in     any
	out    any
	auth   bool
}

func (c *HTTPClient) bearer(ctx context.Context) string {
	c.mu.RLock()
	ts := c.tokens
	c.mu.RUnlock()
	if ts == nil {
		return ""
	}
	return ts.Token(ctx)
}

func (c *HTTPClient) sessionExpired(ctx context.Context) {
	c.mu.RLock()
	fn := c.onExpired
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

func (c *HTTPClient) do(ctx context.Context, r call) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader
	if r.in != nil {
		b, err := json.Marshal(r.in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if r.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := ""
	if r.auth {
		token = c.bearer(ctx)
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn(ctx, "no response from api", "method", r.method, "path", r.path, "request_id", requestID, "err", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrUnavailable, r.method, r.path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if r.out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, r.out); err != nil {
			return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
		}
		return nil
	}

	apiErr := newAPIError(resp.StatusCode, data)
	apiErr.RequestID = requestID
	apiErr.TokenExpired = strings.EqualFold(resp.Header.Get(common.TokenExpiredHeaderName), "true")

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		apiErr.kind = ErrSessionExpired
		c.logger.Info(ctx, "session rejected by api", "path", r.path, "token_expired", apiErr.TokenExpired, "request_id", requestID)
		c.sessionExpired(ctx)
	} else {
		c.logger.Debug(ctx, "api error", "method", r.method, "path", r.path, "status", resp.StatusCode, "request_id", requestID)
	}

	return apiErr
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, call{method: http.MethodGet, path: path, query: query, out: out, auth: true})
}

func (c *HTTPClient) send(ctx context.Context, method, path string, in, out any) error {
	return c.do(ctx, call{method: method, path: path, in: in, out: out, auth: true})
}

// retryable reports whether a failed write may still have been applied.
func retryable(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrServer)
}

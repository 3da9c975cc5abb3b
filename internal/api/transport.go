// Package api is the HTTP layer between the client and the AgriGest
// backend. One facade per resource, each operation a single un-retried
// REST call. A 401 on any authenticated call invalidates the whole
// session through the client's expiry hook.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every request unless the caller's context
// carries an earlier deadline.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the current auth token, or "" when anonymous.
type TokenSource func() string

// Client is the shared transport for all resource facades.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     *zap.Logger

	// onSessionExpired runs once per 401 response, before the error is
	// returned to the caller. There is no per-call opt-out.
	onSessionExpired func()
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the token source used for the Authorization header.
func WithToken(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithSessionExpiredHook sets the callback invoked on any 401.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a transport rooted at baseURL (e.g.
// "http://localhost:8000/api").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		token:      func() string { return "" },
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cultures returns the crop facade.
func (c *Client) Cultures() *CultureService { return &CultureService{c: c} }

// Recoltes returns the harvest facade.
func (c *Client) Recoltes() *RecolteService { return &RecolteService{c: c} }

// Depenses returns the expense facade.
func (c *Client) Depenses() *DepenseService { return &DepenseService{c: c} }

// Conseils returns the advice facade.
func (c *Client) Conseils() *ConseilService { return &ConseilService{c: c} }

// Dashboard returns the statistics facade.
func (c *Client) Dashboard() *DashboardService { return &DashboardService{c: c} }

// Auth returns the authentication facade.
func (c *Client) Auth() *AuthService { return &AuthService{c: c} }

// Filters are query parameters forwarded to list endpoints.
type Filters map[string]string

func (f Filters) encode() string {
	if len(f) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range f {
		if v != "" {
			values.Set(k, v)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// do issues one JSON request and decodes the response into out (when
// out is non-nil). Non-2xx statuses become *Error or FieldErrors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return &Error{StatusCode: http.StatusUnauthorized, Detail: "session expired"}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorBody(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// getList fetches a collection, unwrapping a {"results": [...]}
// envelope when the server paginates and decoding the bare array
// otherwise.
func getList[T any](ctx context.Context, c *Client, path string, filters Filters) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path+filters.encode(), nil, &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		// 204 or an empty 200 body: an empty collection, not a decode
		// failure.
		return nil, nil
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("GET %s: decode envelope: %w", path, err)
		}
		return envelope.Results, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("GET %s: decode list: %w", path, err)
	}
	return items, nil
}

package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.airtable.com/v0"
	defaultTimeout = 10 * time.Second

	// Airtable allows 5 requests per second per base.
	defaultRate  = 5
	defaultBurst = 5

	maxErrorBody = 64 << 10
)

// Client is an Airtable API client bound to a single base.
type Client struct {
	baseID     string
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom API root (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit caps outgoing requests. A non-positive rps disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log.Named("airtable")
	}
}

// New creates a client for the given base. An empty baseID or token yields a
// client whose calls fail fast with ErrNotConfigured.
func New(baseID, token string, opts ...Option) *Client {
	c := &Client{
		baseID:  baseID,
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(defaultRate, defaultBurst),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether both the base ID and token are set.
func (c *Client) Configured() bool {
	return c.baseID != "" && c.token != ""
}

// List returns every record of table matching q, following pagination
// offsets until the API stops returning one. Records keep the order the API
// sent them in. If any page fails, nothing is returned.
func (c *Client) List(ctx context.Context, table string, q Query) ([]Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	params := q.values()
	endpoint := c.tableURL(table)

	var (
		all   []Record
		pages int
	)
	for {
		u := endpoint
		if len(params) > 0 {
			u += "?" + params.Encode()
		}

		var page listResponse
		if err := c.getJSON(ctx, u, &page); err != nil {
			return nil, err
		}
		pages++
		all = append(all, page.Records...)

		if page.Offset == "" {
			break
		}
		params.Set("offset", page.Offset)
	}

	c.log.Debug("listed records",
		zap.String("table", table),
		zap.Int("records", len(all)),
		zap.Int("pages", pages),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return all, nil
}

// Get fetches a single record by ID. A missing record yields nil, nil.
func (c *Client) Get(ctx context.Context, table, id string) (*Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var rec Record
	err := c.getJSON(ctx, c.tableURL(table)+"/"+url.PathEscape(id), &rec)
	if te, ok := IsTransport(err); ok && te.Status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode != http.StatusNotFound {
			c.log.Warn("airtable error", zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		}
		return &TransportError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

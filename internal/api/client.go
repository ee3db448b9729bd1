// Package api is the typed client for the InvoiceHero backend REST API.
//
// Every call is JSON over HTTP against the /api/v1 base path and carries
// a request-correlation id. Non-2xx responses decode into *APIError;
// transport failures come back wrapped. The client holds no state beyond
// its connection settings, so one instance is shared by the whole app.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoicehero/internal/core"
	"invoicehero/internal/log"
)

type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *log.Logger
}

type Option func(*Client)

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithHTTPClient substitutes the underlying http.Client. Tests use this
// to point the client at an httptest server transport.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the logger; the default logs to stderr at info level.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger.WithComponent(log.ComponentAPI) }
}

// New creates a client for the backend at baseURL (including /api/v1).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		logger:  log.New(log.ComponentAPI, slog.LevelInfo),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one request. body is JSON-encoded when non-nil; out is
// JSON-decoded when non-nil and the response has a body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Request failed",
			log.FieldMethod, method,
			log.FieldEndpoint, path,
			log.FieldRequestID, requestID,
			log.FieldError, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Request completed",
		log.FieldMethod, method,
		log.FieldEndpoint, path,
		log.FieldRequestID, requestID,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		// Decode failures leave the generic fallback in place.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func pageParams(q core.OverviewQuery) url.Values {
	limit := q.Limit
	if limit == 0 {
		limit = 10
	}
	page := q.Page
	if page == 0 {
		page = 1
	}
	return url.Values{
		"limit": []string{strconv.Itoa(limit)},
		"page":  []string{strconv.Itoa(page)},
	}
}

// Package client is an HTTP client for the settings REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/me/jsonsettings/internal/logging"
	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

// Client talks to the settings API. Every call is a single attempt; there
// are no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing at DEBUG level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With("component", "client")
	}
}

// New creates a client for the API rooted at baseURL, for example
// http://localhost:8000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns one page of settings.
func (c *Client) List(ctx context.Context, page, limit int) (*model.ListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out model.ListResponse
	if err := c.do(ctx, http.MethodGet, "/settings?"+q.Encode(), nil, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	if out.Data == nil {
		out.Data = []model.Setting{}
	}
	return &out, nil
}

// Get returns a single setting. A missing id yields an error for which
// IsNotFound reports true.
func (c *Client) Get(ctx context.Context, id string) (*model.Setting, error) {
	var out model.Setting
	if err := c.do(ctx, http.MethodGet, "/settings/"+url.PathEscape(id), nil, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("get setting %s: %w", id, err)
	}
	return &out, nil
}

// Create stores a new setting holding data.
func (c *Client) Create(ctx context.Context, data jsonvalue.Value) (*model.Setting, error) {
	var out model.Setting
	in := model.SettingInput{Data: data}
	if err := c.do(ctx, http.MethodPost, "/settings", in, http.StatusCreated, &out); err != nil {
		return nil, fmt.Errorf("create setting: %w", err)
	}
	return &out, nil
}

// Update replaces the data of setting id.
func (c *Client) Update(ctx context.Context, id string, data jsonvalue.Value) (*model.Setting, error) {
	var out model.Setting
	in := model.SettingInput{Data: data}
	if err := c.do(ctx, http.MethodPut, "/settings/"+url.PathEscape(id), in, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("update setting %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes setting id. The API does not report whether it existed.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/settings/"+url.PathEscape(id), nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete setting %s: %w", id, err)
	}
	return nil
}

// do sends one request and decodes the response into out when the status
// matches want. Any other status becomes an *HTTPError.
func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("HTTP request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("HTTP request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
		"request_id", resp.Header.Get("X-Request-ID"),
	)

	if resp.StatusCode != want {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

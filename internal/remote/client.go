// Package remote talks to the two backends the application depends on:
// the deck service and the public card database.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every request
const DefaultTimeout = 30 * time.Second

const userAgent = "deckbuilder/1.0"

// TokenSource supplies the bearer token for authenticated requests
type TokenSource interface {
	Token() string
}

// Client is an HTTP client for one backend
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a client for baseURL. tokens may be nil for backends
// that never need authentication.
func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: httpClient,
	}
}

// Request describes a single call
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Auth   bool
}

// Do performs req and decodes a JSON response into result (if non-nil)
func (c *Client) Do(ctx context.Context, req Request, result any) error {
	raw, err := c.DoRaw(ctx, req)
	if err != nil {
		return err
	}

	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// DoRaw performs req and returns the undecoded response body
func (c *Client) DoRaw(ctx context.Context, req Request) ([]byte, error) {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	if req.Auth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, newError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// LoggingTransport logs every round trip at debug level
type LoggingTransport struct {
	Next   http.RoundTripper
	Logger *slog.Logger
}

// RoundTrip implements http.RoundTripper
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	start := time.Now()
	resp, err := next.RoundTrip(req)
	if err != nil {
		t.Logger.Debug("http request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.Redacted()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	t.Logger.Debug("http request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

// NewHTTPClient returns an http.Client with the default timeout that logs
// through logger
func NewHTTPClient(logger *slog.Logger) *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: &LoggingTransport{Next: http.DefaultTransport, Logger: logger},
	}
}

// Package fetch retrieves component responses from a remote endpoint and
// substitutes the embedded fallback when that fails.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/fallback"
	"github.com/sdui-go/interpreter/internal/payload"
)

// maxPayloadBytes bounds the response body read from the endpoint.
const maxPayloadBytes = 4 << 20

// TransportError is returned when the endpoint cannot be reached.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.Endpoint, e.Status)
}

// Source tells where a loaded response came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Client fetches component responses.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		Endpoint: endpoint,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "fetch")
	return c
}

// Fetch requests and decodes the remote response. Errors are
// *TransportError, *StatusError or *payload.DecodeError.
func (c *Client) Fetch(ctx context.Context) (*descriptor.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: c.Endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: c.Endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Endpoint: c.Endpoint, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, &TransportError{Endpoint: c.Endpoint, Err: err}
	}
	return payload.Decode(body)
}

// Load returns the remote response, or the embedded fallback when the
// fetch fails. The returned error is the swallowed fetch failure, if any;
// the response is never nil.
func (c *Client) Load(ctx context.Context) (*descriptor.Response, Source, error) {
	if c.Endpoint == "" {
		return fallback.Response(), SourceFallback, nil
	}
	resp, err := c.Fetch(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "using fallback payload", "endpoint", c.Endpoint, "error", err)
		return fallback.Response(), SourceFallback, err
	}
	c.logger.DebugContext(ctx, "fetched payload", "endpoint", c.Endpoint, "components", resp.Count())
	return resp, SourceRemote, nil
}

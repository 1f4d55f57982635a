// Package client is the sync layer between the board and the remote
// Crewboard API: a thin HTTP client plus the push-channel subscriber.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxErrorBody = 4 << 10

// Client calls the remote HTTP API. All persistent state lives behind it;
// the client itself is stateless apart from the injected session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	log     zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the client's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// New creates a Client for the API at baseURL, authenticating every
// request with the session's bearer token.
func New(baseURL string, session *Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the injected session.
func (c *Client) Session() *Session {
	return c.session
}

// do performs one JSON round-trip. A nil in sends no body; a nil out
// discards the response body. Failures are classified into the package's
// error taxonomy, and a 401/403 fires the session expiry hook before
// returning.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := sonic.ConfigStd.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: %s %s: encode: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w: %v", method, path, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		if apiErr.AuthFailure() {
			c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("session rejected")
			c.session.expire()
		}
		return fmt.Errorf("client: %s %s: %w", method, path, apiErr)
	}

	if out != nil {
		if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: %s %s: decode: %w", method, path, err)
		}
	}

	return nil
}

// dataResponse is the generic envelope wrapping list and detail payloads.
type dataResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// Package api is the REST client for the task-manager backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource supplies the current bearer token ("" when signed out).
// session.Manager implements it.
type TokenSource interface {
	Token() string
}

// APIError is an application-level failure reported by the backend. Message
// carries the server-provided text when the response body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return "authentication failed"
	case e.StatusCode == http.StatusNotFound:
		return "not found"
	case e.StatusCode == http.StatusConflict:
		return "conflict"
	default:
		return fmt.Sprintf("request failed (HTTP %d)", e.StatusCode)
	}
}

// IsAuthFailure reports a bad-credentials / expired-session failure.
func (e *APIError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }
func (e *APIError) IsConflict() bool { return e.StatusCode == http.StatusConflict }

// Client talks to the backend. All methods take a context; cancellation
// aborts the underlying request.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource sets the bearer token source for authenticated calls.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.tokens = src }
}

// WithLogger sets the request logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// wireError is the backend's error envelope. Both `message` and `error` show
// up in the wild depending on the failing layer.
type wireError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do issues one request. A non-nil out is filled from the response body.
// Non-2xx responses become *APIError; transport problems are returned as-is
// (the caller treats those as network failures).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := strings.TrimSpace(c.tokens.Token()); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("request_id", reqID).Str("method", method).Str("path", path).
			Dur("elapsed", time.Since(start)).Err(err).Msg("request failed")
		return err
	}
	defer resp.Body.Close()

	c.log.Debug().Str("request_id", reqID).Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var we wireError
		if b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil && len(b) > 0 {
			if json.Unmarshal(b, &we) == nil {
				if strings.TrimSpace(we.Message) != "" {
					apiErr.Message = we.Message
				} else if strings.TrimSpace(we.Error) != "" {
					apiErr.Message = we.Error
				}
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		// Mutating calls may return the affected entity or void.
		return nil
	}
	return json.Unmarshal(b, out)
}

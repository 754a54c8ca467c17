// Package api implements the HTTP client for the CertiPro backend. All
// calls are JSON over HTTPS with a bearer token header, except the
// unauthenticated auth endpoints. Status normalization for roles and
// request states happens here, at the network boundary.
package api

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
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/certipro/certipro-cli/internal"
)

// TokenSource yields the current bearer token, or "" when logged out.
// Re-read per request so an external logout takes effect immediately.
type TokenSource func() string

// Client talks to the CertiPro REST backend. Streaming requests run on a
// client without a deadline: a chat response lives as long as the stream.
type Client struct {
	baseURL   string
	http      *http.Client
	streaming *http.Client
	token     TokenSource
	log       zerolog.Logger
}

// NewClient creates a client for the backend at baseURL. tokenSource may be
// nil for a client that only calls the unauthenticated endpoints.
func NewClient(baseURL string, timeout time.Duration, tokenSource TokenSource) *Client {
	if tokenSource == nil {
		tokenSource = func() string { return "" }
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		streaming: &http.Client{},
		token:     tokenSource,
		log:       internal.Logger("api"),
	}
}

// Error is a non-2xx backend response
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 or 403 backend response
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// newRequest builds a JSON request with auth and correlation headers
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request and returns the raw response, mapping non-2xx
// statuses to *Error with the backend's error/message field when present.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	return c.doWith(c.http, req)
}

func (c *Client) doWith(hc *http.Client, req *http.Request) (*http.Response, error) {
	c.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("request")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		apiErr := &Error{StatusCode: resp.StatusCode}

		var body struct {
			ErrorMsg string `json:"error"`
			Message  string `json:"message"`
		}
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			if json.Unmarshal(data, &body) == nil {
				apiErr.Message = body.ErrorMsg
				if apiErr.Message == "" {
					apiErr.Message = body.Message
				}
			}
		}
		return nil, apiErr
	}
	return resp, nil
}

// doJSON executes the request and decodes the response body into out.
// out may be nil when the body is irrelevant.
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the DocChat API client.
const (
	// DefaultBaseURL is the development backend address.
	DefaultBaseURL = "http://localhost:8000"

	// apiPrefix is prepended to every endpoint path.
	apiPrefix = "/api"

	// DefaultTimeout is the transport-default deadline for API requests.
	// No custom per-call deadline logic exists beyond this.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps response bodies to prevent memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// sharedHTTPClient is the pooled transport behind every client instance.
// Connection pooling avoids per-request TCP handshakes.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// TokenSource supplies the current bearer token, or "" when signed out.
// Implemented by the credential store.
type TokenSource interface {
	Token() string
}

// CredentialClearer is implemented by token sources that can wipe their
// stored credential. When the token source supports it, the gateway clears
// the credential on any non-sign-in 401 so every caller, including headless
// commands with no handler registered, lands signed out.
type CredentialClearer interface {
	Clear() error
}

// Client is the single gateway instance for all backend calls.
//
// Construct one per process with NewClient and share it; per-request state
// lives in the request, so the client is safe for concurrent use from
// Bubble Tea command goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource

	// onUnauthorized is invoked when any call other than sign-in receives a
	// 401. Set once during wiring, before any request is issued.
	onUnauthorized func()

	// limiter smooths bursts of requests from command fan-out. Sends are
	// additionally serialized by the chat state machine.
	limiter *rate.Limiter
}

// NewClient creates a gateway client for the given base URL. The /api prefix
// is appended internally; pass the bare host URL from configuration.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
}

// WithHTTPClient overrides the HTTP client, for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// OnUnauthorized registers the handler invoked when an authenticated call
// comes back 401. The handler runs on the calling goroutine after the
// credential source has been given the chance to clear itself.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured backend base URL without the /api prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint builds the absolute URL for a backend path.
func (c *Client) endpoint(path string) string {
	return c.baseURL + apiPrefix + path
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

// requestOpts carries per-request gateway behavior.
type requestOpts struct {
	// signIn marks the sign-in call itself: a 401 must propagate untouched
	// so the form can show a credential error instead of redirect-looping.
	signIn bool
}

// do executes a request: waits on the limiter, attaches the bearer token,
// runs the request, and funnels the response through envelope decoding with
// centralized 401 interception.
func (c *Client) do(ctx context.Context, req *http.Request, out any, opts requestOpts) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return c.handleUnauthorized(body, opts)
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !env.Success {
		status := resp.StatusCode
		if status == http.StatusOK {
			status = 0
		}
		return &APIError{Status: status, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// handleUnauthorized implements the central 401 policy: for the sign-in call
// the error propagates untouched; for everything else the stale credential is
// cleared and the registered handler is notified so the UI can swap to the
// sign-in screen.
func (c *Client) handleUnauthorized(body []byte, opts requestOpts) error {
	var env Envelope
	msg := "authentication required"
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		msg = env.Message
	}

	if opts.signIn {
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	}

	if clearer, ok := c.tokens.(CredentialClearer); ok {
		if err := clearer.Clear(); err != nil {
			log.Printf("failed to clear credentials after 401: %v", err)
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// =============================================================================
// REQUEST BUILDERS
// =============================================================================

// getJSON issues a GET and decodes the envelope data into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpoint(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req, out, requestOpts{})
}

// postJSON issues a POST with a JSON body and decodes the envelope data.
func (c *Client) postJSON(ctx context.Context, path string, in, out any, opts requestOpts) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req, out, opts)
}

// =============================================================================
// REQUEST LOGGING
// =============================================================================

// logRequest logs method and path only. Headers carry the bearer token and
// bodies carry user content; neither is ever logged.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("api request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status and duration only.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("api response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

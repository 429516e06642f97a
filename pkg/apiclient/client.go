package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client is the single point through which every outbound call to the
// platform API passes. Cross-cutting behavior (bearer credentials, request
// IDs, unauthorized teardown, logging, rate limiting) is implemented as
// ordered request and response hooks rather than hidden transport wrappers,
// so tests can register and remove stages deterministically.
//
// Zero value is not usable; use New to create instances.
type Client struct {
	baseURL *url.URL
	// client is reused across requests for connection pooling and performance
	client  *http.Client
	timeout time.Duration
	metrics *Collector

	mu        sync.RWMutex
	reqHooks  []RequestHook
	respHooks []ResponseHook
}

// New creates a client for the API at baseURL. Options configure timeout,
// transport and pipeline hooks.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	// Restrict to HTTP/HTTPS so a malformed environment value fails fast
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}

	c := &Client{
		baseURL: u,
		timeout: 10 * time.Second, // Per-request timeout, overridden by WithTimeout
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// UseRequest appends a hook that runs before every request is sent.
// Hooks run in registration order; a hook returning an error aborts the call.
func (c *Client) UseRequest(h RequestHook) {
	if h == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reqHooks = append(c.reqHooks, h)
}

// UseResponse appends a hook that runs after every response is received,
// before the body is consumed. Hooks must not read the response body.
func (c *Client) UseResponse(h ResponseHook) {
	if h == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.respHooks = append(c.respHooks, h)
}

// Get issues a GET request. Query may be nil. A non-nil out receives the
// decoded JSON response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// Post issues a POST request with a JSON-encoded body. Either in or out may
// be nil.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, body, "application/json", out)
}

// Put issues a PUT request with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, body, "application/json", out)
}

// Delete issues a DELETE request. The platform answers deletes with
// 204 No Content, so there is no body to decode.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

// PostForm issues a POST request with a form-urlencoded body. The token
// endpoint is the only part of the API that is not JSON-in.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, nil, body, "application/x-www-form-urlencoded", out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	// Layer the fixed request timeout on top of the parent context so both
	// constraints are respected.
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sportline-go/1.0")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for _, hook := range c.requestHooks() {
		if err := hook(req); err != nil {
			return fmt.Errorf("request hook: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		if c.metrics != nil {
			c.metrics.recordFailure(method, duration)
		}
		// The per-request deadline firing while the caller's context is
		// still live means the fixed timeout was exceeded.
		if reqCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.metrics != nil {
		c.metrics.recordResult(method, resp.StatusCode, duration)
	}

	// Response hooks see every response, success or failure, before the
	// body is consumed. The unauthorized teardown lives here.
	for _, hook := range c.responseHooks() {
		hook(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return nil
}

// requestHooks returns a snapshot of the registered request hooks so
// in-flight requests are not affected by concurrent registration.
func (c *Client) requestHooks() []RequestHook {
	c.mu.RLock()
	defer c.mu.RUnlock()
	hooks := make([]RequestHook, len(c.reqHooks))
	copy(hooks, c.reqHooks)
	return hooks
}

func (c *Client) responseHooks() []ResponseHook {
	c.mu.RLock()
	defer c.mu.RUnlock()
	hooks := make([]ResponseHook, len(c.respHooks))
	copy(hooks, c.respHooks)
	return hooks
}

func encodeJSON(in any) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewReader(payload), nil
}

// decodeError converts a non-2xx response into an *APIError, preferring the
// server's detail message when the body carries one.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	// 64KB limit prevents memory exhaustion on unexpected bodies
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
	}

	return apiErr
}

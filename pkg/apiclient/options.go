package apiclient

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithTimeout sets the fixed per-request timeout.
// Default is 10 seconds if not specified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
// Useful for custom transports, proxies, or testing.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithRequestHook registers a hook run before every request is sent.
func WithRequestHook(h RequestHook) Option {
	return func(c *Client) {
		c.UseRequest(h)
	}
}

// WithResponseHook registers a hook run after every response is received.
func WithResponseHook(h ResponseHook) Option {
	return func(c *Client) {
		c.UseResponse(h)
	}
}

// WithRateLimiter throttles outgoing requests with the given limiter.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.UseRequest(RateLimit(l))
		}
	}
}

// WithMetrics records request counts, statuses and latency on the collector.
func WithMetrics(collector *Collector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

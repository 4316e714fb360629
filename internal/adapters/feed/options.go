// Package feed fetches league injury reports from an ESPN-style feed.
package feed

import (
	"net/http"
	"time"

	"github.com/hooplens/eloedge/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the feed base URL (no trailing slash).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout bounds each fetch when no custom http.Client is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient supplies a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithStatusWeights replaces the status -> weight table. Weights outside
// [0,1] are ignored.
func WithStatusWeights(weights map[string]float64) Option {
	return func(c *Client) {
		table := make(map[string]float64, len(weights))
		for status, w := range weights {
			if w < 0 || w > 1 {
				continue
			}
			table[status] = w
		}
		if len(table) > 0 {
			c.weights = table
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// Package feed fetches league injury reports from an ESPN-style feed and
// normalizes them into domain records.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hooplens/eloedge/internal/domain/model"
	"github.com/hooplens/eloedge/pkg/logger"
	"github.com/hooplens/eloedge/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"
	defaultTimeout = 10 * time.Second
	userAgent      = "eloedge/1.0"
)

// Client fetches injury data over HTTP. All failures come back as wrapped
// ErrFetch/ErrDecode values; the client never panics on bad upstream data.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	weights    map[string]float64
	teams      *TeamMapper
	logger     logger.Logger
}

// New creates a feed client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
		weights: DefaultStatusWeights(),
		teams:   NewTeamMapper(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("feed")
	}

	return c
}

// leaguePayload mirrors the upstream /injuries response shape.
type leaguePayload struct {
	Injuries []teamPayload `json:"injuries"`
}

type teamPayload struct {
	DisplayName string         `json:"displayName"`
	Injuries    []entryPayload `json:"injuries"`
}

type entryPayload struct {
	Status  string `json:"status"`
	Date    string `json:"date"`
	Athlete struct {
		ID          json.Number `json:"id"`
		DisplayName string      `json:"displayName"`
	} `json:"athlete"`
	Details struct {
		Type string `json:"type"`
	} `json:"details"`
}

// FetchLeague fetches the league-wide injury report and returns one
// normalized report per mappable team. The call is bounded by ctx; callers
// decide the timeout.
func (c *Client) FetchLeague(ctx context.Context) (map[model.TeamID]model.TeamInjuryReport, error) {
	metrics.RecordFeedFetch()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/injuries", nil)
	if err != nil {
		metrics.RecordFeedFetchError()
		return nil, fmt.Errorf("%w: build request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordFeedFetchError()
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordFeedFetchLatency(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		metrics.RecordFeedFetchError()
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	var payload leaguePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.RecordFeedFetchError()
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return c.normalize(ctx, payload), nil
}

// Package catalog talks to the Roblox game-catalog API: resolving a
// place ID to its universe and fetching aggregate game statistics. Both
// lookups are best-effort; callers degrade gracefully when they fail.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultUniversesBaseURL = "https://apis.roblox.com"
	defaultGamesBaseURL     = "https://games.roblox.com"

	// requestTimeout bounds each outbound call so a hanging upstream
	// cannot stall a public listing request.
	requestTimeout = 5 * time.Second
)

// ErrNotFound is returned when the catalog has no data for the
// requested place or universe.
var ErrNotFound = errors.New("catalog: no data for id")

// GameStats are the aggregate statistics for one universe.
type GameStats struct {
	RootPlaceID json.Number `json:"rootPlaceId"`
	Name        string      `json:"name"`
	Visits      int64       `json:"visits"`
	Playing     int64       `json:"playing"`
	Likes       int64       `json:"favoritedCount"`
	MaxPlayers  int         `json:"maxPlayers"`
	Created     string      `json:"created"`
	Updated     string      `json:"updated"`
}

// Client is a read-only catalog API client.
type Client struct {
	httpClient   *http.Client
	universesURL string
	gamesURL     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURLs overrides the API endpoints; used by tests.
func WithBaseURLs(universesURL, gamesURL string) Option {
	return func(c *Client) {
		c.universesURL = universesURL
		c.gamesURL = gamesURL
	}
}

// NewClient creates a catalog client with a per-request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: requestTimeout},
		universesURL: defaultUniversesBaseURL,
		gamesURL:     defaultGamesBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveUniverse looks up the universe ID for a place ID.
func (c *Client) ResolveUniverse(ctx context.Context, placeID string) (string, error) {
	u := fmt.Sprintf("%s/universes/v1/places/%s/universe", c.universesURL, url.PathEscape(placeID))

	var body struct {
		UniverseID json.Number `json:"universeId"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return "", err
	}
	if body.UniverseID.String() == "" {
		return "", ErrNotFound
	}
	return body.UniverseID.String(), nil
}

// Stats fetches aggregate statistics for a universe ID.
func (c *Client) Stats(ctx context.Context, universeID string) (*GameStats, error) {
	u := fmt.Sprintf("%s/v1/games?universeIds=%s", c.gamesURL, url.QueryEscape(universeID))

	var body struct {
		Data []GameStats `json:"data"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, ErrNotFound
	}
	return &body.Data[0], nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

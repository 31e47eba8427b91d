package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rafaelduarte/gamesetup-backend/pkg/config"
	pkgerrors "github.com/rafaelduarte/gamesetup-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://api.rawg.io/api"
	searchPageSize             = 12
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

// Client wraps the RAWG video-game catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured RAWG base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the RAWG client. An empty API key is allowed; requests then
// go out unauthenticated and the upstream rejection surfaces as a dependency
// error.
func NewClient(cfg config.RAWGConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}

	client := &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	if trimmed := strings.TrimSpace(cfg.BaseURL); trimmed != "" {
		client.baseURL = trimmed
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// Requirements carries the per-platform requirement hints; either field may be
// absent upstream.
type Requirements struct {
	Minimum     string `json:"minimum,omitempty"`
	Recommended string `json:"recommended,omitempty"`
}

// GamePlatform is one platform entry attached to a game.
type GamePlatform struct {
	Platform struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"platform"`
	Requirements Requirements `json:"requirements"`
}

// GameSummary is one search result row.
type GameSummary struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Released        string         `json:"released,omitempty"`
	BackgroundImage string         `json:"background_image,omitempty"`
	Platforms       []GamePlatform `json:"platforms,omitempty"`
}

// Game is the full detail payload for a single title.
type Game struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description_raw,omitempty"`
	Released        string         `json:"released,omitempty"`
	BackgroundImage string         `json:"background_image,omitempty"`
	Platforms       []GamePlatform `json:"platforms,omitempty"`
}

// Search queries the catalog and returns up to 12 matching summaries.
func (c *Client) Search(ctx context.Context, query string) ([]GameSummary, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rawg client not configured")
	}
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}

	params := url.Values{}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	params.Set("search", query)
	params.Set("page_size", fmt.Sprint(searchPageSize))

	endpoint := fmt.Sprintf("%s/games?%s", strings.TrimRight(c.baseURL, "/"), params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build search request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute search request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError(resp, "search request failed")
	}

	var apiResp struct {
		Results []GameSummary `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode search response")
	}

	results := apiResp.Results
	if len(results) > searchPageSize {
		results = results[:searchPageSize]
	}
	return results, nil
}

// GetGame fetches the full metadata for a single game. Missing optional fields
// (description, image, requirement text) decode to zero values, never errors.
func (c *Client) GetGame(ctx context.Context, gameID string) (*Game, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rawg client not configured")
	}
	trimmed := strings.TrimSpace(gameID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id is required")
	}

	endpoint := fmt.Sprintf("%s/games/%s", strings.TrimRight(c.baseURL, "/"), url.PathEscape(trimmed))
	if c.apiKey != "" {
		params := url.Values{}
		params.Set("key", c.apiKey)
		endpoint += "?" + params.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build game request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute game request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError(resp, "game request failed")
	}

	var game Game
	if err := json.NewDecoder(resp.Body).Decode(&game); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode game response")
	}
	return &game, nil
}

func upstreamError(resp *http.Response, message string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, message)
}

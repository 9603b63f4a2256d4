// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/job-hunter/internal/httputil"
	"github.com/pdiddy/job-hunter/pkg/types"
)

// serpAPIBase is the SerpAPI search endpoint. Declared as a var so tests
// can substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search"

const (
	maxResultsPerQuery = 100
	defaultCountry     = "us"
	defaultLanguage    = "en"
	defaultRate        = 5.0
	defaultRetries     = 2
)

// SerpClient queries SerpAPI. Construct it with NewSerpClient so the
// request pacer is set up.
type SerpClient struct {
	Client *http.Client
	Config types.SerpConfig

	pacer *httputil.Pacer
}

// NewSerpClient returns a client for cfg. Zero-valued settings take the
// package defaults.
func NewSerpClient(client *http.Client, cfg types.SerpConfig) *SerpClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Country == "" {
		cfg.Country = defaultCountry
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = defaultRate
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultRetries
	}
	return &SerpClient{
		Client: client,
		Config: cfg,
		pacer:  httputil.NewPacer(cfg.RequestsPerSecond, 1),
	}
}

// Name returns the client identifier.
func (c *SerpClient) Name() string { return "serpapi" }

// Search sends one query and returns up to count raw records. Every
// failure wraps ErrSearchUnavailable.
func (c *SerpClient) Search(ctx context.Context, r Request, count int) ([]types.RawResult, error) {
	if c.Config.APIKey == "" {
		return nil, fmt.Errorf("%w: SerpAPI key is not configured", ErrSearchUnavailable)
	}
	if strings.TrimSpace(r.Query) == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrSearchUnavailable)
	}
	if r.Engine == "" {
		r.Engine = EngineWeb
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpAPIBase+"?"+c.params(r, count).Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrSearchUnavailable, err)
	}
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, c.Config.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("%w: SerpAPI request: %v", ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: SerpAPI returned HTTP %d: %s",
			ErrSearchUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: parsing SerpAPI response: %v", ErrSearchUnavailable, err)
	}

	if sr.Error != "" {
		// An empty result set is reported through the error field.
		if strings.Contains(sr.Error, "hasn't returned any results") {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: SerpAPI: %s", ErrSearchUnavailable, sr.Error)
	}

	results := sr.OrganicResults
	if r.Engine == EngineJobs {
		results = sr.JobsResults
	}
	if count > 0 && len(results) > count {
		results = results[:count]
	}
	return results, nil
}

func (c *SerpClient) params(r Request, count int) url.Values {
	if count <= 0 {
		count = 10
	}
	if count > maxResultsPerQuery {
		count = maxResultsPerQuery
	}

	params := url.Values{
		"engine":  {string(r.Engine)},
		"q":       {r.Query},
		"api_key": {c.Config.APIKey},
		"hl":      {c.Config.Language},
		"num":     {strconv.Itoa(count)},
	}
	if r.Location != "" {
		params.Set("location", r.Location)
	}
	// The jobs vertical derives the country from location.
	if r.Engine == EngineWeb {
		params.Set("gl", c.Config.Country)
	}
	return params
}

// SerpAPI JSON structures. Result records stay untyped so the normalizer
// can handle both verticals.
type serpResponse struct {
	SearchMetadata serpMetadata      `json:"search_metadata"`
	Error          string            `json:"error"`
	JobsResults    []types.RawResult `json:"jobs_results"`
	OrganicResults []types.RawResult `json:"organic_results"`
}

type serpMetadata struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

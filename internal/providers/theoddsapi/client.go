package theoddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"team-schedule-service/internal/domain/odds"
	"team-schedule-service/internal/metrics"
	"team-schedule-service/internal/providers"
)

const (
	providerName       = "theoddsapi"
	defaultBaseURL     = "https://api.the-odds-api.com/v4/sports"
	defaultRegions     = "us"
	defaultMarkets     = "spreads,totals"
	defaultHTTPTimeout = 10 * time.Second

	headerRequestsRemaining = "x-requests-remaining"
	headerRequestsUsed      = "x-requests-used"
)

// Config controls how the odds client reaches The Odds API.
type Config struct {
	BaseURL    string
	APIKey     string
	Regions    string
	HTTPClient *http.Client
	Recorder   *metrics.Recorder
}

// Client fetches betting lines from The Odds API. Each call covers one
// odds league; the API meters by monthly quota and reports the balance
// in response headers.
type Client struct {
	baseURL    string
	apiKey     string
	regions    string
	httpClient httpDoer
	recorder   *metrics.Recorder
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient constructs an odds client with the provided configuration.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	regions := cfg.Regions
	if regions == "" {
		regions = defaultRegions
	}
	httpClient := httpDoer(cfg.HTTPClient)
	if cfg.HTTPClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
		regions:    regions,
		httpClient: httpClient,
		recorder:   cfg.Recorder,
	}
}

// FetchOdds retrieves spread and total lines for one odds league.
func (c *Client) FetchOdds(ctx context.Context, oddsKey string) ([]odds.RawGame, error) {
	if c.apiKey == "" {
		return nil, providers.ErrProviderUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/odds", c.baseURL, oddsKey), nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("regions", c.regions)
	q.Set("markets", defaultMarkets)
	q.Set("oddsFormat", "american")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.observeQuota(resp.Header)

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, rateLimitError(resp)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("theoddsapi: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload []oddsResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return nil, decodeErr
	}

	return mapGames(payload), nil
}

func (c *Client) observeQuota(headers http.Header) {
	if c.recorder == nil {
		return
	}
	if remaining := headers.Get(headerRequestsRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.recorder.RecordQuotaRemaining(providerName, val)
		}
	}
}

func rateLimitError(resp *http.Response) error {
	rlErr := &providers.RateLimitError{
		Provider:   providerName,
		StatusCode: resp.StatusCode,
		Remaining:  resp.Header.Get(headerRequestsRemaining),
		Message:    "odds api quota exhausted",
	}
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil {
			rlErr.RetryAfter = time.Duration(secs) * time.Second
		}
	}
	return rlErr
}

func mapGames(payload []oddsResponse) []odds.RawGame {
	games := make([]odds.RawGame, 0, len(payload))
	for _, g := range payload {
		commence, err := time.Parse(time.RFC3339, g.CommenceTime)
		if err != nil {
			continue
		}
		games = append(games, odds.RawGame{
			HomeTeam:     g.HomeTeam,
			AwayTeam:     g.AwayTeam,
			CommenceTime: commence.UTC(),
			Bookmakers:   mapBookmakers(g.Bookmakers),
		})
	}
	return games
}

func mapBookmakers(books []bookmaker) []odds.RawBookmaker {
	mapped := make([]odds.RawBookmaker, 0, len(books))
	for _, b := range books {
		mapped = append(mapped, odds.RawBookmaker{
			Title:   b.Title,
			Markets: mapMarkets(b.Markets),
		})
	}
	return mapped
}

func mapMarkets(markets []market) []odds.RawMarket {
	mapped := make([]odds.RawMarket, 0, len(markets))
	for _, m := range markets {
		outcomes := make([]odds.RawOutcome, 0, len(m.Outcomes))
		for _, o := range m.Outcomes {
			outcomes = append(outcomes, odds.RawOutcome{
				Name:  o.Name,
				Price: o.Price,
				Point: o.Point,
			})
		}
		mapped = append(mapped, odds.RawMarket{
			Key:      m.Key,
			Outcomes: outcomes,
		})
	}
	return mapped
}

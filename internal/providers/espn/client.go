package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"team-schedule-service/internal/config"
	"team-schedule-service/internal/domain/events"
)

// Config controls how the ESPN client reaches the upstream site API.
type Config struct {
	BaseURL    string
	TeamID     string
	HTTPClient *http.Client
}

// Client fetches team schedules from the ESPN site API and maps them to
// canonical events.
type Client struct {
	baseURL    string
	teamID     string
	httpClient httpDoer
}

// NewClient constructs an ESPN schedule client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		teamID:     cfg.TeamID,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchSchedule retrieves the tracked team's schedule for one sport.
func (c *Client) FetchSchedule(ctx context.Context, sport config.Sport) ([]events.Event, error) {
	url := fmt.Sprintf("%s/%s/teams/%s/schedule", c.baseURL, sport.SchedulePath, c.teamID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("espn: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload scheduleResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return nil, decodeErr
	}

	return mapSchedule(payload, sport.Key, c.teamID), nil
}

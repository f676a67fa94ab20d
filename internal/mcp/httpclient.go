package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/traincoach/internal/coach"
	"github.com/claude/traincoach/internal/engine"
	"github.com/claude/traincoach/internal/goals"
	"github.com/claude/traincoach/internal/models"
)

// HTTPClient implements DataSource by calling the TrainCoach REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but data
// lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, params)
}

// The REST API resolves the user from the transport identity; the userID
// parameter is ignored on every method below.

func (c *HTTPClient) TodayContext(ctx context.Context, _ int, coachType models.Discipline) (*engine.TodayContext, error) {
	params := url.Values{}
	params.Set("coach", string(coachType))

	body, err := c.get(ctx, "/api/v1/context/today", params)
	if err != nil {
		return nil, err
	}

	var tc engine.TodayContext
	if err := json.Unmarshal(body, &tc); err != nil {
		return nil, fmt.Errorf("httpclient: decode today context: %w", err)
	}
	return &tc, nil
}

func (c *HTTPClient) VolumeSummary(ctx context.Context, _ int, coachType models.Discipline, days int) (*coach.VolumeSummary, error) {
	params := url.Values{}
	params.Set("coach", string(coachType))
	params.Set("days", strconv.Itoa(days))

	body, err := c.get(ctx, "/api/v1/volume/summary", params)
	if err != nil {
		return nil, err
	}

	var summary coach.VolumeSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("httpclient: decode volume summary: %w", err)
	}
	return &summary, nil
}

func (c *HTTPClient) GoalsProgress(ctx context.Context, _ int) ([]goals.Progress, error) {
	body, err := c.get(ctx, "/api/v1/goals", nil)
	if err != nil {
		return nil, err
	}

	var progress []goals.Progress
	if err := json.Unmarshal(body, &progress); err != nil {
		return nil, fmt.Errorf("httpclient: decode goals progress: %w", err)
	}
	return progress, nil
}

func (c *HTTPClient) RecalculateAllGoals(ctx context.Context, _ int) ([]goals.SyncResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/goals/recalculate", nil)
	if err != nil {
		return nil, err
	}

	var results []goals.SyncResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("httpclient: decode recalculation results: %w", err)
	}
	return results, nil
}

func (c *HTTPClient) SuggestGoals(ctx context.Context, _ int, days int) ([]models.TrainingGoal, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(days))

	body, err := c.get(ctx, "/api/v1/goals/suggestions", params)
	if err != nil {
		return nil, err
	}

	var suggestions []models.TrainingGoal
	if err := json.Unmarshal(body, &suggestions); err != nil {
		return nil, fmt.Errorf("httpclient: decode goal suggestions: %w", err)
	}
	return suggestions, nil
}

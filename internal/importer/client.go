package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/traincoach/internal/models"
)

// ingestResult mirrors the server's ingest response without importing the
// server package (which would pull in pgx and other server-side dependencies).
type ingestResult struct {
	Received   int `json:"received"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
}

// Client sends export data to the TrainCoach server over HTTP. It satisfies
// Sink, so the importer works identically in server mode and direct DB mode.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

var _ Sink = (*Client)(nil)

// NewClient creates an HTTP client for the TrainCoach ingest API.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) IngestActivities(ctx context.Context, activities []models.ExportActivity) (int, int, error) {
	return c.send(ctx, "/api/v1/ingest/activities", models.ExportData{Activities: activities})
}

func (c *Client) IngestSessions(ctx context.Context, sessions []models.ExportSession) (int, int, error) {
	return c.send(ctx, "/api/v1/ingest/sessions", models.ExportData{Sessions: sessions})
}

// send POSTs an export payload to the given ingest endpoint.
// Retries up to 3 times with exponential backoff on failure.
func (c *Client) send(ctx context.Context, path string, payload models.ExportData) (int, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, 0, fmt.Errorf("marshaling payload: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+path, bytes.NewReader(data))
		if err != nil {
			return 0, 0, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			var result ingestResult
			if err := json.Unmarshal(body, &result); err != nil {
				return 0, 0, fmt.Errorf("decoding ingest response: %w", err)
			}
			return result.Inserted, result.Duplicates, nil
		}
		lastErr = fmt.Errorf("ingest failed (status %d): %s", resp.StatusCode, body)
	}

	return 0, 0, fmt.Errorf("after 3 attempts: %w", lastErr)
}

// RecalculateGoals asks the server to replay the activity log for every
// active goal.
func (c *Client) RecalculateGoals(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/v1/goals/recalculate", nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("recalculating goals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("recalculation failed (status %d): %s", resp.StatusCode, body)
	}

	var results []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, fmt.Errorf("decoding recalculation response: %w", err)
	}
	return len(results), nil
}

package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studybot/types"
)

// StudyClient is a thin HTTP client for the studybot API
type StudyClient struct {
	baseURL string
	client  *http.Client
}

// NewStudyClient creates a new API client. Summaries can take a while, so the
// timeout is generous.
func NewStudyClient(baseURL string) *StudyClient {
	return &StudyClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 3 * time.Minute,
		},
	}
}

// Health checks that the server is up
func (c *StudyClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Summarize posts link to /link/ and returns the model response
func (c *StudyClient) Summarize(ctx context.Context, link string) (string, error) {
	payload, err := json.Marshal(types.LinkRequest{Link: link})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/link/", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr types.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Detail == "" {
			return "", fmt.Errorf("server returned %d", resp.StatusCode)
		}
		return "", fmt.Errorf("%s (%s)", apiErr.Detail, apiErr.Code)
	}

	var out types.LinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Response, nil
}

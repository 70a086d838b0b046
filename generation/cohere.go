package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereConfig configures the Cohere generator.
type CohereConfig struct {
	APIKey     string
	Model      string
	HTTPClient *http.Client
	// BaseURL overrides the API host (used by tests).
	BaseURL string
}

// Cohere generates text with the Cohere Chat API.
// Docs: https://docs.cohere.com/reference/chat
type Cohere struct {
	client *cohereclient.Client
	model  string
}

// NewCohere creates a Cohere generator.
func NewCohere(cfg CohereConfig) *Cohere {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	if cfg.BaseURL != "" {
		return &Cohere{
			client: cohereclient.NewClient(
				cohereclient.WithToken(cfg.APIKey),
				cohereclient.WithHTTPClient(httpClient),
				cohereclient.WithBaseURL(cfg.BaseURL),
			),
			model: cfg.Model,
		}
	}
	return &Cohere{
		client: cohereclient.NewClient(
			cohereclient.WithToken(cfg.APIKey),
			cohereclient.WithHTTPClient(httpClient),
		),
		model: cfg.Model,
	}
}

func (c *Cohere) Model() string { return c.model }

func (c *Cohere) Close() error { return nil }

// Generate sends prompt as a single chat message with no history.
func (c *Cohere) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.model
	resp, err := c.client.Chat(
		ctx,
		&cohere.ChatRequest{
			Message: prompt,
			Model:   &model,
		},
	)
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	return cohereText(resp)
}

func cohereText(resp *cohere.NonStreamedChatResponse) (string, error) {
	if resp == nil {
		return "", errors.New("cohere chat returned empty response")
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", errors.New("cohere chat returned no text")
	}
	return resp.Text, nil
}

// Package generation wraps the generative-AI providers behind a single
// prompt-in, text-out interface.
package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"studybot/config"
)

// Generator produces the model's raw response text for a prompt.
// Implementations are safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
	Close() error
}

// Config selects and configures a provider.
type Config struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	CohereAPIKey string
	CohereModel  string
	// HTTPClient is used by providers that accept one (Cohere).
	HTTPClient *http.Client
}

// New returns the generator for cfg.Provider. An empty provider means Gemini.
func New(ctx context.Context, cfg Config) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", config.ProviderGemini:
		model := cfg.GeminiModel
		if model == "" {
			model = config.DefaultGeminiModel
		}
		return NewGemini(ctx, cfg.GeminiAPIKey, model)
	case config.ProviderCohere:
		model := cfg.CohereModel
		if model == "" {
			model = config.DefaultCohereModel
		}
		return NewCohere(CohereConfig{APIKey: cfg.CohereAPIKey, Model: model, HTTPClient: cfg.HTTPClient}), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}

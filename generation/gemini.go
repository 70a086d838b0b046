package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// contentGenerator is the part of *genai.GenerativeModel used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// errNoAPIKey is returned by Generate when no Gemini key was configured.
var errNoAPIKey = errors.New("GENAI_API_KEY is not set")

// Gemini generates text with the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  contentGenerator
	name   string
}

// NewGemini creates a Gemini generator for the given model, e.g. "gemini-2.0-flash".
// An empty key is accepted so the service still starts; every Generate call then
// fails. A wrong key fails on the first call.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return &Gemini{name: model}, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, model: client.GenerativeModel(model), name: model}, nil
}

func (g *Gemini) Model() string { return g.name }

// Generate sends prompt as a single user turn and returns the response text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.model == nil {
		return "", fmt.Errorf("gemini %s: %w", g.name, errNoAPIKey)
	}
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.name, err)
	}
	return geminiText(resp)
}

func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// geminiText concatenates the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini returned empty response")
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil {
			return "", fmt.Errorf("gemini blocked prompt: %v", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini returned no candidates")
	}

	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("gemini candidate has no content (finish reason %v)", cand.FinishReason)
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("gemini returned no text")
	}
	return b.String(), nil
}

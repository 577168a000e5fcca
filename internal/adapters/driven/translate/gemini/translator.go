// Package gemini adapts Google's Gemini API to the translator port.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/bloglab/notion-sync/internal/core/domain"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
)

// Ensure Translator implements the interface.
var _ driven.Translator = (*Translator)(nil)

const (
	// DefaultModel balances quality and cost for long-form translation.
	DefaultModel = "gemini-2.5-flash"

	// temperature is kept low so translations stay faithful to the
	// source rather than creative.
	temperature float32 = 0.3
)

// Config holds the Gemini credentials and model choice.
type Config struct {
	APIKey string

	// Model defaults to DefaultModel.
	Model string
}

// Translator generates text through the Gemini API.
type Translator struct {
	client *genai.Client
	model  string
}

// New creates a Gemini translator.
func New(ctx context.Context, cfg Config) (*Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key: %w", domain.ErrMissingConfig)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Translator{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Generate produces a completion for the prompt.
func (t *Translator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate content: empty response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

// ModelName returns the model identifier recorded alongside
// translations.
func (t *Translator) ModelName() string {
	return t.model
}

// Close releases client resources. The current client holds no
// connections that need explicit shutdown.
func (t *Translator) Close() error {
	return nil
}

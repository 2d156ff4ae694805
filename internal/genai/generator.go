// Package genai provides the text-generation capability behind the answer
// pipeline. Two implementations exist: a live HTTP client against an
// OpenAI-compatible chat-completions API, and an offline mock used when no
// API credential is configured.
package genai

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/helpdesk/internal"
)

// TextGenerator produces a completion for a prompt. Implementations must
// respect the context deadline and return an error on upstream failure
// without retrying.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// MockAnswer is the canned completion returned in offline mode.
const MockAnswer = "Mock AI response: Please contact your support team for assistance."

// MockGenerator is the offline generator. It never performs network access.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (g *MockGenerator) Generate(_ context.Context, _ string, _ float64) (string, error) {
	return MockAnswer, nil
}

// NewGeneratorFromConfig selects the generator at process startup: a live
// client when an API key is configured, the mock otherwise.
func NewGeneratorFromConfig(cfg internal.AssistantConfig, logger *slog.Logger) TextGenerator {
	if cfg.MockMode() {
		logger.Info("assistant running in offline mock mode, no generator credential configured")
		return NewMockGenerator()
	}
	return NewClient(Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}, logger)
}

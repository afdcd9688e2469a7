// Package llm builds the text-completion client used for journal replies.
package llm

import (
	"context"
	"errors"
	"fmt"

	"mindful_server/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrNoAPIKey is returned when the provider has no credentials configured.
var ErrNoAPIKey = errors.New("ai api key is not configured")

// New returns the model for cfg.Provider: "googleai" (Gemini) or "openai",
// which also covers OpenAI-compatible endpoints through BaseURL.
func New(ctx context.Context, cfg *config.AIConfig) (llms.Model, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	switch cfg.Provider {
	case "googleai", "":
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create googleai client: %w", err)
		}
		return model, nil
	case "openai":
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

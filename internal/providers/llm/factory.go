package llm

import (
	"context"
	"fmt"

	"github.com/merrysway/baristabot/internal/config"
	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/pkg/log"
)

// NewProvider creates the appropriate Completer based on configuration.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.Completer, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "openai":
		c := config.NewOpenAIConfig(ctx)
		return NewOpenAI(c.APIKey, c.Model), nil
	case "openrouter":
		c := config.NewOpenRouterConfig(ctx)
		return NewOpenRouter(c.APIKey, c.Model), nil
	case "ollama":
		c := config.NewOllamaConfig(ctx)
		return NewOllama(c.BaseURL, c.APIKey, c.Model), nil
	case "custom":
		c := config.NewCustomLLMConfig(ctx)
		return NewCustomOpenAI(c.BaseURL, c.APIKey, c.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}

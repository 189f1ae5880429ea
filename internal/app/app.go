// Package app wires configuration into the generation pipeline shared by
// the HTTP and MCP entrypoints.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"storefront_ai_server/config"
	"storefront_ai_server/internal/ai"
	"storefront_ai_server/internal/catalog"
	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/reference"
	"storefront_ai_server/internal/render"
)

// NewGenerator builds the provider registry and the generation pipeline
// from cfg.
func NewGenerator(ctx context.Context, cfg config.Config, log *slog.Logger) (*ai.Generator, error) {
	registry := llm.NewRegistry(ctx, llm.Settings{
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		GeminiModel:     cfg.GeminiModel,
		GroqAPIKey:      cfg.GroqAPIKey,
		GroqModel:       cfg.GroqModel,
		Timeout:         cfg.ProviderTimeout,
	})

	cache, err := render.NewCache(cfg.RenderCacheSize)
	if err != nil {
		return nil, fmt.Errorf("render cache: %w", err)
	}
	sections, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("section catalog: %w", err)
	}

	opts := []ai.Option{
		ai.WithProvider(cfg.AIProvider),
		ai.WithRenderCache(cache),
		ai.WithCatalog(sections),
		ai.WithBudgets(ai.Budgets{
			Generate: cfg.GenerateMaxAttempts,
			Variant:  cfg.VariantMaxAttempts,
			Insert:   cfg.InsertMaxAttempts,
		}),
		ai.WithRetryDelay(cfg.RetryDelay),
		ai.WithLogger(log),
	}
	if cfg.ReferenceFetchEnabled {
		opts = append(opts, ai.WithReference(reference.NewHTTPFetcher(cfg.ReferenceFetchTimeout)))
	}
	return ai.NewGenerator(registry, opts...), nil
}

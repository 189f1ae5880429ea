package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"storefront_ai_server/internal/ai/prompts"
	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/types"
)

// VariantStyle is one entry of the fixed variant fan-out.
type VariantStyle struct {
	Preset      page.Preset `json:"preset"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
}

var VariantStyles = []VariantStyle{
	{page.Minimalist, "Minimalist", "Clean, airy, whitespace-focused"},
	{page.Bold, "Bold", "High contrast, strong typography"},
	{page.Luxury, "Luxury", "Dark, premium, gold accents"},
}

type VariantRequest struct {
	Prompt       string
	PageType     page.PageType
	ReferenceURL string
}

// Variant is one successful rendering of the request in a fixed style.
type Variant struct {
	VariantStyle
	Result
}

// GenerateVariants generates the request once per VariantStyles entry, all
// concurrently. A failed variant does not cancel its siblings and is left
// out of the result; the call fails only when no variant succeeds.
func (g *Generator) GenerateVariants(ctx context.Context, req VariantRequest) ([]Variant, error) {
	if !req.PageType.Valid() {
		return nil, fmt.Errorf("%w: unknown page type %q", ErrInvalidInput, req.PageType)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	provider, err := g.selectProvider()
	if err != nil {
		return nil, err
	}

	digest := g.digest(ctx, req.ReferenceURL)
	msgs := prompts.BuildMessages([]types.Message{{Role: types.RoleUser, Content: req.Prompt}},
		req.PageType, req.ReferenceURL, digest)

	results := make([]*Result, len(VariantStyles))
	errs := make([]error, len(VariantStyles))

	var eg errgroup.Group
	for i, style := range VariantStyles {
		eg.Go(func() error {
			results[i], errs[i] = g.variant(ctx, provider, style.Preset, req.PageType, msgs)
			if errs[i] != nil {
				g.log.Warn("variant failed", "preset", style.Preset, "error", errs[i])
			}
			return nil
		})
	}
	_ = eg.Wait()

	var out []Variant
	for i, r := range results {
		if r != nil {
			out = append(out, Variant{VariantStyle: VariantStyles[i], Result: *r})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrNoVariants, errors.Join(errs...))
	}
	return out, nil
}

func (g *Generator) variant(ctx context.Context, provider llm.Provider, preset page.Preset, pageType page.PageType, msgs []llm.Message) (*Result, error) {
	system := prompts.BuildSystemPrompt(pageType, preset)
	res := runAttempts(ctx, g.log, "variant:"+string(preset), g.budgets.Variant, g.retryDelay,
		func(ctx context.Context, _ int) (*page.StructuredPage, error) {
			text, err := provider.Complete(ctx, system, msgs, llm.Sampling{Temperature: variantTemperature})
			if err != nil {
				return nil, err
			}
			return acceptPage(text, pageType, preset)
		})
	if res.err != nil {
		return nil, res.err
	}
	return g.finish(res.value, preset, provider.Name(), res.attempts)
}

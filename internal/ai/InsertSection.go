package ai

import (
	"context"
	"fmt"
	"strings"

	"storefront_ai_server/internal/ai/prompts"
	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/page"
)

// InsertRequest adds or rewrites one section of Page. The section comes from
// the catalog when SectionID is set, otherwise from Label and Prompt.
type InsertRequest struct {
	Page      *page.StructuredPage
	SectionID string
	Label     string
	Prompt    string
	PageType  page.PageType
	Preset    page.Preset
}

// InsertSection asks the model for an edited page, merges it into the
// original so sections the model dropped survive, then validates and
// renders the merged page.
func (g *Generator) InsertSection(ctx context.Context, req InsertRequest) (*Result, error) {
	if req.Page == nil {
		return nil, fmt.Errorf("%w: structuredPage is required", ErrInvalidInput)
	}
	pageType := req.PageType
	if pageType == "" {
		pageType = req.Page.PageType
	}
	if !pageType.Valid() || pageType != req.Page.PageType {
		return nil, fmt.Errorf("%w: page type %q does not match page %q", ErrInvalidInput, pageType, req.Page.PageType)
	}
	label, instruction, err := g.resolveSection(req, pageType)
	if err != nil {
		return nil, err
	}
	provider, err := g.selectProvider()
	if err != nil {
		return nil, err
	}

	preset := req.Preset
	if preset == "" {
		preset = req.Page.Preset
	}
	preset = preset.OrDefault()

	system, user, err := prompts.BuildSectionInsertPrompts(req.Page, label, instruction, pageType)
	if err != nil {
		return nil, err
	}
	msgs := []llm.Message{{Role: llm.RoleUser, Content: user}}

	res := runAttempts(ctx, g.log, "insert:"+label, g.budgets.Insert, g.retryDelay,
		func(ctx context.Context, _ int) (*page.StructuredPage, error) {
			text, err := provider.Complete(ctx, system, msgs, llm.Sampling{Temperature: insertTemperature})
			if err != nil {
				return nil, err
			}
			proposed, err := page.Parse(text)
			if err != nil {
				return nil, err
			}
			merged := page.Merge(req.Page, proposed)
			merged.Preset = preset
			if err := page.Validate(merged); err != nil {
				return nil, err
			}
			return merged, nil
		})
	if res.err != nil {
		return nil, fmt.Errorf("insert section %q: %w", label, res.err)
	}
	return g.finish(res.value, preset, provider.Name(), res.attempts)
}

func (g *Generator) resolveSection(req InsertRequest, pageType page.PageType) (string, string, error) {
	if req.SectionID != "" {
		if g.catalog == nil {
			return "", "", fmt.Errorf("%w: section catalog is not loaded", ErrInvalidInput)
		}
		t, ok := g.catalog.Get(req.SectionID)
		if !ok {
			return "", "", fmt.Errorf("%w: unknown section %q", ErrInvalidInput, req.SectionID)
		}
		if t.PageType != pageType {
			return "", "", fmt.Errorf("%w: section %q is for %s pages", ErrInvalidInput, t.ID, t.PageType)
		}
		label := t.Label
		if strings.TrimSpace(req.Label) != "" {
			label = req.Label
		}
		return label, t.Prompt, nil
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", "", fmt.Errorf("%w: sectionId or prompt is required", ErrInvalidInput)
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = "Custom section"
	}
	return label, req.Prompt, nil
}

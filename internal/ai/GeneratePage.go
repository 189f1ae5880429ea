package ai

import (
	"context"
	"fmt"
	"strings"

	"storefront_ai_server/internal/ai/prompts"
	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/types"
)

// GenerateRequest asks for a new page or a refinement of the last one.
// Anchor carries the last known output and is only used when the
// conversation holds more than one user turn.
type GenerateRequest struct {
	Turns        []types.Message
	PageType     page.PageType
	Preset       page.Preset
	ReferenceURL string
	Anchor       prompts.Anchor
}

// GeneratePage runs the full generation flow: prompt, provider, parse,
// validate, render.
func (g *Generator) GeneratePage(ctx context.Context, req GenerateRequest) (*Result, error) {
	if !req.PageType.Valid() {
		return nil, fmt.Errorf("%w: unknown page type %q", ErrInvalidInput, req.PageType)
	}
	turns, refining, err := conversation(req.Turns, req.Anchor)
	if err != nil {
		return nil, err
	}
	provider, err := g.selectProvider()
	if err != nil {
		return nil, err
	}

	preset := req.Preset.OrDefault()
	digest := ""
	if !refining {
		digest = g.digest(ctx, req.ReferenceURL)
	}
	system := prompts.BuildSystemPrompt(req.PageType, preset)
	msgs := prompts.BuildMessages(turns, req.PageType, req.ReferenceURL, digest)

	res := runAttempts(ctx, g.log, "generate", g.budgets.Generate, g.retryDelay,
		func(ctx context.Context, _ int) (*page.StructuredPage, error) {
			text, err := provider.Complete(ctx, system, msgs, llm.Sampling{Temperature: generateTemperature})
			if err != nil {
				return nil, err
			}
			return acceptPage(text, req.PageType, preset)
		})
	if res.err != nil {
		return nil, fmt.Errorf("generate %s page: %w", req.PageType, res.err)
	}
	return g.finish(res.value, preset, provider.Name(), res.attempts)
}

// conversation picks the turns sent to the model. A single user turn is
// sent alone; later user turns are collapsed into a refinement frame.
func conversation(turns []types.Message, anchor prompts.Anchor) ([]types.Message, bool, error) {
	var users []int
	for i, t := range turns {
		if t.Role == types.RoleUser && strings.TrimSpace(t.Content) != "" {
			users = append(users, i)
		}
	}
	switch len(users) {
	case 0:
		return nil, false, fmt.Errorf("%w: no user message", ErrInvalidInput)
	case 1:
		return []types.Message{turns[users[0]]}, false, nil
	}
	last := users[len(users)-1]
	return prompts.BuildRefinementFrame(turns[:last], turns[last], anchor), true, nil
}

// acceptPage parses model output, stamps the preset and validates it. A
// reply of the wrong page type is a validation failure.
func acceptPage(text string, pageType page.PageType, preset page.Preset) (*page.StructuredPage, error) {
	p, err := page.Parse(text)
	if err != nil {
		return nil, err
	}
	if p.PageType != pageType {
		return nil, &page.ValidationError{Path: "pageType", Reason: fmt.Sprintf("is %q, want %q", p.PageType, pageType)}
	}
	p.Preset = preset
	if err := page.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

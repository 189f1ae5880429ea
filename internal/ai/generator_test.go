package ai_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_ai_server/internal/ai"
	"storefront_ai_server/internal/ai/prompts"
	"storefront_ai_server/internal/catalog"
	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/page/pagetest"
	"storefront_ai_server/internal/render"
	"storefront_ai_server/internal/types"
)

type call struct {
	system string
	msgs   []llm.Message
	temp   float32
}

// stubProvider replays replies in order, repeating the last one. When
// respond is set it answers instead.
type stubProvider struct {
	mu      sync.Mutex
	replies []reply
	respond func(system string, msgs []llm.Message) (string, error)
	calls   []call
}

type reply struct {
	text string
	err  error
}

func (s *stubProvider) Name() string { return llm.Anthropic }

func (s *stubProvider) Complete(ctx context.Context, system string, msgs []llm.Message, p llm.Sampling) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.calls)
	s.calls = append(s.calls, call{system: system, msgs: msgs, temp: p.Temperature})
	if s.respond != nil {
		return s.respond(system, msgs)
	}
	r := s.replies[min(n, len(s.replies)-1)]
	return r.text, r.err
}

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type stubFetcher struct{ digest string }

func (f stubFetcher) Digest(context.Context, string) (string, error) { return f.digest, nil }

func newGenerator(t *testing.T, p llm.Provider, opts ...ai.Option) *ai.Generator {
	t.Helper()
	cache, err := render.NewCache(16)
	require.NoError(t, err)
	cat, err := catalog.Load()
	require.NoError(t, err)
	base := []ai.Option{ai.WithRenderCache(cache), ai.WithCatalog(cat), ai.WithRetryDelay(0)}
	return ai.NewGenerator(llm.NewStaticRegistry(p), append(base, opts...)...)
}

func firstTurn(content string) []types.Message {
	return []types.Message{{Role: types.RoleUser, Content: content}}
}

func TestGeneratePage_EndToEnd(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: "Here you go:\n```json\n" + pagetest.LandingJSON + "\n```"}}}
	g := newGenerator(t, p, ai.WithReference(stubFetcher{digest: "# Reference digest"}))

	res, err := g.GeneratePage(context.Background(), ai.GenerateRequest{
		Turns:        firstTurn("A coffee subscription called Morning Ritual with warm orange tones"),
		PageType:     page.Landing,
		ReferenceURL: "https://example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, llm.Anthropic, res.Provider)
	assert.Equal(t, page.Bold, res.Page.Preset)
	assert.Equal(t, "Morning Ritual Coffee", res.Code.Title)
	assert.True(t, strings.HasPrefix(res.HTML, "<!DOCTYPE html>"))
	assert.Contains(t, res.HTML, "Morning Ritual")

	require.Len(t, p.calls, 1)
	c := p.calls[0]
	assert.Contains(t, c.system, "STYLE PRESET — BOLD")
	assert.InDelta(t, 0.7, c.temp, 0.001)
	require.Len(t, c.msgs, 1)
	assert.Contains(t, c.msgs[0].Content, "# Reference digest")
	assert.Contains(t, c.msgs[0].Content, "Morning Ritual with warm orange tones")
}

func TestGeneratePage_RetriesMalformedOutput(t *testing.T) {
	p := &stubProvider{replies: []reply{
		{text: "I cannot do that"},
		{text: `{"pageType":"landing","title":"Half","landing":{"nav":{"links":[]}}}`},
		{text: pagetest.LandingJSON},
	}}
	g := newGenerator(t, p)

	res, err := g.GeneratePage(context.Background(), ai.GenerateRequest{
		Turns: firstTurn("coffee"), PageType: page.Landing, Preset: page.Luxury,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 3, p.callCount())
	assert.Equal(t, page.Luxury, res.Page.Preset)
}

func TestGeneratePage_BudgetExhausted(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: "still not json"}}}
	g := newGenerator(t, p)

	_, err := g.GeneratePage(context.Background(), ai.GenerateRequest{Turns: firstTurn("coffee"), PageType: page.Landing})
	require.Error(t, err)

	var pe *page.ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, p.callCount())
	assert.Equal(t, ai.KindMalformed, ai.KindOf(err))
	assert.Equal(t, "AI had trouble formatting the response. Please try again.", ai.UserMessage(err))
}

func TestGeneratePage_CustomBudget(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: "{}"}}}
	g := newGenerator(t, p, ai.WithBudgets(ai.Budgets{Generate: 5}))

	_, err := g.GeneratePage(context.Background(), ai.GenerateRequest{Turns: firstTurn("coffee"), PageType: page.Landing})
	require.Error(t, err)
	assert.Equal(t, 5, p.callCount())
}

func TestGeneratePage_WrongPageTypeIsRetried(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: pagetest.ProductJSON}, {text: pagetest.LandingJSON}}}
	g := newGenerator(t, p)

	res, err := g.GeneratePage(context.Background(), ai.GenerateRequest{Turns: firstTurn("coffee"), PageType: page.Landing})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, page.Landing, res.Page.PageType)
}

func TestGeneratePage_FatalErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ai.ErrorKind
		msg  string
	}{
		{"rate limit", &llm.RateLimitError{Provider: "anthropic", Err: errors.New("slow down")}, ai.KindRateLimited, "Rate limit reached. Please wait a moment and try again."},
		{"billing", &llm.BillingError{Provider: "anthropic", Err: errors.New("credit balance too low")}, ai.KindBilling, "Insufficient credits. Please top up your API account."},
		{"auth", &llm.ConfigError{Provider: "anthropic", Msg: "invalid x-api-key"}, ai.KindAuth, "anthropic: invalid x-api-key"},
		{"upstream", &llm.ProviderError{Provider: "anthropic", StatusCode: 500, Err: errors.New("overloaded")}, ai.KindUnknown, "Failed to generate page. Please try again."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &stubProvider{replies: []reply{{err: tc.err}}}
			g := newGenerator(t, p)

			_, err := g.GeneratePage(context.Background(), ai.GenerateRequest{Turns: firstTurn("coffee"), PageType: page.Landing})
			require.Error(t, err)
			assert.Equal(t, 1, p.callCount())
			assert.Equal(t, tc.kind, ai.KindOf(err))
			assert.Equal(t, tc.msg, ai.UserMessage(err))
		})
	}
}

func TestGeneratePage_EmptyCompletionIsRetried(t *testing.T) {
	p := &stubProvider{replies: []reply{
		{err: &llm.ProviderError{Provider: "anthropic", Err: llm.ErrEmptyCompletion}},
		{text: pagetest.LandingJSON},
	}}
	g := newGenerator(t, p)

	res, err := g.GeneratePage(context.Background(), ai.GenerateRequest{Turns: firstTurn("coffee"), PageType: page.Landing})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
}

func TestGeneratePage_RetryDelayHonoursContext(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: "nope"}}}
	g := newGenerator(t, p, ai.WithRetryDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := g.GeneratePage(ctx, ai.GenerateRequest{Turns: firstTurn("coffee"), PageType: page.Landing})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Minute)
	assert.Equal(t, 1, p.callCount())
}

func TestGeneratePage_Refinement(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: pagetest.LandingJSON}}}
	g := newGenerator(t, p, ai.WithReference(stubFetcher{digest: "never sent"}))

	anchor := pagetest.Landing()
	_, err := g.GeneratePage(context.Background(), ai.GenerateRequest{
		Turns: []types.Message{
			{Role: types.RoleUser, Content: "coffee brand"},
			{Role: types.RoleAssistant, Content: "Here is your page."},
			{Role: types.RoleUser, Content: "make the accent teal"},
		},
		PageType:     page.Landing,
		ReferenceURL: "https://example.com",
		Anchor:       prompts.Anchor{Page: anchor},
	})
	require.NoError(t, err)

	msgs := p.calls[0].msgs
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0].Content, "coffee brand")
	assert.NotContains(t, msgs[0].Content, "never sent")
	assert.Equal(t, llm.RoleAssistant, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, `"title":"Morning Ritual Coffee"`)
	assert.True(t, strings.HasPrefix(msgs[2].Content, "Refinement request: make the accent teal"))
}

func TestGeneratePage_MissingCredential(t *testing.T) {
	g := ai.NewGenerator(llm.NewRegistry(context.Background(), llm.Settings{}), ai.WithProvider("openai"))

	_, err := g.GeneratePage(context.Background(), ai.GenerateRequest{Turns: firstTurn("coffee"), PageType: page.Landing})
	require.Error(t, err)
	assert.Equal(t, ai.KindAuth, ai.KindOf(err))
	assert.Contains(t, ai.UserMessage(err), "OPENAI_API_KEY is not set")
}

func TestGeneratePage_InvalidInput(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: pagetest.LandingJSON}}}
	g := newGenerator(t, p)

	_, err := g.GeneratePage(context.Background(), ai.GenerateRequest{PageType: page.Landing})
	assert.ErrorIs(t, err, ai.ErrInvalidInput)

	_, err = g.GeneratePage(context.Background(), ai.GenerateRequest{Turns: firstTurn("x"), PageType: "blog"})
	assert.ErrorIs(t, err, ai.ErrInvalidInput)
	assert.Equal(t, ai.KindInvalidInput, ai.KindOf(err))
	assert.Zero(t, p.callCount())
}

func TestGenerateVariants_PartialFailure(t *testing.T) {
	p := &stubProvider{respond: func(system string, _ []llm.Message) (string, error) {
		if strings.Contains(system, "STYLE PRESET — LUXURY") {
			return "", &llm.ProviderError{Provider: "anthropic", StatusCode: 503, Err: errors.New("overloaded")}
		}
		return pagetest.LandingJSON, nil
	}}
	g := newGenerator(t, p)

	variants, err := g.GenerateVariants(context.Background(), ai.VariantRequest{Prompt: "coffee", PageType: page.Landing})
	require.NoError(t, err)
	require.Len(t, variants, 2)

	assert.Equal(t, page.Minimalist, variants[0].Preset)
	assert.Equal(t, "Minimalist", variants[0].Label)
	assert.Equal(t, page.Minimalist, variants[0].Page.Preset)
	assert.Equal(t, page.Bold, variants[1].Preset)
	assert.NotEqual(t, variants[0].Code.ComponentCode, variants[1].Code.ComponentCode)

	assert.Equal(t, 3, p.callCount())
	for _, c := range p.calls {
		assert.InDelta(t, 0.9, c.temp, 0.001)
	}
}

func TestGenerateVariants_AllFail(t *testing.T) {
	p := &stubProvider{replies: []reply{{err: &llm.BillingError{Provider: "anthropic", Err: errors.New("quota")}}}}
	g := newGenerator(t, p)

	_, err := g.GenerateVariants(context.Background(), ai.VariantRequest{Prompt: "coffee", PageType: page.Product})
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrNoVariants)
	assert.Equal(t, ai.KindBilling, ai.KindOf(err))
	assert.Equal(t, 3, p.callCount())
}

func TestGenerateVariants_RetryBudget(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: "garbage"}}}
	g := newGenerator(t, p)

	_, err := g.GenerateVariants(context.Background(), ai.VariantRequest{Prompt: "coffee", PageType: page.Landing})
	require.ErrorIs(t, err, ai.ErrNoVariants)
	assert.Equal(t, ai.KindMalformed, ai.KindOf(err))
	assert.Equal(t, 6, p.callCount())
}

const faqProposal = `{"pageType":"landing","title":"","landing":{
  "hero":{"headline":"  "},
  "faq":{"sectionLabel":"FAQ","heading":"Questions","items":[
    {"question":"Do you ship?","answer":"Yes, everywhere."},
    {"question":"Can I pause?","answer":"Any time."}
  ]}}}`

func TestInsertSection_MergesIntoOriginal(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: faqProposal}}}
	g := newGenerator(t, p)

	original := pagetest.Landing()
	original.Preset = page.Playful

	res, err := g.InsertSection(context.Background(), ai.InsertRequest{Page: original, SectionID: "faq"})
	require.NoError(t, err)

	merged := res.Page
	require.NotNil(t, merged.Landing.FAQ)
	assert.Len(t, merged.Landing.FAQ.Items, 2)
	assert.Equal(t, original.Landing.Hero, merged.Landing.Hero)
	assert.Equal(t, original.Landing.Pricing, merged.Landing.Pricing)
	assert.Equal(t, "Morning Ritual Coffee", merged.Title)
	assert.Equal(t, page.Playful, merged.Preset)
	assert.Contains(t, res.Code.ComponentCode, "Do you ship?")

	require.Len(t, p.calls, 1)
	assert.Contains(t, p.calls[0].system, "CONTENT POPULATION RULES")
	assert.Contains(t, p.calls[0].msgs[0].Content, `section labeled "FAQ"`)
	assert.InDelta(t, 0.5, p.calls[0].temp, 0.001)
}

func TestInsertSection_FreeFormPrompt(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: "oops"}, {text: faqProposal}}}
	g := newGenerator(t, p)

	res, err := g.InsertSection(context.Background(), ai.InsertRequest{
		Page: pagetest.Landing(), Prompt: "Add a short FAQ", Label: "Questions", Preset: page.Minimalist,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, page.Minimalist, res.Page.Preset)
	assert.Contains(t, p.calls[0].msgs[0].Content, "Specifically: Add a short FAQ")
}

func TestInsertSection_BudgetExhausted(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: "oops"}}}
	g := newGenerator(t, p)

	_, err := g.InsertSection(context.Background(), ai.InsertRequest{Page: pagetest.Landing(), SectionID: "stats"})
	require.Error(t, err)
	assert.Equal(t, 2, p.callCount())
	assert.Equal(t, ai.KindMalformed, ai.KindOf(err))
}

func TestInsertSection_InvalidInput(t *testing.T) {
	p := &stubProvider{replies: []reply{{text: faqProposal}}}
	g := newGenerator(t, p)

	tests := []ai.InsertRequest{
		{SectionID: "faq"},
		{Page: pagetest.Landing(), SectionID: "nope"},
		{Page: pagetest.Landing(), SectionID: "product-reviews"},
		{Page: pagetest.Landing()},
		{Page: pagetest.Landing(), SectionID: "faq", PageType: page.Product},
	}
	for i, req := range tests {
		_, err := g.InsertSection(context.Background(), req)
		assert.ErrorIs(t, err, ai.ErrInvalidInput, "case %d", i)
	}
	assert.Zero(t, p.callCount())
}

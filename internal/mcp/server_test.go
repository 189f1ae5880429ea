package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_ai_server/internal/ai"
	"storefront_ai_server/internal/catalog"
	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/page/pagetest"
	"storefront_ai_server/internal/render"
)

type fakeProvider struct {
	text string
	err  error
}

func (f fakeProvider) Name() string { return llm.Anthropic }

func (f fakeProvider) Complete(context.Context, string, []llm.Message, llm.Sampling) (string, error) {
	return f.text, f.err
}

func newTools(t *testing.T, p llm.Provider) *tools {
	t.Helper()
	cache, err := render.NewCache(8)
	require.NoError(t, err)
	cat, err := catalog.Load()
	require.NoError(t, err)
	gen := ai.NewGenerator(llm.NewStaticRegistry(p),
		ai.WithRenderCache(cache), ai.WithCatalog(cat), ai.WithRetryDelay(0))
	return &tools{gen: gen, log: slog.Default()}
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestNewServer(t *testing.T) {
	s := NewServer(newTools(t, fakeProvider{}).gen, nil)
	assert.NotNil(t, s)
}

func TestGeneratePageTool(t *testing.T) {
	tl := newTools(t, fakeProvider{text: pagetest.LandingJSON})

	res, err := tl.generatePage(context.Background(), mcp.CallToolRequest{}, GeneratePageArgs{
		Prompt:   "A neighbourhood coffee roaster",
		PageType: "landing",
		Preset:   "luxury",
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var out ai.Result
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, "Morning Ritual Coffee", out.Page.Title)
	assert.Equal(t, "luxury", string(out.Page.Preset))
}

func TestGeneratePageTool_Failure(t *testing.T) {
	tl := newTools(t, fakeProvider{err: &llm.RateLimitError{Provider: llm.Anthropic, Err: errors.New("slow down")}})

	res, err := tl.generatePage(context.Background(), mcp.CallToolRequest{}, GeneratePageArgs{
		Prompt:   "A neighbourhood coffee roaster",
		PageType: "landing",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), string(ai.KindRateLimited))
}

func TestGenerateVariantsTool(t *testing.T) {
	tl := newTools(t, fakeProvider{text: pagetest.LandingJSON})

	res, err := tl.generateVariants(context.Background(), mcp.CallToolRequest{}, GenerateVariantsArgs{
		Prompt:   "A neighbourhood coffee roaster",
		PageType: "landing",
	})
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var out struct {
		Variants []ai.Variant `json:"variants"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Len(t, out.Variants, 3)
}

func TestInsertSectionTool(t *testing.T) {
	tl := newTools(t, fakeProvider{text: pagetest.LandingJSON})

	res, err := tl.insertSection(context.Background(), mcp.CallToolRequest{}, InsertSectionArgs{
		StructuredPage: pagetest.LandingJSON,
		SectionID:      "faq",
	})
	require.NoError(t, err)
	assert.False(t, res.IsError, text(t, res))

	res, err = tl.insertSection(context.Background(), mcp.CallToolRequest{}, InsertSectionArgs{
		StructuredPage: "not a page",
		SectionID:      "faq",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListSectionsTool(t *testing.T) {
	tl := newTools(t, fakeProvider{})

	res, err := tl.listSections(context.Background(), mcp.CallToolRequest{}, ListSectionsArgs{PageType: "product"})
	require.NoError(t, err)
	var out struct {
		Sections []catalog.SectionTemplate `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Len(t, out.Sections, 3)

	res, err = tl.listSections(context.Background(), mcp.CallToolRequest{}, ListSectionsArgs{PageType: "blog"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

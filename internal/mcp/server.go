// Package mcp exposes the generation flows as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"storefront_ai_server/internal/ai"
	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/types"
)

const Version = "0.1.0"

type GeneratePageArgs struct {
	Prompt       string `json:"prompt"`
	PageType     string `json:"pageType"`
	Preset       string `json:"preset"`
	ReferenceURL string `json:"referenceUrl"`
}

type GenerateVariantsArgs struct {
	Prompt       string `json:"prompt"`
	PageType     string `json:"pageType"`
	ReferenceURL string `json:"referenceUrl"`
}

type InsertSectionArgs struct {
	StructuredPage string `json:"structuredPage"` // page JSON as returned by generate_page
	SectionID      string `json:"sectionId"`
	Label          string `json:"label"`
	Prompt         string `json:"prompt"`
	Preset         string `json:"preset"`
}

type ListSectionsArgs struct {
	PageType string `json:"pageType"`
	Category string `json:"category"`
	Query    string `json:"query"`
}

type tools struct {
	gen *ai.Generator
	log *slog.Logger
}

// NewServer creates an MCP server with the generate_page,
// generate_variants, insert_section and list_sections tools.
func NewServer(gen *ai.Generator, log *slog.Logger) *server.MCPServer {
	if log == nil {
		log = slog.Default()
	}
	t := &tools{gen: gen, log: log}

	s := server.NewMCPServer(
		"Storefront Page Generator",
		Version,
		server.WithToolCapabilities(false),
	)

	pageTypes := []string{string(page.Landing), string(page.Product)}
	presets := make([]string, len(page.Presets))
	for i, p := range page.Presets {
		presets[i] = string(p)
	}

	s.AddTool(mcp.NewTool("generate_page",
		mcp.WithDescription("Generate a landing or product page from a description. Returns the rendered HTML document, the component code and the structured page JSON."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("What the page is for, e.g. 'a subscription coffee roaster in Berlin'"),
		),
		mcp.WithString("pageType",
			mcp.Required(),
			mcp.Description("Kind of page to build"),
			mcp.Enum(pageTypes...),
		),
		mcp.WithString("preset",
			mcp.Description("Visual style; defaults to bold"),
			mcp.Enum(presets...),
		),
		mcp.WithString("referenceUrl",
			mcp.Description("Optional page to take design inspiration from"),
		),
	), mcp.NewTypedToolHandler(t.generatePage))

	s.AddTool(mcp.NewTool("generate_variants",
		mcp.WithDescription("Generate the same page in the minimalist, bold and luxury styles at once. Failed styles are left out."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("What the page is for")),
		mcp.WithString("pageType", mcp.Required(), mcp.Enum(pageTypes...)),
		mcp.WithString("referenceUrl", mcp.Description("Optional page to take design inspiration from")),
	), mcp.NewTypedToolHandler(t.generateVariants))

	s.AddTool(mcp.NewTool("insert_section",
		mcp.WithDescription("Add or rewrite one section of an existing page. Use a sectionId from list_sections, or a free-form prompt."),
		mcp.WithString("structuredPage",
			mcp.Required(),
			mcp.Description("The structuredPage JSON returned by generate_page"),
		),
		mcp.WithString("sectionId", mcp.Description("Catalog section id, e.g. 'faq'")),
		mcp.WithString("label", mcp.Description("Section label for a free-form prompt")),
		mcp.WithString("prompt", mcp.Description("Free-form description of the section")),
		mcp.WithString("preset", mcp.Enum(presets...)),
	), mcp.NewTypedToolHandler(t.insertSection))

	s.AddTool(mcp.NewTool("list_sections",
		mcp.WithDescription("List the section templates that insert_section accepts"),
		mcp.WithString("pageType", mcp.Enum(pageTypes...), mcp.Description("Defaults to landing")),
		mcp.WithString("category", mcp.Description("Filter by category, e.g. 'Hero'")),
		mcp.WithString("query", mcp.Description("Match against label and description")),
	), mcp.NewTypedToolHandler(t.listSections))

	return s
}

func (t *tools) generatePage(ctx context.Context, _ mcp.CallToolRequest, args GeneratePageArgs) (*mcp.CallToolResult, error) {
	res, err := t.gen.GeneratePage(ctx, ai.GenerateRequest{
		Turns:        []types.Message{{Role: types.RoleUser, Content: args.Prompt}},
		PageType:     page.PageType(args.PageType),
		Preset:       page.Preset(args.Preset),
		ReferenceURL: args.ReferenceURL,
	})
	if err != nil {
		return t.failure("generate_page", err), nil
	}
	return jsonResult(res)
}

func (t *tools) generateVariants(ctx context.Context, _ mcp.CallToolRequest, args GenerateVariantsArgs) (*mcp.CallToolResult, error) {
	variants, err := t.gen.GenerateVariants(ctx, ai.VariantRequest{
		Prompt:       args.Prompt,
		PageType:     page.PageType(args.PageType),
		ReferenceURL: args.ReferenceURL,
	})
	if err != nil {
		return t.failure("generate_variants", err), nil
	}
	return jsonResult(map[string]any{"variants": variants})
}

func (t *tools) insertSection(ctx context.Context, _ mcp.CallToolRequest, args InsertSectionArgs) (*mcp.CallToolResult, error) {
	current, err := page.Parse(args.StructuredPage)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("structuredPage is not a valid page: %v", err)), nil
	}
	res, err := t.gen.InsertSection(ctx, ai.InsertRequest{
		Page:      current,
		SectionID: args.SectionID,
		Label:     args.Label,
		Prompt:    args.Prompt,
		Preset:    page.Preset(args.Preset),
	})
	if err != nil {
		return t.failure("insert_section", err), nil
	}
	return jsonResult(res)
}

func (t *tools) listSections(_ context.Context, _ mcp.CallToolRequest, args ListSectionsArgs) (*mcp.CallToolResult, error) {
	cat := t.gen.Catalog()
	if cat == nil {
		return mcp.NewToolResultError("section catalog is not loaded"), nil
	}
	pageType := page.PageType(args.PageType)
	if pageType == "" {
		pageType = page.Landing
	}
	if !pageType.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown page type %q", args.PageType)), nil
	}
	return jsonResult(map[string]any{
		"sections":   cat.List(pageType, args.Category, args.Query),
		"categories": cat.Categories(pageType),
	})
}

// failure reports err to the client as a tool error carrying its kind.
func (t *tools) failure(tool string, err error) *mcp.CallToolResult {
	kind := ai.KindOf(err)
	t.log.Warn("tool call failed", "tool", tool, "errorKind", kind, "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", kind, ai.UserMessage(err)))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// Package ai drives page generation: prompt building, the provider call, and
// parsing, validating and rendering the reply, with bounded retries.
package ai

import (
	"context"
	"log/slog"
	"time"

	"storefront_ai_server/internal/catalog"
	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/reference"
	"storefront_ai_server/internal/render"
)

// Budgets caps the provider calls per flow.
type Budgets struct {
	Generate int
	Variant  int
	Insert   int
}

func DefaultBudgets() Budgets { return Budgets{Generate: 3, Variant: 2, Insert: 2} }

const DefaultRetryDelay = 500 * time.Millisecond

// Sampling temperatures per flow.
const (
	generateTemperature = 0.7
	variantTemperature  = 0.9
	insertTemperature   = 0.5
)

// Result is the outcome of a successful flow.
type Result struct {
	HTML     string               `json:"html"`
	Code     render.Artifact      `json:"code"`
	Page     *page.StructuredPage `json:"structuredPage"`
	Provider string               `json:"providerUsed"`
	Attempts int                  `json:"attempts"`
}

type Generator struct {
	registry   *llm.Registry
	provider   string
	renderer   *render.Cache
	reference  reference.Fetcher
	catalog    *catalog.Catalog
	budgets    Budgets
	retryDelay time.Duration
	log        *slog.Logger
}

type Option func(*Generator)

// WithProvider sets the configured backend name.
func WithProvider(name string) Option { return func(g *Generator) { g.provider = name } }

func WithRenderCache(c *render.Cache) Option { return func(g *Generator) { g.renderer = c } }

// WithReference enables reference-page digests for first-turn requests.
func WithReference(f reference.Fetcher) Option { return func(g *Generator) { g.reference = f } }

func WithCatalog(c *catalog.Catalog) Option { return func(g *Generator) { g.catalog = c } }

// WithBudgets overrides the per-flow attempt budgets. Zero fields keep the
// default.
func WithBudgets(b Budgets) Option {
	return func(g *Generator) {
		if b.Generate > 0 {
			g.budgets.Generate = b.Generate
		}
		if b.Variant > 0 {
			g.budgets.Variant = b.Variant
		}
		if b.Insert > 0 {
			g.budgets.Insert = b.Insert
		}
	}
}

func WithRetryDelay(d time.Duration) Option { return func(g *Generator) { g.retryDelay = d } }

func WithLogger(l *slog.Logger) Option { return func(g *Generator) { g.log = l } }

func NewGenerator(registry *llm.Registry, opts ...Option) *Generator {
	g := &Generator{
		registry:   registry,
		budgets:    DefaultBudgets(),
		retryDelay: DefaultRetryDelay,
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Catalog returns the section catalog, which may be nil.
func (g *Generator) Catalog() *catalog.Catalog { return g.catalog }

func (g *Generator) selectProvider() (llm.Provider, error) {
	return g.registry.Select(g.provider)
}

// finish renders a validated page and wraps the result.
func (g *Generator) finish(p *page.StructuredPage, preset page.Preset, provider string, attempts int) (*Result, error) {
	art, err := g.renderer.Render(p, preset)
	if err != nil {
		g.log.Error("render failed for validated page", "pageType", p.PageType, "error", err)
		return nil, err
	}
	return &Result{
		HTML:     render.HTML(art),
		Code:     art,
		Page:     p,
		Provider: provider,
		Attempts: attempts,
	}, nil
}

func (g *Generator) digest(ctx context.Context, url string) string {
	if g.reference == nil || url == "" {
		return ""
	}
	d, err := g.reference.Digest(ctx, url)
	if err != nil {
		g.log.Warn("reference digest skipped", "url", url, "error", err)
		return ""
	}
	return d
}

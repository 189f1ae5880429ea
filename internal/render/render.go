// Package render turns a validated StructuredPage into React component source,
// a stylesheet and a standalone HTML document. Rendering is a pure function
// of the page and preset.
package render

import (
	"math"
	"strings"

	"storefront_ai_server/internal/page"
)

// Artifact is the rendered form of a page.
type Artifact struct {
	Title         string `json:"title"`
	ComponentCode string `json:"componentCode"`
	CSSCode       string `json:"cssCode"`
}

// RenderError reports a page that cannot be rendered at all.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string { return "render page: " + e.Reason }

// section is one entry of a page layout. Entries render in slice order; a
// nil node from build omits the section.
type section[T any] struct {
	key   string
	main  bool
	build func(d *T, t Theme) *node
}

var landingLayout = []section[page.LandingPage]{
	{"nav", false, func(d *page.LandingPage, t Theme) *node { return navBlock(d.Nav, t, false) }},
	{"hero", true, func(d *page.LandingPage, t Theme) *node { return heroBlock(d.Hero, t) }},
	{"team", true, func(d *page.LandingPage, t Theme) *node { return teamBlock(d.Team, t) }},
	{"logoBar", true, func(d *page.LandingPage, t Theme) *node { return logoBarBlock(d.LogoBar, t) }},
	{"faq", true, func(d *page.LandingPage, t Theme) *node { return faqBlock(d.FAQ, t) }},
	{"features", true, func(d *page.LandingPage, t Theme) *node { return featuresBlock(d.Features, t) }},
	{"stats", true, func(d *page.LandingPage, t Theme) *node { return statsBlock(d.Stats, t) }},
	{"newsletter", true, func(d *page.LandingPage, t Theme) *node { return newsletterBlock(d.Newsletter, t) }},
	{"pricing", true, func(d *page.LandingPage, t Theme) *node { return pricingBlock(d.Pricing, t) }},
	{"testimonials", true, func(d *page.LandingPage, t Theme) *node { return testimonialsBlock(d.Testimonials, t) }},
	{"ctaBanner", true, func(d *page.LandingPage, t Theme) *node { return ctaBannerBlock(d.CTABanner, t) }},
	{"footer", false, func(d *page.LandingPage, t Theme) *node { return footerBlock(d.Footer, t, true) }},
}

var productLayout = []section[page.ProductPage]{
	{"nav", false, func(d *page.ProductPage, t Theme) *node { return navBlock(d.Nav, t, true) }},
	{"productSection", true, func(d *page.ProductPage, t Theme) *node { return productBlock(d.ProductSection, d.Reviews, t) }},
	{"reviews", true, func(d *page.ProductPage, t Theme) *node { return reviewsBlock(d.Reviews, t) }},
	{"relatedProducts", true, func(d *page.ProductPage, t Theme) *node { return relatedBlock(d.RelatedProducts, t) }},
	{"footer", false, func(d *page.ProductPage, t Theme) *node { return footerBlock(d.Footer, t, false) }},
}

// LandingOrder returns the canonical landing section order.
func LandingOrder() []string { return keys(landingLayout) }

// ProductOrder returns the canonical product section order.
func ProductOrder() []string { return keys(productLayout) }

func keys[T any](layout []section[T]) []string {
	out := make([]string, len(layout))
	for i, s := range layout {
		out[i] = s.key
	}
	return out
}

// Render builds the artifact for p using the theme for preset. It fails only
// when the body for the declared page type is missing entirely.
func Render(p *page.StructuredPage, preset page.Preset) (Artifact, error) {
	if p == nil {
		return Artifact{}, &RenderError{Reason: "page is nil"}
	}
	t := ThemeFor(preset)

	var (
		root     *node
		accent   string
		swatches []string
	)
	switch p.PageType {
	case page.Landing:
		if p.Landing == nil {
			return Artifact{}, &RenderError{Reason: "missing landing data"}
		}
		root = compose(landingLayout, p.Landing, t)
		accent = accentColor(orEmpty(p.Landing.Nav).AccentColor, t)
	case page.Product:
		if p.Product == nil {
			return Artifact{}, &RenderError{Reason: "missing product data"}
		}
		root = compose(productLayout, p.Product, t)
		accent = accentColor(orEmpty(p.Product.Nav).AccentColor, t)
		swatches = validSwatches(orEmpty(p.Product.ProductSection).Colors)
	default:
		return Artifact{}, &RenderError{Reason: "unknown page type " + string(p.PageType)}
	}

	var b strings.Builder
	b.WriteString("function App() {\n  return (\n")
	serialize(&b, root, 2)
	b.WriteString("  );\n}\n")

	return Artifact{
		Title:         p.Title,
		ComponentCode: b.String(),
		CSSCode:       stylesheet(accent, swatches),
	}, nil
}

// compose lays out sections: leading chrome, a main element holding the
// content sections, then trailing chrome.
func compose[T any](layout []section[T], d *T, t Theme) *node {
	root := el("div", t.PageBg+" "+t.PageText+" min-h-screen")
	main := el("main", "pt-20")
	var trailing []*node
	for _, s := range layout {
		n := s.build(d, t)
		if n == nil {
			continue
		}
		n.set("data-section", s.key)
		switch {
		case s.main:
			main.add(n)
		case len(main.children) == 0:
			root.add(n)
		default:
			trailing = append(trailing, n)
		}
	}
	root.add(main)
	return root.add(trailing...)
}

func orEmpty[T any](p *T) *T {
	if p == nil {
		return new(T)
	}
	return p
}

// Stars renders a rating as five glyphs, filled for the rounded rating and
// hollow for the remainder. Ratings are clamped to [0, 5].
func Stars(rating float64) string {
	if math.IsNaN(rating) {
		rating = 0
	}
	n := int(math.Round(math.Max(0, math.Min(5, rating))))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func validSwatches(colors []string) []string {
	var out []string
	for _, c := range colors {
		if v := swatchColor(c); v != "" {
			out = append(out, v)
		}
	}
	return out
}

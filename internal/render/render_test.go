package render_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/page/pagetest"
	"storefront_ai_server/internal/render"
)

func fullLanding() *page.StructuredPage {
	p := pagetest.Landing()
	l := p.Landing
	l.FAQ = &page.FAQ{Heading: "Questions", Items: []page.FAQItem{{Question: "Decaf?", Answer: "Yes"}}}
	l.Newsletter = &page.Newsletter{Heading: "Stay in the loop", Placeholder: "you@example.com", ButtonLabel: "Join"}
	l.Team = &page.Team{Heading: "Baristas", Members: []page.Member{{Name: "Eve", Role: "Head barista"}}}
	l.LogoBar = &page.LogoBar{Heading: "As seen in", Logos: []page.Text{"Daily Grind", "Bean Weekly"}}
	return p
}

func TestRender_Idempotent(t *testing.T) {
	for _, preset := range page.Presets {
		for name, p := range map[string]*page.StructuredPage{"landing": fullLanding(), "product": pagetest.ProductPage()} {
			t.Run(string(preset)+"/"+name, func(t *testing.T) {
				a, err := render.Render(p, preset)
				require.NoError(t, err)
				b, err := render.Render(p, preset)
				require.NoError(t, err)
				assert.Equal(t, a, b)
				assert.Equal(t, render.HTML(a), render.HTML(b))
			})
		}
	}
}

func TestRender_CanonicalLandingOrder(t *testing.T) {
	a, err := render.Render(fullLanding(), page.Bold)
	require.NoError(t, err)

	last := -1
	for _, key := range render.LandingOrder() {
		i := strings.Index(a.ComponentCode, `data-section="`+key+`"`)
		require.NotEqual(t, -1, i, "section %s not rendered", key)
		assert.Greater(t, i, last, "section %s out of order", key)
		last = i
	}
	assert.Equal(t,
		[]string{"nav", "hero", "team", "logoBar", "faq", "features", "stats", "newsletter", "pricing", "testimonials", "ctaBanner", "footer"},
		render.LandingOrder())
	assert.Equal(t, []string{"nav", "productSection", "reviews", "relatedProducts", "footer"}, render.ProductOrder())
}

func TestRender_LandingBlocksMatchInput(t *testing.T) {
	p := pagetest.Landing()
	a, err := render.Render(p, page.Bold)
	require.NoError(t, err)
	code := a.ComponentCode

	assert.Equal(t, 1, strings.Count(code, "<nav "))
	assert.Equal(t, 1, strings.Count(code, `data-section="hero"`))
	assert.Equal(t, 1, strings.Count(code, `data-section="features"`))
	assert.Equal(t, len(p.Landing.Features.Features), strings.Count(code, `data-card="feature"`))
	assert.Equal(t, len(p.Landing.Pricing.Tiers), strings.Count(code, `data-card="tier"`))
	assert.Equal(t, len(p.Landing.Testimonials.Testimonials), strings.Count(code, `data-card="testimonial"`))
	assert.Equal(t, len(p.Landing.Stats.Items), strings.Count(code, `data-card="stat"`))
	assert.Equal(t, 1, strings.Count(code, "<footer "))
	assert.Equal(t, len(p.Landing.Footer.Columns), strings.Count(code, `data-card="footer-column"`))
	assert.Equal(t, 1, strings.Count(code, "MOST POPULAR"))
	assert.Contains(t, code, "Morning Ritual")
	assert.Contains(t, code, ">48<")
	assert.Equal(t, "Morning Ritual Coffee", a.Title)
}

func TestRender_OmitsAbsentOptionalSections(t *testing.T) {
	p := pagetest.Landing()
	p.Landing.Stats = &page.Stats{Heading: "Empty"}
	a, err := render.Render(p, page.Bold)
	require.NoError(t, err)

	for _, key := range []string{"faq", "stats", "newsletter", "team", "logoBar"} {
		assert.NotContains(t, a.ComponentCode, `data-section="`+key+`"`)
	}
	assert.NotContains(t, a.ComponentCode, "Empty")
}

func TestRender_Product(t *testing.T) {
	p := pagetest.ProductPage()
	a, err := render.Render(p, page.Luxury)
	require.NoError(t, err)
	code := a.ComponentCode

	assert.Contains(t, code, `data-section="productSection"`)
	assert.Equal(t, 2, strings.Count(code, `data-card="review"`))
	assert.Equal(t, 1, strings.Count(code, `data-card="related"`))
	assert.NotContains(t, code, `data-section="footer"`)
	assert.Contains(t, code, "shopping_bag")
	assert.Contains(t, code, "Home / Products")
	assert.Contains(t, code, "(128 reviews)")
	assert.Contains(t, code, "4.8")

	// Main image plus up to three thumbnails.
	assert.Contains(t, code, "headphones,studio")
	assert.NotContains(t, code, "headphones,case")

	assert.Contains(t, a.CSSCode, ".swatch-0 { background-color: #000000; }")
	assert.Contains(t, a.CSSCode, ".swatch-1 { background-color: #ffffff; }")
	assert.Contains(t, a.CSSCode, ".accent-bg { background-color: #22c55e; }")
}

func TestRender_ProductListsAreCapped(t *testing.T) {
	p := pagetest.ProductPage()
	r := p.Product.Reviews
	for len(r.Reviews) < 6 {
		r.Reviews = append(r.Reviews, r.Reviews[0])
	}
	rp := p.Product.RelatedProducts
	for len(rp.Items) < 6 {
		rp.Items = append(rp.Items, rp.Items[0])
	}

	a, err := render.Render(p, page.Bold)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(a.ComponentCode, `data-card="review"`))
	assert.Equal(t, 4, strings.Count(a.ComponentCode, `data-card="related"`))
}

func TestRender_EscapesFreeText(t *testing.T) {
	p := pagetest.Landing()
	p.Title = `<b>Morning & "Ritual"</b>`
	p.Landing.Hero.Headline = `<script>alert("x")</script>`
	p.Landing.Hero.Subheadline = "${window.x} {user.name} `tick`"

	a, err := render.Render(p, page.Bold)
	require.NoError(t, err)

	assert.NotContains(t, a.ComponentCode, "<script>")
	assert.Contains(t, a.ComponentCode, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;")
	assert.Contains(t, a.ComponentCode, "&#36;&#123;window.x&#125; &#123;user.name&#125; &#96;tick&#96;")

	doc := render.HTML(a)
	assert.NotContains(t, doc, "<script>alert")
	assert.Contains(t, doc, "<title>&lt;b&gt;Morning &amp; &#34;Ritual&#34;&lt;/b&gt;</title>")
}

func TestRender_UnsafeURLsAreNeutralised(t *testing.T) {
	p := pagetest.Landing()
	p.Landing.Nav.Links = []page.Link{{Label: "Evil", Href: "javascript:alert(1)"}, {Label: "Ok", Href: "/menu"}}
	p.Landing.Hero.BackgroundImage = "data:text/html;base64,AAAA"

	a, err := render.Render(p, page.Bold)
	require.NoError(t, err)
	assert.NotContains(t, a.ComponentCode, "javascript:")
	assert.NotContains(t, a.ComponentCode, "data:text")
	assert.Contains(t, a.ComponentCode, `href="/menu"`)
}

func TestRender_AccentColor(t *testing.T) {
	p := pagetest.Landing()
	a, err := render.Render(p, page.Bold)
	require.NoError(t, err)
	assert.Contains(t, a.CSSCode, ".accent-bg { background-color: #c2410c; }")

	p.Landing.Nav.AccentColor = "red; } body { display: none"
	a, err = render.Render(p, page.Luxury)
	require.NoError(t, err)
	assert.Contains(t, a.CSSCode, ".accent-bg { background-color: #fcd34d; }")
	assert.NotContains(t, a.CSSCode, "display: none")

	p.Landing.Nav.AccentColor = "Teal"
	a, err = render.Render(p, page.Luxury)
	require.NoError(t, err)
	assert.Contains(t, a.CSSCode, ".accent-text { color: teal; }")
}

func TestRender_UnknownPresetUsesBold(t *testing.T) {
	p := pagetest.Landing()
	want, err := render.Render(p, page.Bold)
	require.NoError(t, err)
	got, err := render.Render(p, page.Preset("neon"))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		page *page.StructuredPage
	}{
		{name: "nil page", page: nil},
		{name: "landing without body", page: &page.StructuredPage{PageType: page.Landing, Title: "T"}},
		{name: "product without body", page: &page.StructuredPage{PageType: page.Product, Title: "T"}},
		{name: "unknown type", page: &page.StructuredPage{PageType: "blog", Title: "T"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := render.Render(tc.page, page.Bold)
			var re *render.RenderError
			require.ErrorAs(t, err, &re)
		})
	}
}

func TestRender_DegenerateRequiredSectionsDoNotPanic(t *testing.T) {
	p := &page.StructuredPage{PageType: page.Landing, Title: "Bare", Landing: &page.LandingPage{}}
	a, err := render.Render(p, page.Playful)
	require.NoError(t, err)
	assert.Contains(t, a.ComponentCode, `data-section="footer"`)
	assert.NotContains(t, a.ComponentCode, `data-card=`)
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{5, "★★★★★"},
		{4, "★★★★☆"},
		{4.4, "★★★★☆"},
		{4.5, "★★★★★"},
		{0, "☆☆☆☆☆"},
		{7, "★★★★★"},
		{-2, "☆☆☆☆☆"},
		{math.NaN(), "☆☆☆☆☆"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, render.Stars(tc.rating), "rating %v", tc.rating)
	}
}

func TestHTML_Document(t *testing.T) {
	a, err := render.Render(pagetest.Landing(), page.Bold)
	require.NoError(t, err)
	doc := render.HTML(a)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>Morning Ritual Coffee</title>")
	assert.Contains(t, doc, `<script type="text/babel" data-presets="react">`)
	assert.Contains(t, doc, "@babel/standalone@7.23.4")
	assert.Contains(t, doc, "React.createElement(App)")
	assert.Contains(t, doc, a.ComponentCode)
	assert.Contains(t, doc, "<style>"+a.CSSCode+"</style>")
}

func TestCache(t *testing.T) {
	c, err := render.NewCache(4)
	require.NoError(t, err)

	p := pagetest.Landing()
	want, err := render.Render(p, page.Bold)
	require.NoError(t, err)

	got, err := c.Render(p, page.Bold)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	got, err = c.Render(pagetest.Landing(), page.Bold)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, c.Len())

	_, err = c.Render(p, page.Minimalist)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	// Unknown presets share the bold entry.
	_, err = c.Render(p, page.Preset("neon"))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = c.Render(&page.StructuredPage{PageType: page.Landing, Title: "T"}, page.Bold)
	require.Error(t, err)
	assert.Equal(t, 2, c.Len())

	var nilCache *render.Cache
	got, err = nilCache.Render(p, page.Bold)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

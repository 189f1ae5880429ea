package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/page/pagetest"
)

func TestMerge_KeepsOriginalWhenProposalOmitsSections(t *testing.T) {
	original := pagetest.Landing()
	original.Landing.FAQ = &page.FAQ{Heading: "FAQ", Items: []page.FAQItem{{Question: "Q", Answer: "A"}}}
	proposed := &page.StructuredPage{
		PageType: page.Landing,
		Title:    "Morning Ritual",
		Landing: &page.LandingPage{
			Team: &page.Team{Heading: "Baristas", Members: []page.Member{{Name: "Eve", Role: "Head barista"}}},
		},
	}

	merged := page.Merge(original, proposed)

	require.NotNil(t, merged.Landing)
	assert.Equal(t, original.Landing.Nav, merged.Landing.Nav)
	assert.Equal(t, original.Landing.Hero, merged.Landing.Hero)
	assert.Equal(t, original.Landing.Features, merged.Landing.Features)
	assert.Equal(t, original.Landing.Pricing, merged.Landing.Pricing)
	assert.Equal(t, original.Landing.Testimonials, merged.Landing.Testimonials)
	assert.Equal(t, original.Landing.FAQ, merged.Landing.FAQ)
	assert.Equal(t, original.Landing.Stats, merged.Landing.Stats)
	assert.Equal(t, original.Landing.CTABanner, merged.Landing.CTABanner)
	assert.Equal(t, original.Landing.Footer, merged.Landing.Footer)
	assert.Equal(t, proposed.Landing.Team, merged.Landing.Team)
	assert.Equal(t, "Morning Ritual", merged.Title)
}

func TestMerge_EmptyGatingFieldsDoNotReplace(t *testing.T) {
	original := pagetest.Landing()
	proposed := &page.StructuredPage{
		PageType: page.Landing,
		Title:    "",
		Landing: &page.LandingPage{
			Nav:          &page.Nav{Logo: "New logo"},
			Hero:         &page.Hero{Headline: "  ", Subheadline: "changed"},
			Features:     &page.Features{Heading: "New", Features: []page.Feature{}},
			Pricing:      &page.Pricing{Heading: "New"},
			Testimonials: &page.Testimonials{Heading: "New"},
			Stats:        &page.Stats{Heading: "New"},
			CTABanner:    &page.CTABanner{Subtext: "changed"},
			Footer:       &page.Footer{Logo: "New"},
		},
	}

	merged := page.Merge(original, proposed)

	assert.Equal(t, original.Landing, merged.Landing)
	assert.Equal(t, original.Title, merged.Title)
}

func TestMerge_ReplacesSectionsWithContent(t *testing.T) {
	original := pagetest.Landing()
	hero := &page.Hero{Headline: "A new dawn"}
	pricing := &page.Pricing{Heading: "Plans", Tiers: []page.Tier{{Name: "Solo", Price: "$5"}}}
	newsletter := &page.Newsletter{Heading: "Stay in the loop"}
	logos := &page.LogoBar{Logos: []page.Text{"Acme"}}
	proposed := &page.StructuredPage{
		PageType: page.Landing,
		Title:    "Morning Ritual 2",
		Preset:   page.Luxury,
		Landing: &page.LandingPage{
			Hero:       hero,
			Pricing:    pricing,
			Newsletter: newsletter,
			LogoBar:    logos,
		},
	}

	merged := page.Merge(original, proposed)

	assert.Same(t, hero, merged.Landing.Hero)
	assert.Same(t, pricing, merged.Landing.Pricing)
	assert.Same(t, newsletter, merged.Landing.Newsletter)
	assert.Same(t, logos, merged.Landing.LogoBar)
	assert.Equal(t, "Morning Ritual 2", merged.Title)
	assert.Equal(t, original.Preset, merged.Preset)
	assert.Equal(t, page.Landing, merged.PageType)
}

func TestMerge_ProductSections(t *testing.T) {
	original := pagetest.ProductPage()

	t.Run("product section needs title and images", func(t *testing.T) {
		proposed := &page.StructuredPage{
			PageType: page.Product,
			Title:    "Aero",
			Product: &page.ProductPage{
				ProductSection: &page.ProductSection{Title: "Aero Two"},
			},
		}
		merged := page.Merge(original, proposed)
		assert.Equal(t, original.Product.ProductSection, merged.Product.ProductSection)
		assert.Equal(t, original.Product.Reviews, merged.Product.Reviews)
	})

	t.Run("complete proposals replace", func(t *testing.T) {
		section := &page.ProductSection{Title: "Aero Two", Images: []string{"https://loremflickr.com/800/800/headphones"}}
		related := &page.RelatedProducts{Items: []page.RelatedItem{{Title: "Cable"}}}
		footer := &page.Footer{Columns: []page.FooterColumn{{Heading: "Help"}}}
		proposed := &page.StructuredPage{
			PageType: page.Product,
			Title:    "Aero",
			Product: &page.ProductPage{
				ProductSection:  section,
				RelatedProducts: related,
				Footer:          footer,
			},
		}
		merged := page.Merge(original, proposed)
		assert.Same(t, section, merged.Product.ProductSection)
		assert.Same(t, related, merged.Product.RelatedProducts)
		assert.Same(t, footer, merged.Product.Footer)
		assert.Equal(t, original.Product.Nav, merged.Product.Nav)
	})
}

func TestMerge_PageTypeComesFromOriginal(t *testing.T) {
	original := pagetest.ProductPage()
	proposed := pagetest.Landing()

	merged := page.Merge(original, proposed)

	assert.Equal(t, page.Product, merged.PageType)
	assert.Nil(t, merged.Landing)
	assert.Equal(t, original.Product.ProductSection, merged.Product.ProductSection)
	assert.Equal(t, proposed.Title, merged.Title)
}

func TestMerge_OriginalWithoutBodyReturnsProposal(t *testing.T) {
	original := &page.StructuredPage{PageType: page.Landing, Title: "Empty"}
	proposed := pagetest.Landing()

	assert.Same(t, proposed, page.Merge(original, proposed))
}

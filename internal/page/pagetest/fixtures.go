// Package pagetest provides fully populated pages for tests.
package pagetest

import (
	"encoding/json"

	"storefront_ai_server/internal/page"
)

// LandingJSON is a landing page with every required section populated plus
// a stats section.
const LandingJSON = `{
  "pageType": "landing",
  "title": "Morning Ritual Coffee",
  "landing": {
    "nav": {
      "logo": "Morning Ritual",
      "links": [
        {"label": "Menu", "href": "#features"},
        {"label": "Pricing", "href": "#pricing"},
        {"label": "Reviews", "href": "#testimonials"}
      ],
      "ctaLabel": "Order now",
      "accentColor": "#c2410c"
    },
    "hero": {
      "headline": "Coffee worth waking up for",
      "subheadline": "Small-batch roasts brewed by people who care.",
      "primaryCta": "Find a cafe",
      "secondaryCta": "See the menu",
      "backgroundImage": "https://loremflickr.com/1600/900/coffee,cafe"
    },
    "features": {
      "sectionLabel": "WHY US",
      "heading": "Crafted every morning",
      "features": [
        {"icon": "☕", "title": "Fresh roasts", "description": "Roasted in house every week."},
        {"icon": "🥐", "title": "Baked daily", "description": "Pastries from our own oven."},
        {"icon": "🌱", "title": "Direct trade", "description": "We know every farmer by name."},
        {"icon": "🚲", "title": "Bike delivery", "description": "Hot coffee at your door."}
      ]
    },
    "pricing": {
      "sectionLabel": "PLANS",
      "heading": "Subscribe and save",
      "tiers": [
        {"name": "Taster", "price": "$12", "period": "month", "features": ["1 bag"], "ctaLabel": "Start", "highlighted": false},
        {"name": "Regular", "price": "$24", "period": "month", "features": ["2 bags", "Free shipping"], "ctaLabel": "Start", "highlighted": true},
        {"name": "Roaster", "price": 48, "period": "month", "features": ["4 bags", "Free shipping", "Merch"], "ctaLabel": "Start", "highlighted": false}
      ]
    },
    "testimonials": {
      "sectionLabel": "REVIEWS",
      "heading": "Regulars say",
      "testimonials": [
        {"quote": "Best flat white in town.", "name": "Ana", "role": "Designer", "avatar": "https://loremflickr.com/96/96/portrait,face"},
        {"quote": "My mornings run on this.", "name": "Ben", "role": "Nurse", "avatar": "https://loremflickr.com/96/96/portrait,face"}
      ]
    },
    "stats": {
      "heading": "By the numbers",
      "items": [
        {"label": "Cups poured", "value": "1M+"},
        {"label": "Cafes", "value": 12}
      ]
    },
    "ctaBanner": {
      "headline": "Your first bag is on us",
      "subtext": "Try any roast free with a subscription.",
      "ctaLabel": "Claim it"
    },
    "footer": {
      "logo": "Morning Ritual",
      "columns": [
        {"heading": "Shop", "links": [{"label": "Beans", "href": "#"}, {"label": "Gear", "href": "#"}]},
        {"heading": "Company", "links": [{"label": "About", "href": "#"}]},
        {"heading": "Help", "links": [{"label": "Contact", "href": "#"}]}
      ],
      "copyright": "© 2026 Morning Ritual"
    }
  }
}`

// ProductJSON is a product page with reviews and related products.
const ProductJSON = `{
  "pageType": "product",
  "title": "Aero Headphones",
  "product": {
    "nav": {
      "logo": "Aero",
      "links": [{"label": "Details", "href": "#details"}, {"label": "Reviews", "href": "#reviews"}],
      "ctaLabel": "Shop",
      "accentColor": "#22c55e"
    },
    "productSection": {
      "title": "Aero One",
      "description": "Wireless headphones with all-day comfort.",
      "price": "$199",
      "originalPrice": "$249",
      "images": [
        "https://loremflickr.com/1200/1200/headphones,audio",
        "https://loremflickr.com/800/800/headphones,audio",
        "https://loremflickr.com/800/800/headphones,music",
        "https://loremflickr.com/800/800/headphones,studio",
        "https://loremflickr.com/800/800/headphones,case"
      ],
      "colors": ["#000000", "#ffffff"],
      "sizes": ["S", "M", "L"],
      "ctaLabel": "Add to cart"
    },
    "reviews": {
      "heading": "What listeners say",
      "summaryText": "Loved by commuters",
      "averageRating": 4.8,
      "reviewCount": 128,
      "reviews": [
        {"name": "Cam", "avatar": "https://loremflickr.com/96/96/portrait,face", "rating": 5, "title": "Great", "text": "Superb sound."},
        {"name": "Dee", "avatar": "https://loremflickr.com/96/96/portrait,face", "rating": 4, "title": "Comfy", "text": "Wear them all day."}
      ]
    },
    "relatedProducts": {
      "heading": "You may also like",
      "items": [
        {"title": "Aero Case", "image": "https://loremflickr.com/600/600/case", "price": "$29"}
      ]
    }
  }
}`

// Landing returns a fresh decoded copy of LandingJSON.
func Landing() *page.StructuredPage { return decode(LandingJSON) }

// ProductPage returns a fresh decoded copy of ProductJSON.
func ProductPage() *page.StructuredPage { return decode(ProductJSON) }

func decode(s string) *page.StructuredPage {
	var p page.StructuredPage
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		panic(err)
	}
	return &p
}

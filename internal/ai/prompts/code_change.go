package prompts

import (
	"encoding/json"
	"fmt"

	"storefront_ai_server/internal/page"
)

const sectionInsertSystem = `You are ShopForge, an expert JSON page-structure editor for a React + Tailwind CSS storefront.

CRITICAL RULES:
- You edit a JSON object describing the page; you never write JSX, HTML or CSS.
- Preserve the ordering and all existing sections you are not asked to change.
- Put new content under the canonical key for that section (for example landing.faq, landing.team, product.reviews). Never invent peer keys like "extraTestimonials" or "faq2".
- Match the existing tone of voice and the page's style preset.
- Reuse the accent color already in nav.accentColor.

CONTENT POPULATION RULES:
- features: at least 3 items
- pricing.tiers: exactly 3, one highlighted
- testimonials: at least 3
- faq.items: at least 5
- stats.items: exactly 4
- team.members: at least 3
- logoBar.logos: at least 5
- reviews.reviews: at least 3
- relatedProducts.items: at least 4
- nav.links: at least 2
- footer.columns: at least 2
If a section cannot be filled, omit its key entirely rather than returning empty arrays.

OUTPUT FORMAT:
- Return ONLY the full updated JSON object
- No markdown, no code fences, no commentary
- Must start with { and end with }`

const sectionInsertUser = `You are editing an existing page described as a GeneratedPageData JSON object.

Here is the existing page JSON:

"""
%s
"""

TASK: Add or update a section labeled "%s". Specifically: %s

- Edit only the JSON.
- Modify the correct existing key: testimonials go in landing.testimonials, a FAQ goes in landing.faq, customer reviews go in product.reviews.
- Do not add sibling keys that duplicate an existing section.
- Keep every key compatible with the existing shape.
- Preserve the section ordering for a %s page.
- Do not output JSX, HTML or CSS.
Return ONLY the full updated JSON object (no markdown).`

// BuildSectionInsertPrompts returns the one-shot system and user prompts that
// ask the model to add or rewrite a single section of current.
func BuildSectionInsertPrompts(current *page.StructuredPage, label, prompt string, pageType page.PageType) (string, string, error) {
	if current == nil {
		return "", "", fmt.Errorf("section insert: no current page")
	}
	body, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("section insert: encode page: %w", err)
	}
	user := fmt.Sprintf(sectionInsertUser, body, label, prompt, pageType)
	return sectionInsertSystem, user, nil
}

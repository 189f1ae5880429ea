package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/render"
	"storefront_ai_server/internal/types"
)

// Anchor is the last known output a refinement is grounded on. Page wins
// over Code when both are set.
type Anchor struct {
	Page *page.StructuredPage
	Code *render.Artifact
}

func (a Anchor) json() (string, bool) {
	if a.Page != nil {
		b, err := json.Marshal(a.Page)
		if err == nil {
			return string(b), true
		}
	}
	if a.Code != nil && (a.Code.ComponentCode != "" || a.Code.CSSCode != "") {
		b, err := json.Marshal(struct {
			ComponentCode string `json:"componentCode"`
			CSSCode       string `json:"cssCode"`
			Title         string `json:"title"`
		}{a.Code.ComponentCode, a.Code.CSSCode, a.Code.Title})
		if err == nil {
			return string(b), true
		}
	}
	return "", false
}

// BuildRefinementFrame collapses a conversation into the three turns a
// refinement needs: the original request, a synthetic assistant turn holding
// the anchor as JSON, and the new request. Without an anchor only latest is
// sent.
func BuildRefinementFrame(history []types.Message, latest types.Message, anchor Anchor) []types.Message {
	data, ok := anchor.json()
	if !ok {
		return []types.Message{latest}
	}

	first := latest
	for _, m := range history {
		if m.Role == types.RoleUser && strings.TrimSpace(m.Content) != "" {
			first = m
			break
		}
	}
	return []types.Message{
		first,
		{Role: types.RoleAssistant, Content: data},
		latest,
	}
}

// BuildMessages converts caller turns into provider messages. The first user
// turn carries the reference URL and the generation directive, later user
// turns are wrapped as refinements and assistant turns pass through.
// Blank turns are dropped.
func BuildMessages(turns []types.Message, pageType page.PageType, referenceURL, digest string) []llm.Message {
	out := make([]llm.Message, 0, len(turns))
	seenUser := false
	for _, t := range turns {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		switch t.Role {
		case types.RoleAssistant:
			out = append(out, llm.Message{Role: llm.RoleAssistant, Content: t.Content})
		default:
			content := refinement(t.Content)
			if !seenUser {
				content = firstTurn(t.Content, pageType, referenceURL, digest)
				seenUser = true
			}
			out = append(out, llm.Message{Role: llm.RoleUser, Content: content})
		}
	}
	return out
}

func pageNoun(pageType page.PageType) string {
	if pageType == page.Product {
		return "product page"
	}
	return "landing page"
}

func firstTurn(content string, pageType page.PageType, referenceURL, digest string) string {
	var b strings.Builder
	if referenceURL != "" {
		fmt.Fprintf(&b, "Design inspiration reference: %s\n\n", referenceURL)
		if digest != "" {
			fmt.Fprintf(&b, "Reference page summary (structure and tone only, do not copy text):\n%s\n\n", digest)
		}
	}
	b.WriteString(content)
	fmt.Fprintf(&b, `

Generate a premium %s that feels like a world-class SaaS marketing site (Stripe / Linear / Vercel quality).

IMPORTANT:
- You must NOT output any JSX, HTML, or CSS.
- Instead, fill the JSON shape described above for pageType = "%s".
- All copy must be realistic and on-brand. No lorem ipsum.
- Every image URL must use https://loremflickr.com/WIDTH/HEIGHT/keyword1,keyword2 with keywords that describe the actual product or brand.
- For avatar images always use /96/96/portrait,face or /128/128/portrait,professional, never product keywords.
- Colors should be Tailwind color names or hex values and should respect the style preset.`, pageNoun(pageType), pageType)
	return b.String()
}

func refinement(content string) string {
	return "Refinement request: " + content + `

Apply ONLY this specific change to the existing JSON page data you returned earlier.
- Keep the overall section structure identical.
- If the user asks to change color, update color-related fields consistently across nav/hero/sections.
- If the user asks to change copy or button labels, update only the relevant text fields.
- On PRODUCT pages, treat requests like "add a buy button at the end" or "change the buy button text" as updates to product.productSection.ctaLabel (e.g. set it to "Buy Now").
Return ONLY the full updated JSON object starting with { and ending with }.`
}

package page

import "strings"

type section interface {
	Present() bool
}

// pick keeps the proposed section when it carries content, else the original.
func pick[T section](proposed, original T) T {
	if proposed.Present() {
		return proposed
	}
	return original
}

// Merge reconciles a model-proposed page against the original one section at
// a time. A proposed section replaces the original only when it carries
// content; otherwise the original survives. Sections are chosen wholesale,
// never merged field by field. When the original has no body for its page
// type, the proposed page is returned unchanged.
func Merge(original, proposed *StructuredPage) *StructuredPage {
	if original == nil {
		return proposed
	}
	if proposed == nil {
		return original
	}

	title := original.Title
	if strings.TrimSpace(proposed.Title) != "" {
		title = proposed.Title
	}

	switch original.PageType {
	case Landing:
		if original.Landing == nil {
			return proposed
		}
		next := proposed.Landing
		if next == nil {
			next = &LandingPage{}
		}
		return &StructuredPage{
			PageType: original.PageType,
			Title:    title,
			Preset:   original.Preset,
			Landing:  mergeLanding(original.Landing, next),
		}
	case Product:
		if original.Product == nil {
			return proposed
		}
		next := proposed.Product
		if next == nil {
			next = &ProductPage{}
		}
		return &StructuredPage{
			PageType: original.PageType,
			Title:    title,
			Preset:   original.Preset,
			Product:  mergeProduct(original.Product, next),
		}
	}
	return proposed
}

func mergeLanding(orig, next *LandingPage) *LandingPage {
	return &LandingPage{
		Nav:          pick(next.Nav, orig.Nav),
		Hero:         pick(next.Hero, orig.Hero),
		Features:     pick(next.Features, orig.Features),
		Pricing:      pick(next.Pricing, orig.Pricing),
		Testimonials: pick(next.Testimonials, orig.Testimonials),
		FAQ:          pick(next.FAQ, orig.FAQ),
		Stats:        pick(next.Stats, orig.Stats),
		Newsletter:   pick(next.Newsletter, orig.Newsletter),
		Team:         pick(next.Team, orig.Team),
		LogoBar:      pick(next.LogoBar, orig.LogoBar),
		CTABanner:    pick(next.CTABanner, orig.CTABanner),
		Footer:       pick(next.Footer, orig.Footer),
	}
}

func mergeProduct(orig, next *ProductPage) *ProductPage {
	return &ProductPage{
		Nav:             pick(next.Nav, orig.Nav),
		ProductSection:  pick(next.ProductSection, orig.ProductSection),
		Reviews:         pick(next.Reviews, orig.Reviews),
		RelatedProducts: pick(next.RelatedProducts, orig.RelatedProducts),
		Footer:          pick(next.Footer, orig.Footer),
	}
}

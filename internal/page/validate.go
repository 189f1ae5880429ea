package page

import "strings"

// ValidationError names the first required path that is missing or empty.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Path + " " + e.Reason
}

func empty(path string) error { return &ValidationError{Path: path, Reason: "is empty"} }

// Validate checks the required sections of p for its declared page type.
// Optional sections are not inspected; the renderer omits them when empty.
func Validate(p *StructuredPage) error {
	if p == nil {
		return &ValidationError{Path: "page", Reason: "is missing"}
	}
	switch p.PageType {
	case Landing:
		return validateLanding(p.Landing)
	case Product:
		return validateProduct(p.Product)
	default:
		return &ValidationError{Path: "pageType", Reason: "is unknown: " + string(p.PageType)}
	}
}

func validateLanding(l *LandingPage) error {
	if l == nil {
		return &ValidationError{Path: "landing", Reason: "is missing"}
	}
	switch {
	case !l.Nav.Present():
		return empty("nav.links")
	case l.Hero == nil || strings.TrimSpace(l.Hero.Headline) == "":
		return empty("hero.headline")
	case !l.Features.Present():
		return empty("features.features")
	case !l.Pricing.Present():
		return empty("pricing.tiers")
	case !l.Testimonials.Present():
		return empty("testimonials.testimonials")
	case !l.CTABanner.Present():
		return empty("ctaBanner.headline")
	case !l.Footer.Present():
		return empty("footer.columns")
	}
	return nil
}

func validateProduct(p *ProductPage) error {
	if p == nil {
		return &ValidationError{Path: "product", Reason: "is missing"}
	}
	switch {
	case !p.Nav.Present():
		return empty("nav.links")
	case p.ProductSection == nil || strings.TrimSpace(p.ProductSection.Title) == "":
		return empty("productSection.title")
	case len(p.ProductSection.Images) == 0:
		return empty("productSection.images")
	}
	return nil
}

package page

import "strings"

// Each section reports whether it carries enough content to be rendered or
// to replace another copy of itself during a merge. All methods accept a nil
// receiver.

func filled(s string) bool { return strings.TrimSpace(s) != "" }

func (n *Nav) Present() bool { return n != nil && len(n.Links) > 0 }

func (h *Hero) Present() bool { return h != nil && filled(h.Headline) }

func (f *Features) Present() bool { return f != nil && len(f.Features) > 0 }

func (p *Pricing) Present() bool { return p != nil && len(p.Tiers) > 0 }

func (t *Testimonials) Present() bool { return t != nil && len(t.Testimonials) > 0 }

func (f *FAQ) Present() bool { return f != nil && len(f.Items) > 0 }

func (s *Stats) Present() bool { return s != nil && len(s.Items) > 0 }

func (n *Newsletter) Present() bool { return n != nil && filled(n.Heading) }

func (t *Team) Present() bool { return t != nil && len(t.Members) > 0 }

func (l *LogoBar) Present() bool { return l != nil && len(l.Logos) > 0 }

func (c *CTABanner) Present() bool { return c != nil && filled(c.Headline) }

func (f *Footer) Present() bool { return f != nil && len(f.Columns) > 0 }

func (p *ProductSection) Present() bool {
	return p != nil && filled(p.Title) && len(p.Images) > 0
}

func (r *Reviews) Present() bool { return r != nil && len(r.Reviews) > 0 }

func (r *RelatedProducts) Present() bool { return r != nil && len(r.Items) > 0 }

// LandingSections lists the section keys of a landing page.
var LandingSections = []string{
	"nav", "hero", "features", "pricing", "testimonials", "faq",
	"stats", "newsletter", "team", "logoBar", "ctaBanner", "footer",
}

// ProductSections lists the section keys of a product page.
var ProductSections = []string{"nav", "productSection", "reviews", "relatedProducts", "footer"}

// SectionPresent reports whether the section named key is present on p.
// Unknown keys report false.
func (p *StructuredPage) SectionPresent(key string) bool {
	if p == nil {
		return false
	}
	switch p.PageType {
	case Landing:
		l := p.Landing
		if l == nil {
			return false
		}
		switch key {
		case "nav":
			return l.Nav.Present()
		case "hero":
			return l.Hero.Present()
		case "features":
			return l.Features.Present()
		case "pricing":
			return l.Pricing.Present()
		case "testimonials":
			return l.Testimonials.Present()
		case "faq":
			return l.FAQ.Present()
		case "stats":
			return l.Stats.Present()
		case "newsletter":
			return l.Newsletter.Present()
		case "team":
			return l.Team.Present()
		case "logoBar":
			return l.LogoBar.Present()
		case "ctaBanner":
			return l.CTABanner.Present()
		case "footer":
			return l.Footer.Present()
		}
	case Product:
		pp := p.Product
		if pp == nil {
			return false
		}
		switch key {
		case "nav":
			return pp.Nav.Present()
		case "productSection":
			return pp.ProductSection.Present()
		case "reviews":
			return pp.Reviews.Present()
		case "relatedProducts":
			return pp.RelatedProducts.Present()
		case "footer":
			return pp.Footer.Present()
		}
	}
	return false
}

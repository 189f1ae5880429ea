package render

import (
	"storefront_ai_server/internal/page"
)

const labelClass = "text-xs font-bold uppercase tracking-[0.3em] mb-3 "

func sectionHeader(label, heading string, t Theme, margin string) *node {
	return el("div", "text-center "+margin,
		textEl("p", labelClass+t.SectionLabel, label),
		textEl("h2", "text-3xl md:text-4xl font-black "+t.SectionHeading, heading),
	)
}

func card(kind, class string, children ...*node) *node {
	return el("div", class, children...).set("data-card", kind)
}

func navBlock(n *page.Nav, t Theme, cart bool) *node {
	n = orEmpty(n)
	links := el("div", "hidden md:flex items-center gap-8")
	for _, l := range n.Links {
		links.add(link(l.Href, "text-sm font-medium "+t.NavText+" "+t.NavHover+" transition-colors", l.Label))
	}

	var cta *node
	if cart {
		label := n.CTALabel
		if label == "" {
			label = "Cart"
		}
		cta = el("button", "relative px-5 py-2.5 rounded-xl text-sm font-bold flex items-center gap-2 accent-bg "+t.PrimaryBtn,
			textEl("span", "material-symbols-outlined text-sm", "shopping_bag"),
			txt(label),
		)
	} else {
		cta = textEl("button", "px-5 py-2.5 rounded-xl text-sm font-bold accent-bg "+t.PrimaryBtn, n.CTALabel)
	}

	return el("nav", "fixed top-0 w-full z-50 backdrop-blur-md border-b "+t.NavBorder+" "+t.NavBg,
		el("div", "max-w-6xl mx-auto px-4 h-16 flex items-center justify-between",
			textEl("span", "text-xl font-black", n.Logo),
			links,
			cta,
		),
	)
}

func heroBlock(h *page.Hero, t Theme) *node {
	h = orEmpty(h)
	sec := el("section", "relative overflow-hidden min-h-[80vh] flex flex-col items-center justify-center text-center px-4 "+t.HeroBg).
		set("id", "hero")
	if h.BackgroundImage != "" {
		sec.add(img(h.BackgroundImage, "", "absolute inset-0 w-full h-full object-cover opacity-30"))
	}
	return sec.add(el("div", "relative max-w-5xl mx-auto",
		textEl("h1", "text-5xl md:text-7xl font-black mb-6 "+t.HeroHeadline, h.Headline),
		textEl("p", "text-lg md:text-2xl mb-10 max-w-2xl mx-auto "+t.HeroSub, h.Subheadline),
		el("div", "flex flex-col sm:flex-row gap-4 justify-center",
			textEl("button", "px-8 py-3 rounded-xl font-bold text-sm accent-bg "+t.PrimaryBtn, h.PrimaryCTA),
			textEl("button", "px-8 py-3 rounded-xl font-bold text-sm "+t.SecondaryBtn, h.SecondaryCTA),
		),
	))
}

func teamBlock(tm *page.Team, t Theme) *node {
	if !tm.Present() {
		return nil
	}
	grid := el("div", "grid grid-cols-1 md:grid-cols-3 gap-8")
	for _, m := range tm.Members {
		grid.add(card("member", "rounded-2xl p-6 "+t.CardBg,
			img(m.Avatar, m.Name, "w-16 h-16 rounded-full object-cover mb-4"),
			textEl("p", "text-sm font-bold mb-1", m.Name),
			textEl("p", "text-xs mb-3 "+t.SectionLabel, m.Role),
			textEl("p", "text-sm leading-relaxed "+t.CardText, m.Bio),
		))
	}
	return el("section", "py-24 px-4",
		el("div", "max-w-6xl mx-auto", sectionHeader("TEAM", tm.Heading, t, "mb-12"), grid),
	).set("id", "team")
}

func logoBarBlock(lb *page.LogoBar, t Theme) *node {
	if !lb.Present() {
		return nil
	}
	row := el("div", "flex flex-wrap justify-center gap-6 md:gap-10")
	for _, name := range lb.Logos {
		row.add(textEl("span", "text-sm md:text-base font-semibold "+t.CardText, name.String()).set("data-card", "logo"))
	}
	return el("section", "py-16 px-4 border-y "+t.FooterBg,
		el("div", "max-w-6xl mx-auto flex flex-col md:flex-row items-center justify-between gap-6",
			textEl("p", "text-xs font-bold uppercase tracking-[0.3em] "+t.SectionLabel, lb.Heading),
			row,
		),
	).set("id", "logos")
}

func faqBlock(f *page.FAQ, t Theme) *node {
	if !f.Present() {
		return nil
	}
	label := f.SectionLabel
	if label == "" {
		label = "FAQ"
	}
	list := el("div", "space-y-4")
	for _, item := range f.Items {
		list.add(card("faq", "rounded-2xl p-5 "+t.TestimonialCard,
			textEl("p", "text-sm font-semibold mb-2 "+t.SectionHeading, item.Question.String()),
			textEl("p", "text-sm leading-relaxed "+t.CardText, item.Answer.String()),
		))
	}
	return el("section", "py-24 px-4",
		el("div", "max-w-4xl mx-auto", sectionHeader(label, f.Heading, t, "mb-12"), list),
	).set("id", "faq")
}

func featuresBlock(f *page.Features, t Theme) *node {
	f = orEmpty(f)
	grid := el("div", "grid grid-cols-1 md:grid-cols-3 gap-8")
	for _, ft := range f.Features {
		grid.add(card("feature", "rounded-2xl p-8 hover:-translate-y-2 transition-transform "+t.CardBg,
			textEl("span", "text-4xl mb-4 block", ft.Icon),
			textEl("h3", "text-xl font-bold mb-3", ft.Title),
			textEl("p", "text-sm leading-relaxed "+t.CardText, ft.Description),
		))
	}
	return el("section", "py-24 px-4",
		el("div", "max-w-6xl mx-auto", sectionHeader(f.SectionLabel, f.Heading, t, "mb-16"), grid),
	).set("id", "features")
}

func statsBlock(s *page.Stats, t Theme) *node {
	if !s.Present() {
		return nil
	}
	grid := el("div", "grid grid-cols-2 md:grid-cols-4 gap-6")
	for _, st := range s.Items {
		grid.add(card("stat", "text-center",
			textEl("p", "text-3xl md:text-4xl font-black mb-1 "+t.SectionHeading, st.Value.String()),
			textEl("p", "text-xs uppercase tracking-[0.25em] "+t.SectionLabel, st.Label.String()),
		))
	}
	return el("section", "py-16 px-4",
		el("div", "max-w-6xl mx-auto", sectionHeader("STATS", s.Heading, t, "mb-10"), grid),
	).set("id", "stats")
}

func newsletterBlock(n *page.Newsletter, t Theme) *node {
	if !n.Present() {
		return nil
	}
	input := el("input", "w-full sm:w-80 px-4 py-3 rounded-xl border text-sm outline-none "+t.FooterBg+" "+t.PageText).
		set("type", "email").
		set("placeholder", n.Placeholder)
	return el("section", "py-24 px-4",
		el("div", "max-w-3xl mx-auto text-center",
			textEl("p", labelClass+t.SectionLabel, "NEWSLETTER"),
			textEl("h2", "text-3xl md:text-4xl font-black mb-3 "+t.SectionHeading, n.Heading),
			textEl("p", "text-sm md:text-base mb-6 "+t.CardText, n.Subtext),
			el("div", "flex flex-col sm:flex-row gap-3 justify-center",
				input,
				textEl("button", "px-6 py-3 rounded-xl font-bold text-sm accent-bg "+t.PrimaryBtn, n.ButtonLabel),
			),
		),
	).set("id", "newsletter")
}

func pricingBlock(p *page.Pricing, t Theme) *node {
	p = orEmpty(p)
	grid := el("div", "grid grid-cols-1 md:grid-cols-3 gap-8 items-stretch")
	for _, tier := range p.Tiers {
		class, btn := "rounded-2xl p-8 "+t.PricingNormal, "w-full py-3 rounded-xl font-bold text-sm border accent-border bg-transparent "+t.SecondaryBtn
		var badge *node
		if tier.Highlighted {
			class = "rounded-2xl p-8 scale-105 shadow-lg shadow-black/40 " + t.PricingHighlight
			btn = "w-full py-3 rounded-xl font-bold text-sm border accent-border accent-bg " + t.PrimaryBtn
			badge = textEl("span", "inline-flex items-center px-3 py-1 rounded-full text-[10px] font-bold tracking-[0.2em] bg-amber-500/10 text-amber-300 border border-amber-400/40 mb-4", "MOST POPULAR")
		}
		perks := el("ul", "space-y-2 mb-6 text-sm "+t.CardText)
		for _, f := range tier.Features {
			perks.add(el("li", "flex items-center gap-2", textEl("span", "text-emerald-400", "✓"), txt(f.String())))
		}
		var period *node
		if tier.Period != "" {
			period = textEl("span", "text-sm "+t.SectionLabel, "/"+tier.Period)
		}
		grid.add(card("tier", class,
			badge,
			textEl("h3", "text-2xl font-black mb-2 "+t.SectionHeading, tier.Name),
			el("div", "mb-6", textEl("span", "text-4xl font-black "+t.SectionHeading, tier.Price.String()), period),
			perks,
			textEl("button", btn, tier.CTALabel),
		))
	}
	return el("section", "py-24 px-4",
		el("div", "max-w-6xl mx-auto", sectionHeader(p.SectionLabel, p.Heading, t, "mb-16"), grid),
	).set("id", "pricing")
}

func testimonialsBlock(ts *page.Testimonials, t Theme) *node {
	ts = orEmpty(ts)
	grid := el("div", "grid grid-cols-1 md:grid-cols-3 gap-8")
	for _, q := range ts.Testimonials {
		grid.add(card("testimonial", "rounded-2xl p-8 "+t.TestimonialCard,
			textEl("div", "text-lg mb-4 "+t.StarColor, Stars(5)),
			textEl("p", "italic text-sm mb-6 leading-relaxed "+t.CardText, "\""+q.Quote+"\""),
			el("div", "flex items-center gap-3",
				img(q.Avatar, q.Name, "w-10 h-10 rounded-full object-cover"),
				el("div", "",
					textEl("p", "text-sm font-bold "+t.SectionHeading, q.Name),
					textEl("p", "text-xs "+t.SectionLabel, q.Role),
				),
			),
		))
	}
	return el("section", "py-24 px-4",
		el("div", "max-w-6xl mx-auto", sectionHeader(ts.SectionLabel, ts.Heading, t, "mb-16"), grid),
	).set("id", "testimonials")
}

func ctaBannerBlock(c *page.CTABanner, t Theme) *node {
	c = orEmpty(c)
	return el("section", "py-24 px-4",
		el("div", "max-w-4xl mx-auto text-center rounded-3xl px-8 py-16 "+t.CTABg,
			textEl("h2", "text-3xl md:text-4xl font-black mb-4 "+t.CTAText, c.Headline),
			textEl("p", "text-sm md:text-base mb-8 max-w-2xl mx-auto "+t.CardText, c.Subtext),
			textEl("button", "px-8 py-3 rounded-xl font-bold text-sm accent-bg "+t.PrimaryBtn, c.CTALabel),
		),
	).set("id", "cta")
}

// footerBlock renders the footer; when required is false an absent footer is
// omitted instead of rendered empty.
func footerBlock(f *page.Footer, t Theme, required bool) *node {
	if !required && !f.Present() {
		return nil
	}
	f = orEmpty(f)
	grid := el("div", "grid grid-cols-2 md:grid-cols-4 gap-8 mb-12",
		el("div", "", textEl("span", "text-xl font-black mb-4 block", f.Logo)),
	)
	for _, col := range f.Columns {
		links := el("ul", "space-y-2 text-sm "+t.FooterText)
		for _, l := range col.Links {
			links.add(el("li", "", link(l.Href, "hover:underline transition-colors", l.Label)))
		}
		grid.add(card("footer-column", "",
			textEl("p", "text-xs font-bold uppercase tracking-[0.3em] mb-4 "+t.SectionLabel, col.Heading),
			links,
		))
	}
	return el("footer", "py-16 px-4 mt-16 "+t.FooterBg,
		el("div", "max-w-6xl mx-auto",
			grid,
			el("div", "pt-6", textEl("p", "text-xs "+t.FooterText, f.Copyright)),
		),
	)
}

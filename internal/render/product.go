package render

import (
	"fmt"
	"math"

	"storefront_ai_server/internal/page"
)

const fallbackProductImage = "https://loremflickr.com/1200/1200/product,lifestyle"

var trustBadges = []string{"✓ Free shipping", "✓ Free returns", "✓ 2 year warranty"}

func productBlock(ps *page.ProductSection, r *page.Reviews, t Theme) *node {
	ps = orEmpty(ps)

	main := fallbackProductImage
	if len(ps.Images) > 0 && ps.Images[0] != "" {
		main = ps.Images[0]
	}
	gallery := el("div", "space-y-4",
		el("div", "aspect-square rounded-2xl overflow-hidden "+t.CardBg,
			img(main, ps.Title, "w-full h-full object-cover"),
		),
	)
	if len(ps.Images) > 1 {
		thumbs := el("div", "grid grid-cols-3 gap-3")
		for _, src := range ps.Images[1:min(len(ps.Images), 4)] {
			thumbs.add(el("div", "aspect-square rounded-xl overflow-hidden cursor-pointer "+t.CardBg,
				img(src, ps.Title, "w-full h-full object-cover"),
			))
		}
		gallery.add(thumbs)
	}

	info := el("div", "flex flex-col gap-6",
		textEl("p", "text-xs uppercase tracking-[0.3em] "+t.SectionLabel, "Home / Products"),
		textEl("h1", "text-3xl md:text-5xl font-black "+t.SectionHeading, ps.Title),
	)
	if r.Present() {
		info.add(el("div", "flex items-center gap-3 text-sm",
			textEl("span", t.StarColor, Stars(float64(r.AverageRating))),
			textEl("span", t.CardText, fmt.Sprintf("(%d reviews)", int(math.Round(float64(r.ReviewCount))))),
		))
	}

	var original *node
	if ps.OriginalPrice != "" {
		original = textEl("span", "text-lg line-through "+t.SectionLabel, ps.OriginalPrice.String())
	}
	info.add(
		el("div", "flex items-baseline gap-3",
			textEl("span", "text-3xl font-black "+t.SectionHeading, ps.Price.String()),
			original,
		),
		textEl("p", "text-sm md:text-base leading-relaxed "+t.CardText, ps.Description),
	)

	if swatches := validSwatches(ps.Colors); len(swatches) > 0 {
		row := el("div", "flex gap-3")
		for i, c := range swatches {
			row.add(el("button", fmt.Sprintf("w-8 h-8 rounded-full border %s swatch-%d", t.NavBorder, i)).
				set("aria-label", c))
		}
		info.add(el("div", "", textEl("p", labelClass+t.SectionLabel, "Color"), row))
	}

	if len(ps.Sizes) > 0 {
		row := el("div", "flex flex-wrap gap-2")
		for _, s := range ps.Sizes {
			row.add(textEl("button", "px-4 py-2 rounded-lg text-sm border "+t.NavBorder, s.String()))
		}
		info.add(el("div", "", textEl("p", labelClass+t.SectionLabel, "Size"), row))
	}

	cta := ps.CTALabel
	if cta == "" {
		cta = "Add to Cart"
	}
	badges := el("div", "flex flex-wrap gap-4 text-xs "+t.CardText)
	for _, b := range trustBadges {
		badges.add(textEl("span", "", b))
	}
	info.add(
		textEl("button", "w-full py-4 rounded-xl font-bold text-sm accent-bg "+t.PrimaryBtn, cta),
		badges,
	)

	return el("section", "py-12 px-4",
		el("div", "max-w-6xl mx-auto grid grid-cols-1 md:grid-cols-2 gap-12", gallery, info),
	).set("id", "product")
}

func reviewsBlock(r *page.Reviews, t Theme) *node {
	if !r.Present() {
		return nil
	}
	reviews := r.Reviews
	if len(reviews) > 3 {
		reviews = reviews[:3]
	}
	grid := el("div", "grid grid-cols-1 md:grid-cols-3 gap-6")
	for _, rv := range reviews {
		grid.add(card("review", "rounded-2xl p-6 "+t.TestimonialCard,
			el("div", "flex items-center gap-3 mb-4",
				img(rv.Avatar, rv.Name, "w-10 h-10 rounded-full object-cover"),
				el("div", "",
					textEl("p", "text-sm font-bold "+t.SectionHeading, rv.Name),
					textEl("span", "text-sm "+t.StarColor, Stars(float64(rv.Rating))),
				),
			),
			textEl("p", "text-sm font-semibold mb-2 "+t.SectionHeading, rv.Title),
			textEl("p", "text-sm leading-relaxed "+t.CardText, rv.Text),
		))
	}
	return el("section", "py-24 px-4",
		el("div", "max-w-6xl mx-auto",
			el("div", "flex flex-col md:flex-row md:items-end md:justify-between gap-4 mb-12",
				el("div", "",
					textEl("p", labelClass+t.SectionLabel, "REVIEWS"),
					textEl("h2", "text-3xl md:text-4xl font-black "+t.SectionHeading, r.Heading),
				),
				el("div", "text-right",
					textEl("p", "text-4xl font-black "+t.SectionHeading, fmt.Sprintf("%.1f", clampRating(float64(r.AverageRating)))),
					textEl("p", "text-lg "+t.StarColor, Stars(float64(r.AverageRating))),
					textEl("p", "text-xs "+t.CardText, r.SummaryText),
				),
			),
			grid,
		),
	).set("id", "reviews")
}

func relatedBlock(rp *page.RelatedProducts, t Theme) *node {
	if !rp.Present() {
		return nil
	}
	items := rp.Items
	if len(items) > 4 {
		items = items[:4]
	}
	grid := el("div", "grid grid-cols-2 md:grid-cols-4 gap-6")
	for _, it := range items {
		grid.add(card("related", "group cursor-pointer",
			el("div", "aspect-square rounded-2xl overflow-hidden mb-3 "+t.CardBg,
				img(it.Image, it.Title, "w-full h-full object-cover group-hover:scale-105 transition-transform"),
			),
			textEl("p", "text-sm font-semibold "+t.SectionHeading, it.Title),
			textEl("p", "text-sm "+t.CardText, it.Price.String()),
		))
	}
	return el("section", "py-24 px-4",
		el("div", "max-w-6xl mx-auto",
			textEl("h2", "text-2xl md:text-3xl font-black mb-10 "+t.SectionHeading, rp.Heading),
			grid,
		),
	).set("id", "related")
}

func clampRating(r float64) float64 {
	if math.IsNaN(r) {
		return 0
	}
	return math.Max(0, math.Min(5, r))
}

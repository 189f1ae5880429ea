package render

import (
	"fmt"
	"regexp"
	"strings"

	"storefront_ai_server/internal/page"
)

// Theme maps each structural slot of a page to utility classes.
type Theme struct {
	PageBg           string
	PageText         string
	NavBg            string
	NavBorder        string
	NavText          string
	NavHover         string
	HeroBg           string
	HeroHeadline     string
	HeroSub          string
	PrimaryBtn       string
	SecondaryBtn     string
	SectionLabel     string
	SectionHeading   string
	CardBg           string
	CardText         string
	PricingHighlight string
	PricingNormal    string
	TestimonialCard  string
	CTABg            string
	CTAText          string
	FooterBg         string
	FooterText       string
	StarColor        string
	DefaultAccent    string
}

var themes = map[page.Preset]Theme{
	page.Minimalist: {
		PageBg:           "bg-white",
		PageText:         "text-gray-900",
		NavBg:            "bg-white/90",
		NavBorder:        "border-gray-200",
		NavText:          "text-gray-700",
		NavHover:         "hover:text-gray-900",
		HeroBg:           "bg-white",
		HeroHeadline:     "text-gray-900",
		HeroSub:          "text-gray-500",
		PrimaryBtn:       "border border-gray-900 text-gray-900 bg-transparent hover:bg-gray-900 hover:text-white",
		SecondaryBtn:     "border border-gray-300 text-gray-600 bg-transparent",
		SectionLabel:     "text-gray-400",
		SectionHeading:   "text-gray-900",
		CardBg:           "bg-white border border-gray-100",
		CardText:         "text-gray-600",
		PricingHighlight: "bg-gray-900 text-white",
		PricingNormal:    "bg-white border border-gray-200",
		TestimonialCard:  "bg-gray-50 border border-gray-100",
		CTABg:            "bg-gray-900",
		CTAText:          "text-white",
		FooterBg:         "bg-white border-t border-gray-200",
		FooterText:       "text-gray-500",
		StarColor:        "text-gray-900",
		DefaultAccent:    "#111827",
	},
	page.Bold: {
		PageBg:           "bg-zinc-950",
		PageText:         "text-white",
		NavBg:            "bg-black/60",
		NavBorder:        "border-white/10",
		NavText:          "text-zinc-300",
		NavHover:         "hover:text-white",
		HeroBg:           "bg-zinc-950",
		HeroHeadline:     "text-white",
		HeroSub:          "text-zinc-400",
		PrimaryBtn:       "text-black font-black",
		SecondaryBtn:     "border border-white/20 text-zinc-100",
		SectionLabel:     "text-zinc-500",
		SectionHeading:   "text-white",
		CardBg:           "bg-white/5 border border-white/10",
		CardText:         "text-zinc-300",
		PricingHighlight: "bg-gradient-to-b from-white/10 to-white/5 border border-white/20",
		PricingNormal:    "bg-white/5 border border-white/10",
		TestimonialCard:  "bg-white/5 border border-white/10",
		CTABg:            "bg-gradient-to-r from-white/5 via-white/10 to-white/5 border border-white/10",
		CTAText:          "text-white",
		FooterBg:         "border-t border-white/10",
		FooterText:       "text-zinc-500",
		StarColor:        "text-amber-400",
		DefaultAccent:    "#ffffff",
	},
	page.Luxury: {
		PageBg:           "bg-black",
		PageText:         "text-amber-50",
		NavBg:            "bg-black/80",
		NavBorder:        "border-amber-300/10",
		NavText:          "text-amber-100/70",
		NavHover:         "hover:text-amber-200",
		HeroBg:           "bg-black",
		HeroHeadline:     "text-amber-50",
		HeroSub:          "text-amber-100/60",
		PrimaryBtn:       "bg-amber-300 text-black font-black tracking-wide",
		SecondaryBtn:     "border border-amber-300/30 text-amber-200",
		SectionLabel:     "text-amber-400/60",
		SectionHeading:   "text-amber-50",
		CardBg:           "bg-zinc-950 border border-amber-300/10",
		CardText:         "text-amber-100/70",
		PricingHighlight: "bg-gradient-to-b from-amber-300/10 to-transparent border border-amber-300/30",
		PricingNormal:    "bg-zinc-950 border border-amber-300/10",
		TestimonialCard:  "bg-zinc-950 border border-amber-300/10",
		CTABg:            "bg-gradient-to-r from-amber-300/5 via-amber-300/10 to-amber-300/5 border border-amber-300/20",
		CTAText:          "text-amber-50",
		FooterBg:         "border-t border-amber-300/10",
		FooterText:       "text-amber-100/40",
		StarColor:        "text-amber-300",
		DefaultAccent:    "#fcd34d",
	},
	page.Playful: {
		PageBg:           "bg-white",
		PageText:         "text-gray-900",
		NavBg:            "bg-white/90",
		NavBorder:        "border-purple-100",
		NavText:          "text-gray-600",
		NavHover:         "hover:text-purple-600",
		HeroBg:           "bg-gradient-to-br from-purple-50 to-pink-50",
		HeroHeadline:     "text-gray-900",
		HeroSub:          "text-gray-500",
		PrimaryBtn:       "rounded-full font-black shadow-lg",
		SecondaryBtn:     "rounded-full border-2 border-purple-200 text-purple-600",
		SectionLabel:     "text-purple-400",
		SectionHeading:   "text-gray-900",
		CardBg:           "bg-white border-2 border-purple-100 rounded-3xl",
		CardText:         "text-gray-600",
		PricingHighlight: "bg-gradient-to-b from-purple-500 to-pink-500 text-white rounded-3xl",
		PricingNormal:    "bg-white border-2 border-purple-100 rounded-3xl",
		TestimonialCard:  "bg-purple-50 border-2 border-purple-100 rounded-3xl",
		CTABg:            "bg-gradient-to-r from-purple-500 to-pink-500 rounded-3xl",
		CTAText:          "text-white",
		FooterBg:         "bg-gray-50 border-t border-purple-100",
		FooterText:       "text-gray-400",
		StarColor:        "text-yellow-400",
		DefaultAccent:    "#a855f7",
	},
}

// ThemeFor returns the token table for preset, falling back to the bold theme.
func ThemeFor(preset page.Preset) Theme {
	if t, ok := themes[preset]; ok {
		return t
	}
	return themes[page.DefaultPreset]
}

// ThemeName is the preset whose tokens ThemeFor(preset) returns.
func ThemeName(preset page.Preset) page.Preset {
	if _, ok := themes[preset]; ok {
		return preset
	}
	return page.DefaultPreset
}

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
	funcColor  = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\([0-9.,%\s/]+\)$`)
)

// accentColor returns a CSS-safe color for the page accent. Anything that is
// not a hex value, a plain color keyword or an rgb/hsl function falls back to
// the theme default.
func accentColor(raw string, t Theme) string {
	c := strings.TrimSpace(raw)
	switch {
	case hexColor.MatchString(c), funcColor.MatchString(c):
		return c
	case namedColor.MatchString(c):
		return strings.ToLower(c)
	}
	return t.DefaultAccent
}

// swatchColor validates a product color swatch; invalid values yield "".
func swatchColor(raw string) string {
	c := strings.TrimSpace(raw)
	switch {
	case hexColor.MatchString(c), funcColor.MatchString(c):
		return c
	case namedColor.MatchString(c):
		return strings.ToLower(c)
	}
	return ""
}

const fontImport = "@import url('https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700;800;900&display=swap');"

// stylesheet builds the page CSS: font, body defaults, accent helpers and one
// class per product color swatch.
func stylesheet(accent string, swatches []string) string {
	var b strings.Builder
	b.WriteString(fontImport)
	b.WriteString(" body { font-family: 'Inter', sans-serif; margin: 0; }")
	fmt.Fprintf(&b, " .accent-bg { background-color: %s; }", accent)
	fmt.Fprintf(&b, " .accent-border { border-color: %s; }", accent)
	fmt.Fprintf(&b, " .accent-text { color: %s; }", accent)
	for i, c := range swatches {
		fmt.Fprintf(&b, " .swatch-%d { background-color: %s; }", i, c)
	}
	return b.String()
}

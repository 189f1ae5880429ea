// Package page holds the structured storefront page model produced by the
// model providers, along with parsing, validation and section merging.
package page

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type PageType string

const (
	Landing PageType = "landing"
	Product PageType = "product"
)

func (t PageType) Valid() bool {
	return t == Landing || t == Product
}

// Preset names one of the fixed visual themes applied at render time.
type Preset string

const (
	Minimalist Preset = "minimalist"
	Bold       Preset = "bold"
	Luxury     Preset = "luxury"
	Playful    Preset = "playful"
)

const DefaultPreset = Bold

var Presets = []Preset{Minimalist, Bold, Luxury, Playful}

func (p Preset) Valid() bool {
	for _, known := range Presets {
		if p == known {
			return true
		}
	}
	return false
}

// OrDefault returns p when it names a known preset and DefaultPreset otherwise.
func (p Preset) OrDefault() Preset {
	if p.Valid() {
		return p
	}
	return DefaultPreset
}

// Text is a string slot that also accepts numbers, booleans and other JSON
// values, which models occasionally emit where copy is expected. Non-string
// values keep their compact JSON spelling.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*t = Text(buf.String())
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Number accepts a JSON number or a numeric string such as "4.8".
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "+"))
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

type Nav struct {
	Logo        string `json:"logo"`
	Links       []Link `json:"links"`
	CTALabel    string `json:"ctaLabel"`
	AccentColor string `json:"accentColor,omitempty"`
}

type Hero struct {
	Headline        string `json:"headline"`
	Subheadline     string `json:"subheadline"`
	PrimaryCTA      string `json:"primaryCta"`
	SecondaryCTA    string `json:"secondaryCta"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Features struct {
	SectionLabel string    `json:"sectionLabel"`
	Heading      string    `json:"heading"`
	Features     []Feature `json:"features"`
}

type Tier struct {
	Name        string `json:"name"`
	Price       Text   `json:"price"`
	Period      string `json:"period"`
	Features    []Text `json:"features"`
	CTALabel    string `json:"ctaLabel"`
	Highlighted bool   `json:"highlighted"`
}

type Pricing struct {
	SectionLabel string `json:"sectionLabel"`
	Heading      string `json:"heading"`
	Tiers        []Tier `json:"tiers"`
}

type Testimonial struct {
	Quote  string `json:"quote"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

type Testimonials struct {
	SectionLabel string        `json:"sectionLabel"`
	Heading      string        `json:"heading"`
	Testimonials []Testimonial `json:"testimonials"`
}

type FAQItem struct {
	Question Text `json:"question"`
	Answer   Text `json:"answer"`
}

type FAQ struct {
	SectionLabel string    `json:"sectionLabel,omitempty"`
	Heading      string    `json:"heading"`
	Items        []FAQItem `json:"items"`
}

type Stat struct {
	Label Text `json:"label"`
	Value Text `json:"value"`
}

type Stats struct {
	Heading string `json:"heading"`
	Items   []Stat `json:"items"`
}

type Newsletter struct {
	Heading     string `json:"heading"`
	Subtext     string `json:"subtext"`
	Placeholder string `json:"placeholder"`
	ButtonLabel string `json:"buttonLabel"`
}

type Member struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

type Team struct {
	Heading string   `json:"heading"`
	Members []Member `json:"members"`
}

type LogoBar struct {
	Heading string `json:"heading"`
	Logos   []Text `json:"logos"`
}

type CTABanner struct {
	Headline string `json:"headline"`
	Subtext  string `json:"subtext"`
	CTALabel string `json:"ctaLabel"`
}

type FooterColumn struct {
	Heading string `json:"heading"`
	Links   []Link `json:"links"`
}

type Footer struct {
	Logo      string         `json:"logo"`
	Columns   []FooterColumn `json:"columns"`
	Copyright string         `json:"copyright"`
}

type LandingPage struct {
	Nav          *Nav          `json:"nav,omitempty"`
	Hero         *Hero         `json:"hero,omitempty"`
	Features     *Features     `json:"features,omitempty"`
	Pricing      *Pricing      `json:"pricing,omitempty"`
	Testimonials *Testimonials `json:"testimonials,omitempty"`
	FAQ          *FAQ          `json:"faq,omitempty"`
	Stats        *Stats        `json:"stats,omitempty"`
	Newsletter   *Newsletter   `json:"newsletter,omitempty"`
	Team         *Team         `json:"team,omitempty"`
	LogoBar      *LogoBar      `json:"logoBar,omitempty"`
	CTABanner    *CTABanner    `json:"ctaBanner,omitempty"`
	Footer       *Footer       `json:"footer,omitempty"`
}

type ProductSection struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         Text     `json:"price"`
	OriginalPrice Text     `json:"originalPrice,omitempty"`
	Images        []string `json:"images"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []Text   `json:"sizes,omitempty"`
	CTALabel      string   `json:"ctaLabel,omitempty"`
}

type Review struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Rating Number `json:"rating"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

type Reviews struct {
	Heading       string   `json:"heading"`
	SummaryText   string   `json:"summaryText"`
	AverageRating Number   `json:"averageRating"`
	ReviewCount   Number   `json:"reviewCount"`
	Reviews       []Review `json:"reviews"`
}

type RelatedItem struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Price Text   `json:"price"`
}

type RelatedProducts struct {
	Heading string        `json:"heading"`
	Items   []RelatedItem `json:"items"`
}

type ProductPage struct {
	Nav             *Nav             `json:"nav,omitempty"`
	ProductSection  *ProductSection  `json:"productSection,omitempty"`
	Reviews         *Reviews         `json:"reviews,omitempty"`
	RelatedProducts *RelatedProducts `json:"relatedProducts,omitempty"`
	Footer          *Footer          `json:"footer,omitempty"`
}

// StructuredPage is the tagged union produced by generation: exactly one of
// Landing or Product is expected to be set, matching PageType.
type StructuredPage struct {
	PageType PageType     `json:"pageType"`
	Title    string       `json:"title"`
	Preset   Preset       `json:"preset,omitempty"`
	Landing  *LandingPage `json:"landing,omitempty"`
	Product  *ProductPage `json:"product,omitempty"`
}

// Clone returns a deep copy made through the JSON encoding.
func (p *StructuredPage) Clone() *StructuredPage {
	if p == nil {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	var out StructuredPage
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return &out
}

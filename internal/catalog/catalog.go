// Package catalog holds the insertable section templates offered to callers.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"storefront_ai_server/internal/page"
)

//go:embed sections.yaml
var sectionsYAML []byte

// SectionTemplate describes one insertable section and the instruction sent
// to the model for it.
type SectionTemplate struct {
	ID          string        `yaml:"id" json:"id"`
	Label       string        `yaml:"label" json:"label"`
	Description string        `yaml:"description" json:"description"`
	Icon        string        `yaml:"icon" json:"icon"`
	Category    string        `yaml:"category" json:"category"`
	Prompt      string        `yaml:"prompt" json:"prompt"`
	PageType    page.PageType `yaml:"-" json:"pageType"`
}

type file struct {
	Landing []SectionTemplate `yaml:"landing"`
	Product []SectionTemplate `yaml:"product"`
}

// Catalog is read-only after Load.
type Catalog struct {
	templates []SectionTemplate
	byID      map[string]SectionTemplate
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(sectionsYAML)
}

// Parse decodes a catalog document with top-level landing and product lists.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode section catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]SectionTemplate)}
	groups := []struct {
		pageType page.PageType
		items    []SectionTemplate
	}{
		{page.Landing, f.Landing},
		{page.Product, f.Product},
	}
	for _, g := range groups {
		for _, t := range g.items {
			if t.ID == "" || strings.TrimSpace(t.Prompt) == "" {
				return nil, fmt.Errorf("section catalog: template %q needs an id and a prompt", t.Label)
			}
			if _, dup := c.byID[t.ID]; dup {
				return nil, fmt.Errorf("section catalog: duplicate id %q", t.ID)
			}
			t.PageType = g.pageType
			c.templates = append(c.templates, t)
			c.byID[t.ID] = t
		}
	}
	return c, nil
}

// Get returns the template with id.
func (c *Catalog) Get(id string) (SectionTemplate, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// List returns the templates for pageType, optionally narrowed to a category
// and to templates whose label or description contains query. An empty
// pageType lists every template.
func (c *Catalog) List(pageType page.PageType, category, query string) []SectionTemplate {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]SectionTemplate, 0, len(c.templates))
	for _, t := range c.templates {
		if pageType != "" && t.PageType != pageType {
			continue
		}
		if category != "" && category != "All" && t.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Label), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Categories lists the distinct categories for pageType in catalog order.
func (c *Catalog) Categories(pageType page.PageType) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range c.List(pageType, "", "") {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// Package store keeps generated pages and their version history in memory.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/render"
)

const (
	// MaxHTMLBytes bounds the stored HTML of a page or version.
	MaxHTMLBytes  = 150000
	truncatedMark = "<!-- truncated for storage -->"
	labelPrompt   = 40
)

var ErrPageNotFound = errors.New("page not found")

// Version is one entry of a page's append-only history. Times are Unix
// milliseconds.
type Version struct {
	ID        string               `json:"versionId"`
	Number    int                  `json:"versionNumber"`
	Label     string               `json:"label"`
	HTML      string               `json:"html"`
	Code      render.Artifact      `json:"generatedCode"`
	Page      *page.StructuredPage `json:"structuredPage,omitempty"`
	Prompt    string               `json:"prompt"`
	CreatedAt int64                `json:"createdAt"`
}

type Page struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	PageType    page.PageType        `json:"pageType"`
	Description string               `json:"description"`
	HTML        string               `json:"html"`
	Code        *render.Artifact     `json:"generatedCode,omitempty"`
	Structured  *page.StructuredPage `json:"structuredPage,omitempty"`
	CreatedAt   int64                `json:"createdAt"`
	UpdatedAt   int64                `json:"updatedAt"`
	Versions    []Version            `json:"versions"`
}

// Store is a bounded page store; the least recently used page is evicted
// when it is full. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	pages *lru.Cache[string, *Page]
	now   func() time.Time
}

func New(size int) (*Store, error) {
	c, err := lru.New[string, *Page](size)
	if err != nil {
		return nil, fmt.Errorf("create page store: %w", err)
	}
	return &Store{pages: c, now: time.Now}, nil
}

// Save inserts p, or replaces the stored page with the same ID while
// keeping its versions and creation time. An empty ID gets a new one.
func (s *Store) Save(p Page) Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixMilli()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.HTML = truncateHTML(p.HTML)
	p.UpdatedAt = now
	if old, ok := s.pages.Get(p.ID); ok {
		p.CreatedAt = old.CreatedAt
		p.Versions = old.Versions
	} else {
		p.CreatedAt = now
		p.Versions = nil
	}
	stored := clonePage(&p)
	s.pages.Add(p.ID, stored)
	return *clonePage(stored)
}

// AddVersion appends a version to page id and makes it the current
// content.
func (s *Store) AddVersion(id, html string, code render.Artifact, structured *page.StructuredPage, prompt string) (Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pages.Get(id)
	if !ok {
		return Version{}, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	n := len(p.Versions) + 1
	v := Version{
		ID:        uuid.NewString(),
		Number:    n,
		Label:     VersionLabel(n, prompt),
		HTML:      truncateHTML(html),
		Code:      code,
		Page:      structured.Clone(),
		Prompt:    prompt,
		CreatedAt: s.now().UnixMilli(),
	}
	p.Versions = append(p.Versions, v)
	p.HTML = v.HTML
	p.Code = &code
	if structured != nil {
		p.Structured = structured.Clone()
	}
	p.UpdatedAt = v.CreatedAt
	return cloneVersion(v), nil
}

func (s *Store) Get(id string) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages.Get(id)
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	return *clonePage(p), nil
}

// List returns every page, most recently updated first, without version
// history.
func (s *Store) List() []Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Page, 0, s.pages.Len())
	for _, id := range s.pages.Keys() {
		p, ok := s.pages.Peek(id)
		if !ok {
			continue
		}
		summary := *p
		summary.Versions = nil
		out = append(out, *clonePage(&summary))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })
	return out
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages.Remove(id)
}

func (s *Store) Len() int { return s.pages.Len() }

// VersionLabel labels version n with its number and the first 40 characters
// of prompt.
func VersionLabel(n int, prompt string) string {
	label := prompt
	if utf8.RuneCountInString(prompt) > labelPrompt {
		label = string([]rune(prompt)[:labelPrompt]) + "..."
	}
	return fmt.Sprintf("v%d — %s", n, label)
}

func truncateHTML(html string) string {
	if len(html) <= MaxHTMLBytes {
		return html
	}
	cut := MaxHTMLBytes
	for cut > 0 && !utf8.RuneStart(html[cut]) {
		cut--
	}
	return html[:cut] + truncatedMark
}

// clonePage copies p deeply so stored history never aliases caller data.
func clonePage(p *Page) *Page {
	c := *p
	if p.Code != nil {
		code := *p.Code
		c.Code = &code
	}
	c.Structured = p.Structured.Clone()
	if p.Versions != nil {
		c.Versions = make([]Version, len(p.Versions))
		for i, v := range p.Versions {
			c.Versions[i] = cloneVersion(v)
		}
	}
	return &c
}

func cloneVersion(v Version) Version {
	v.Page = v.Page.Clone()
	return v
}

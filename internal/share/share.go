// Package share encodes a finished page into a self-contained URL token.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/render"
	"storefront_ai_server/internal/store"
)

var ErrInvalidToken = errors.New("invalid share token")

// SharedPage is the payload carried by a token. Version history is never
// shared. A page with structured data travels without its HTML and is
// rendered again when viewed.
type SharedPage struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	PageType    page.PageType        `json:"pageType"`
	Description string               `json:"description"`
	HTML        string               `json:"html,omitempty"`
	Structured  *page.StructuredPage `json:"structuredPage,omitempty"`
	CreatedAt   int64                `json:"createdAt"`
	UpdatedAt   int64                `json:"updatedAt"`
	Versions    []struct{}           `json:"versions"`
}

// FromPage strips p down to what a viewer needs.
func FromPage(p store.Page) SharedPage {
	sp := SharedPage{
		ID:          p.ID,
		Title:       p.Title,
		PageType:    p.PageType,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Structured != nil {
		sp.Structured = p.Structured.Clone()
	} else {
		sp.HTML = p.HTML
	}
	return sp
}

// Document returns the HTML document to show for sp, rendering the
// structured page when there is one.
func (sp SharedPage) Document() (string, error) {
	if sp.Structured == nil {
		return sp.HTML, nil
	}
	a, err := render.Render(sp.Structured, sp.Structured.Preset)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return render.HTML(a), nil
}

// Encode returns the URL-safe token for sp.
func Encode(sp SharedPage) (string, error) {
	sp.Versions = []struct{}{}
	b, err := json.Marshal(sp)
	if err != nil {
		return "", fmt.Errorf("encode share payload: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode accepts URL-safe tokens as well as standard base64 produced by
// older links, percent-encoded or not.
func Decode(token string) (SharedPage, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return SharedPage{}, ErrInvalidToken
	}
	if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}

	var raw []byte
	var err error
	for _, enc := range []*base64.Encoding{base64.RawURLEncoding, base64.URLEncoding, base64.StdEncoding, base64.RawStdEncoding} {
		if raw, err = enc.DecodeString(token); err == nil {
			break
		}
	}
	if err != nil {
		return SharedPage{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var sp SharedPage
	if err := json.Unmarshal(raw, &sp); err != nil {
		return SharedPage{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if sp.HTML == "" && sp.Structured == nil {
		return SharedPage{}, fmt.Errorf("%w: no page content", ErrInvalidToken)
	}
	sp.Versions = nil
	return sp, nil
}

// URL is the public link for token under base.
func URL(base, token string) string {
	return strings.TrimRight(base, "/") + "/share/" + token
}

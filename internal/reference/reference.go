// Package reference turns a design-inspiration URL into a short markdown
// digest that can ride along with the first generation request.
package reference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

const (
	defaultMaxBytes = 2 << 20
	defaultMaxChars = 4000
)

var ErrUnsupportedURL = errors.New("reference url must be absolute http or https")

// Fetcher produces a digest for a reference URL.
type Fetcher interface {
	Digest(ctx context.Context, rawURL string) (string, error)
}

// HTTPFetcher downloads the page, keeps its main content and converts it to
// markdown.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
	maxChars int
}

type Option func(*HTTPFetcher)

func WithHTTPClient(c *http.Client) Option { return func(f *HTTPFetcher) { f.client = c } }

// WithMaxChars bounds the digest length in characters.
func WithMaxChars(n int) Option { return func(f *HTTPFetcher) { f.maxChars = n } }

func NewHTTPFetcher(timeout time.Duration, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: defaultMaxBytes,
		maxChars: defaultMaxChars,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *HTTPFetcher) Digest(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrUnsupportedURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download HTML: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return Summarize(doc, f.maxChars)
}

// Summarize converts the main content of doc to markdown, truncated to
// maxChars characters.
func Summarize(doc *html.Node, maxChars int) (string, error) {
	prune(doc)
	root := findTag(doc, "main")
	if root == nil {
		root = findTag(doc, "body")
	}
	if root == nil {
		root = doc
	}

	md, err := htmltomarkdown.ConvertNode(root)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return truncate(strings.TrimSpace(string(md)), maxChars), nil
}

var dropped = map[string]bool{"script": true, "style": true, "noscript": true, "svg": true, "iframe": true, "template": true}

func prune(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && dropped[c.Data] {
			n.RemoveChild(c)
		} else {
			prune(c)
		}
		c = next
	}
}

func findTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func truncate(s string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:maxChars])) + "\n…"
}

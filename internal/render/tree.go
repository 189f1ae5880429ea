package render

import (
	"strings"

	"golang.org/x/net/html"
)

// node is one element or text run of the generated component tree.
type node struct {
	tag      string
	attrs    []attr
	children []*node
	text     string
}

type attr struct {
	key, val string
}

var voidTags = map[string]bool{"img": true, "input": true, "br": true, "hr": true}

func el(tag, class string, children ...*node) *node {
	n := &node{tag: tag}
	if class != "" {
		n.attrs = append(n.attrs, attr{"className", class})
	}
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

func txt(s string) *node { return &node{text: s} }

func (n *node) set(key, val string) *node {
	n.attrs = append(n.attrs, attr{key, val})
	return n
}

func (n *node) add(children ...*node) *node {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

// textEl is an element holding a single text run.
func textEl(tag, class, s string) *node {
	return el(tag, class, txt(s))
}

func img(src, alt, class string) *node {
	return el("img", class).set("src", safeURL(src)).set("alt", alt)
}

func link(href, class, label string) *node {
	return el("a", class, txt(label)).set("href", safeURL(href))
}

var jsxEscaper = strings.NewReplacer(
	"`", "&#96;",
	"$", "&#36;",
	"{", "&#123;",
	"}", "&#125;",
)

// escape makes s inert inside JSX text and attribute strings: markup
// characters and template interpolation delimiters become entities.
func escape(s string) string {
	return jsxEscaper.Replace(html.EscapeString(s))
}

// safeURL drops URLs with schemes other than http, https, mailto and tel.
// Fragment, relative and absolute paths pass through.
func safeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return "#"
	}
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "#") || strings.HasPrefix(lower, "/") {
		return u
	}
	i := strings.IndexAny(lower, ":/?#")
	if i == -1 || lower[i] != ':' {
		return u
	}
	switch lower[:i] {
	case "http", "https", "mailto", "tel":
		return u
	}
	return "#"
}

// serialize writes n as indented JSX.
func serialize(b *strings.Builder, n *node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.tag == "" {
		b.WriteString(indent)
		b.WriteString(escape(n.text))
		b.WriteByte('\n')
		return
	}

	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(n.tag)
	for _, a := range n.attrs {
		b.WriteByte(' ')
		b.WriteString(a.key)
		b.WriteString(`="`)
		b.WriteString(escape(a.val))
		b.WriteByte('"')
	}
	if voidTags[n.tag] {
		b.WriteString(" />\n")
		return
	}
	b.WriteByte('>')

	// A lone text child stays on the element's line.
	if len(n.children) == 1 && n.children[0].tag == "" {
		b.WriteString(escape(n.children[0].text))
		b.WriteString("</")
		b.WriteString(n.tag)
		b.WriteString(">\n")
		return
	}
	if len(n.children) == 0 {
		b.WriteString("</")
		b.WriteString(n.tag)
		b.WriteString(">\n")
		return
	}

	b.WriteByte('\n')
	for _, c := range n.children {
		serialize(b, c, depth+1)
	}
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteString(">\n")
}

package render

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const (
	tailwindCDN = "https://cdn.tailwindcss.com"
	reactCDN    = "https://unpkg.com/react@18/umd/react.production.min.js"
	reactDOMCDN = "https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"
	babelCDN    = "https://unpkg.com/@babel/standalone@7.23.4/babel.min.js"
	iconsCSS    = "https://fonts.googleapis.com/css2?family=Material+Symbols+Outlined"
)

// HTML wraps an artifact into a standalone document that loads Tailwind,
// React and Babel from public CDNs and mounts App into #root.
func HTML(a Artifact) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\" />\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	b.WriteString("  <title>" + html.EscapeString(a.Title) + "</title>\n")
	b.WriteString("  <script src=\"" + tailwindCDN + "\"></script>\n")
	b.WriteString("  <link rel=\"stylesheet\" href=\"" + iconsCSS + "\" />\n")
	b.WriteString("  <script crossorigin src=\"" + reactCDN + "\"></script>\n")
	b.WriteString("  <script crossorigin src=\"" + reactDOMCDN + "\"></script>\n")
	b.WriteString("  <script src=\"" + babelCDN + "\"></script>\n")
	b.WriteString("  <style>" + stripTagClose(a.CSSCode) + "</style>\n")
	b.WriteString("</head>\n<body>\n  <div id=\"root\"></div>\n")
	b.WriteString("  <script type=\"text/babel\" data-presets=\"react\">\n")
	b.WriteString(stripTagClose(a.ComponentCode))
	b.WriteString("\nReactDOM.createRoot(document.getElementById('root')).render(React.createElement(App));\n")
	b.WriteString("  </script>\n</body>\n</html>\n")
	return b.String()
}

var rawTextClose = regexp.MustCompile(`(?i)</(script|style)`)

// stripTagClose keeps embedded code from closing its raw-text element.
func stripTagClose(s string) string {
	return rawTextClose.ReplaceAllString(s, `<\/$1`)
}

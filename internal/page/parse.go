package page

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports model output that could not be turned into a page.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse page: %s: %v", e.Reason, e.Err)
	}
	return "parse page: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

const (
	ReasonNoJSON        = "no JSON found"
	ReasonInvalidJSON   = "invalid JSON"
	ReasonMissingFields = "missing required fields"
)

var (
	leadingFence  = regexp.MustCompile("(?i)^```[a-z0-9_-]*[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\\s*```\\s*$")
)

// StripFences removes one leading and one trailing markdown code fence.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Parse extracts a StructuredPage from raw model output. It tolerates code
// fences and prose around the outermost JSON object, and makes one repair
// attempt for raw control characters inside string literals.
func Parse(raw string) (*StructuredPage, error) {
	text := StripFences(raw)

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last == -1 || last < first {
		return nil, &ParseError{Reason: ReasonNoJSON}
	}
	text = text[first : last+1]

	var p StructuredPage
	err := json.Unmarshal([]byte(text), &p)
	if err != nil {
		var syntaxErr *json.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return nil, &ParseError{Reason: ReasonInvalidJSON, Err: err}
		}
		p = StructuredPage{}
		if err := json.Unmarshal([]byte(escapeControlInStrings(text)), &p); err != nil {
			return nil, &ParseError{Reason: ReasonInvalidJSON, Err: err}
		}
	}

	if strings.TrimSpace(string(p.PageType)) == "" || strings.TrimSpace(p.Title) == "" {
		return nil, &ParseError{Reason: ReasonMissingFields}
	}
	return &p, nil
}

// escapeControlInStrings rewrites raw newline, carriage return, tab and other
// control characters found inside JSON string literals as escape sequences.
// Whitespace between tokens is left alone.
func escapeControlInStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			b.WriteByte(c)
			continue
		}
		if escaped {
			escaped = false
			b.WriteByte(c)
			continue
		}
		switch {
		case c == '\\':
			escaped = true
			b.WriteByte(c)
		case c == '"':
			inString = false
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			fmt.Fprintf(&b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineFileType(t *testing.T) {
	tests := map[string]string{
		"package.json":  "JSON",
		"page.json":     "JSON",
		"index.html":    "HTML",
		"preview.HTML":  "HTML",
		"src/main.jsx":  "JSX",
		"src/App.jsx":   "JSX",
		"src/index.css": "CSS",
		"README":        "Text",
	}
	for name, want := range tests {
		assert.Equal(t, want, DetermineFileType(name), name)
	}
}

package utils

import (
	"path"
	"strings"
)

// fileTypes covers the extensions an exported project contains.
var fileTypes = map[string]string{
	".html": "HTML",
	".json": "JSON",
	".jsx":  "JSX",
	".css":  "CSS",
}

// DetermineFileType labels an exported file by its extension.
func DetermineFileType(filename string) string {
	if t, ok := fileTypes[strings.ToLower(path.Ext(filename))]; ok {
		return t
	}
	return "Text"
}

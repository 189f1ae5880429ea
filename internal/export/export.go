// Package export packages a rendered page as a small runnable Vite + React
// project.
package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"storefront_ai_server/internal/page"
	"storefront_ai_server/internal/render"
	"storefront_ai_server/internal/types"
	"storefront_ai_server/internal/utils"
)

const defaultProjectName = "storefront-page"

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// ProjectName derives a package-safe name from title.
func ProjectName(title string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return defaultProjectName
	}
	if len(slug) > 60 {
		slug = strings.TrimRight(slug[:60], "-")
	}
	return slug
}

const viteIndex = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>%s</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Material+Symbols+Outlined" />
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.jsx"></script>
  </body>
</html>
`

const mainJSX = `import React from 'react';
import ReactDOM from 'react-dom/client';
import App from './App.jsx';
import './index.css';

ReactDOM.createRoot(document.getElementById('root')).render(<App />);
`

type packageJSON struct {
	Name            string            `json:"name"`
	Private         bool              `json:"private"`
	Version         string            `json:"version"`
	Type            string            `json:"type"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Files lays out the project for a rendered page. preview.html is the
// standalone document; the rest is a Vite project. p may be nil.
func Files(a render.Artifact, p *page.StructuredPage) ([]types.GeneratedFile, error) {
	pkg, err := json.MarshalIndent(packageJSON{
		Name:    ProjectName(a.Title),
		Private: true,
		Version: "0.1.0",
		Type:    "module",
		Scripts: map[string]string{"dev": "vite", "build": "vite build", "preview": "vite preview"},
		Dependencies: map[string]string{
			"react":     "^18.3.1",
			"react-dom": "^18.3.1",
		},
		DevDependencies: map[string]string{"vite": "^5.4.0"},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode package.json: %w", err)
	}

	files := []types.GeneratedFile{
		{Filename: "package.json", Content: string(pkg) + "\n"},
		{Filename: "index.html", Content: fmt.Sprintf(viteIndex, html.EscapeString(a.Title))},
		{Filename: "preview.html", Content: render.HTML(a)},
		{Filename: "src/main.jsx", Content: mainJSX},
		{Filename: "src/App.jsx", Content: "import React from 'react';\n\n" + a.ComponentCode + "\nexport default App;\n"},
		{Filename: "src/index.css", Content: a.CSSCode},
	}
	if p != nil {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode page.json: %w", err)
		}
		files = append(files, types.GeneratedFile{Filename: "page.json", Content: string(data) + "\n"})
	}
	for i := range files {
		files[i].Type = utils.DetermineFileType(files[i].Filename)
	}
	return files, nil
}

// Zip writes files into a zip archive under a root folder.
func Zip(w io.Writer, root string, files []types.GeneratedFile) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		name := path.Clean(strings.TrimPrefix(f.Filename, "/"))
		if name == "." || strings.HasPrefix(name, "../") || name == ".." {
			return fmt.Errorf("export: unsafe file name %q", f.Filename)
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: path.Join(root, name), Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("export: add %s: %w", name, err)
		}
		if _, err := io.WriteString(fw, f.Content); err != nil {
			return fmt.Errorf("export: write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("export: finish archive: %w", err)
	}
	return nil
}

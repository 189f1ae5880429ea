// Package deploy publishes an exported page through an external deployment
// CLI such as vercel or netlify.
package deploy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"storefront_ai_server/internal/types"
)

var ErrNotConfigured = errors.New("deployment CLI is not configured")

type Deployer struct {
	cliPath string
	args    []string
	log     *slog.Logger
}

// NewDeployer runs cliPath with args followed by the project directory.
// An empty cliPath yields a Deployer that always fails with
// ErrNotConfigured.
func NewDeployer(cliPath string, args []string, log *slog.Logger) *Deployer {
	if log == nil {
		log = slog.Default()
	}
	return &Deployer{cliPath: cliPath, args: args, log: log}
}

func (d *Deployer) Configured() bool { return d != nil && d.cliPath != "" }

// DeployFiles writes files to a temporary directory, runs the CLI on it and
// returns the URL it reports.
func (d *Deployer) DeployFiles(ctx context.Context, files []types.GeneratedFile) (string, error) {
	if !d.Configured() {
		return "", ErrNotConfigured
	}

	tempDir, err := os.MkdirTemp("", "storefront-deploy-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := WriteFiles(tempDir, files); err != nil {
		return "", err
	}
	d.log.Info("wrote deployment files", "dir", tempDir, "files", len(files))

	cmd := exec.CommandContext(ctx, d.cliPath, append(append([]string{}, d.args...), tempDir)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	d.log.Info("running deploy CLI", "cmd", cmd.String())
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("deploy CLI failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	url := ExtractURL(stdout.String())
	if url == "" {
		url = ExtractURL(stderr.String())
	}
	if url == "" {
		return "", fmt.Errorf("failed to find a URL in deploy CLI output: %s", strings.TrimSpace(stdout.String()))
	}
	d.log.Info("deployed page", "url", url)
	return url, nil
}

// WriteFiles writes files under dir, creating subdirectories. Names that
// would escape dir are rejected.
func WriteFiles(dir string, files []types.GeneratedFile) error {
	for _, f := range files {
		name := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(f.Filename, "/")))
		if name == "." || name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
			return fmt.Errorf("unsafe file name %q", f.Filename)
		}
		filePath := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return fmt.Errorf("failed to create subdirectories for %s: %w", f.Filename, err)
		}
		if err := os.WriteFile(filePath, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", f.Filename, err)
		}
	}
	return nil
}

var urlPattern = regexp.MustCompile(`https://[^\s"'<>]+`)

// ExtractURL returns the last https URL in CLI output, which is where
// deployment CLIs print the production address.
func ExtractURL(output string) string {
	matches := urlPattern.FindAllString(output, -1)
	if len(matches) == 0 {
		return ""
	}
	return strings.TrimRight(matches[len(matches)-1], ".,)")
}

// Package gist uploads generated archives as GitHub gists via the gh
// CLI and prepares them for browsing through gistpreview.github.io.
package gist

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/neilberkman/cctranscripts/internal/core/render"
)

// Create uploads every HTML file in outputDir as one gist and returns
// the gist ID and URL. Requires an authenticated gh CLI.
func Create(outputDir string, public bool) (string, string, error) {
	files, err := filepath.Glob(filepath.Join(outputDir, "*.html"))
	if err != nil {
		return "", "", err
	}
	if len(files) == 0 {
		return "", "", errors.New("no HTML files found to upload to gist")
	}
	sort.Strings(files)

	args := append([]string{"gist", "create"}, files...)
	if public {
		args = append(args, "--public")
	}

	out, err := exec.Command("gh", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", "", fmt.Errorf("failed to create gist: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", errors.New("gh CLI not found; install it from https://cli.github.com/ and run 'gh auth login'")
		}
		return "", "", fmt.Errorf("failed to create gist: %w", err)
	}

	// gh prints the gist URL, e.g. https://gist.github.com/user/ID
	url := strings.TrimSpace(string(out))
	trimmed := strings.TrimSuffix(url, "/")
	id := trimmed[strings.LastIndex(trimmed, "/")+1:]
	return id, url, nil
}

// PreviewURL builds the gistpreview.github.io entry point for a gist.
func PreviewURL(id string) string {
	return fmt.Sprintf("https://gistpreview.github.io/?%s/index.html", id)
}

// InjectPreviewJS rewrites every HTML file in outputDir to carry the
// link-fixup script gistpreview needs, inserted before </body>.
func InjectPreviewJS(outputDir string) error {
	files, err := filepath.Glob(filepath.Join(outputDir, "*.html"))
	if err != nil {
		return err
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		text := string(content)
		if !strings.Contains(text, "</body>") {
			continue
		}
		text = strings.Replace(text, "</body>",
			"<script>"+render.GistPreviewJS+"</script>\n</body>", 1)
		if err := os.WriteFile(file, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", file, err)
		}
	}
	return nil
}

// CopyURL puts the URL on the system clipboard. Failures are
// non-fatal for callers; a clipboard is a convenience.
func CopyURL(url string) error {
	return clipboard.WriteAll(url)
}

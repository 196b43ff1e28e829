package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/neilberkman/cctranscripts/internal/core/browser"
	"github.com/neilberkman/cctranscripts/internal/core/config"
	"github.com/neilberkman/cctranscripts/internal/core/gist"
	"github.com/neilberkman/cctranscripts/internal/core/render"
	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

// outputFlags are the flags shared by every single-session command.
type outputFlags struct {
	output      string
	outputAuto  bool
	repo        string
	gist        bool
	includeJSON bool
	openBrowser bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory (default: temp dir, opened in browser)")
	cmd.Flags().BoolVarP(&f.outputAuto, "output-auto", "a", false, "Auto-name output subdirectory (uses -o as parent, or current dir)")
	cmd.Flags().StringVar(&f.repo, "repo", "", "GitHub repo (owner/name) for commit links; auto-detected from git push output")
	cmd.Flags().BoolVar(&f.gist, "gist", false, "Upload to GitHub Gist and print a gistpreview.github.io URL")
	cmd.Flags().BoolVar(&f.includeJSON, "json", false, "Include the original session data in the output directory")
	cmd.Flags().BoolVar(&f.openBrowser, "open", false, "Open the generated index.html in your browser (default if no -o)")
}

// resolveOutputDir applies the -o/-a rules: explicit dir, auto-named
// subdirectory, or a temp dir (which implies opening the browser).
func (f *outputFlags) resolveOutputDir(stem string) (dir string, autoOpen bool) {
	autoOpen = f.output == "" && !f.gist && !f.outputAuto
	switch {
	case f.outputAuto:
		parent := f.output
		if parent == "" {
			parent = "."
		}
		return filepath.Join(parent, stem), autoOpen
	case f.output == "":
		return filepath.Join(os.TempDir(), "claude-session-"+stem), autoOpen
	default:
		return f.output, autoOpen
	}
}

// convertEntries renders one session and handles the shared
// post-processing: JSON copy, gist upload, browser open.
func convertEntries(entries []cclog.LogEntry, outputDir string, autoOpen bool, f outputFlags, cfg *config.Config, rawJSON []byte, rawName string) error {
	fmt.Printf("Generating HTML in %s/...\n", outputDir)
	ctx := render.Context{
		GitHubRepo:        f.repo,
		PageSize:          cfg.PageSize,
		LongTextThreshold: cfg.LongTextThreshold,
	}
	if err := render.Generate(entries, outputDir, ctx); err != nil {
		return err
	}

	abs, err := filepath.Abs(outputDir)
	if err != nil {
		abs = outputDir
	}
	fmt.Printf("Output: %s\n", abs)

	if f.includeJSON && rawJSON != nil {
		dest := filepath.Join(outputDir, rawName)
		if err := os.WriteFile(dest, rawJSON, 0o644); err != nil {
			return fmt.Errorf("failed to write session data: %w", err)
		}
		fmt.Printf("JSON: %s\n", dest)
	}

	if f.gist {
		if err := gist.InjectPreviewJS(outputDir); err != nil {
			return err
		}
		fmt.Println("Creating GitHub gist...")
		id, url, err := gist.Create(outputDir, false)
		if err != nil {
			return err
		}
		preview := gist.PreviewURL(id)
		fmt.Printf("Gist: %s\n", url)
		fmt.Printf("Preview: %s\n", preview)
		if err := gist.CopyURL(preview); err == nil {
			fmt.Println("Preview URL copied to clipboard.")
		}
	}

	if f.openBrowser || autoOpen {
		if err := browser.Open(filepath.Join(outputDir, "index.html")); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", err)
		}
	}
	return nil
}

// convertFile converts a local session file.
func convertFile(path string, f outputFlags, cfg *config.Config) error {
	entries, err := cclog.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse session: %w", err)
	}

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	outputDir, autoOpen := f.resolveOutputDir(stem)

	var rawJSON []byte
	if f.includeJSON {
		rawJSON, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read session file: %w", err)
		}
	}
	return convertEntries(entries, outputDir, autoOpen, f, cfg, rawJSON, base)
}

// parseSince accepts natural language ("2 weeks ago") as well as
// plain dates.
func parseSince(value string) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	if result, err := w.Parse(value, time.Now()); err == nil && result != nil {
		return result.Time, nil
	}

	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date %q", value)
}

package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/cctranscripts/internal/core/discover"
	"github.com/neilberkman/cctranscripts/internal/core/render"
	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

// ProgressFunc reports batch progress. total is fixed before the
// first call, so callers can render a stable progress bar.
type ProgressFunc func(project, session string, current, total int)

// Failure records one session that could not be converted.
type Failure struct {
	Project string
	Session string
	Err     error
}

// Options controls batch archive generation.
type Options struct {
	Merge         bool   // reconcile against an existing archive in outputDir
	Prefix        string // source label in project indexes; defaults to each session's own
	IncludeAgents bool
	Quiet         bool
	Since         time.Time // drop sessions modified before this
	Progress      ProgressFunc
}

// Stats summarizes a batch run.
type Stats struct {
	TotalProjects int
	TotalSessions int // sessions successfully converted this run
	Failed        []Failure
	OutputDir     string
}

// GenerateBatch converts every discoverable session under sourceDir
// into a per-project archive in outputDir. Sessions found in the
// source are always regenerated; with Merge set, sessions surviving
// only in the existing archive keep their output and index links.
// Per-session failures are recorded and skipped, never fatal.
func GenerateBatch(sourceDir, outputDir string, opts Options) (Stats, error) {
	source := discover.FindAllSessions(sourceDir, discover.Options{
		IncludeAgents: opts.IncludeAgents,
		Since:         opts.Since,
	})

	stats := Stats{OutputDir: outputDir}

	total := 0
	fresh := make(map[string]bool)
	for _, project := range source {
		total += len(project.Sessions)
		for _, session := range project.Sessions {
			fresh[project.Name+"\x00"+session.Stem()] = true
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return stats, fmt.Errorf("failed to create output directory: %w", err)
	}

	merged := source
	if opts.Merge {
		merged = MergeSessions(source, FindExistingSessions(outputDir))
	}
	stats.TotalProjects = len(merged)

	current := 0
	totalSessions := 0
	var sections []render.ProjectSection

	for _, project := range merged {
		projectDir := filepath.Join(outputDir, project.Name)
		if err := os.MkdirAll(projectDir, 0o755); err != nil {
			return stats, fmt.Errorf("failed to create project directory: %w", err)
		}

		var items []render.SessionItem
		for _, session := range project.Sessions {
			stem := session.Stem()
			sessionDir := filepath.Join(projectDir, stem)

			if fresh[project.Name+"\x00"+stem] {
				current++
				if opts.Progress != nil {
					opts.Progress(project.Name, stem, current, total)
				}
				if err := convertSession(session.Path, sessionDir); err != nil {
					stats.Failed = append(stats.Failed, Failure{
						Project: project.Name,
						Session: stem,
						Err:     err,
					})
					if !opts.Quiet {
						fmt.Fprintf(os.Stderr, "Warning: failed to convert %s/%s: %v\n", project.Name, stem, err)
					}
					// Keep the index entry only if a previous run
					// left usable output behind.
					if _, statErr := os.Stat(filepath.Join(sessionDir, "index.html")); statErr != nil {
						continue
					}
				} else {
					stats.TotalSessions++
				}
			}

			label := session.Source
			if opts.Prefix != "" {
				label = opts.Prefix
			}
			items = append(items, render.SessionItem{
				Stem:    stem,
				Date:    session.Mtime.Format("2006-01-02 15:04"),
				Size:    humanize.Bytes(uint64(session.Size)),
				Summary: session.Summary,
				Source:  label,
			})
		}

		if len(items) == 0 {
			continue
		}
		if err := render.WriteProjectIndex(filepath.Join(projectDir, "index.html"), project.Name, items); err != nil {
			return stats, err
		}
		sections = append(sections, render.ProjectSection{
			Dir:          project.Name,
			Name:         project.Name,
			SessionCount: len(items),
		})
		totalSessions += len(items)
	}

	if err := render.WriteMasterIndex(filepath.Join(outputDir, "index.html"), sections, totalSessions); err != nil {
		return stats, err
	}
	return stats, nil
}

func convertSession(path, outputDir string) error {
	entries, err := cclog.ParseFile(path)
	if err != nil {
		return err
	}
	return render.Generate(entries, outputDir, render.Context{Quiet: true})
}

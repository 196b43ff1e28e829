package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

// Source labels for combined discovery.
const (
	SourceClaude = "Claude"
	SourceCodex  = "Codex"
)

// warmupSummary marks throwaway sessions created by background
// warmup requests. Matched exactly (after lowering), nothing fuzzier.
const warmupSummary = "warmup"

// Session is a discovered session file plus display metadata.
// Never mutated after discovery; re-derived on every scan.
type Session struct {
	Path    string
	Summary string
	Mtime   time.Time
	Size    int64
	Source  string
}

// Stem returns the filename stem identifying the session,
// independent of extension and directory.
func (s Session) Stem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Project groups the sessions found under one project directory.
// Path is empty for projects reconstructed from an archive.
type Project struct {
	Name     string
	Path     string
	Sessions []Session
}

// Options controls session discovery.
type Options struct {
	Limit         int       // cap on results; 0 means unlimited
	IncludeAgents bool      // keep agent-* sub-agent session files
	Since         time.Time // drop sessions modified before this; zero means no cutoff
}

// FindLocalSessions recursively scans root for session files, most
// recent first. Sub-agent files, summaryless sessions and warmup
// markers are excluded. A missing root yields an empty result, not an
// error.
func FindLocalSessions(root string, opts Options) []Session {
	sessions := scanSessions(root, SourceClaude, opts)
	sortByMtime(sessions)
	return capSessions(sessions, opts.Limit)
}

// FindAllSessions scans root and groups the surviving sessions into
// projects by directory, sessions most recent first within each.
func FindAllSessions(root string, opts Options) []Project {
	sessions := scanSessions(root, SourceClaude, opts)

	byDir := make(map[string][]Session)
	var dirs []string
	for _, s := range sessions {
		dir := filepath.Dir(s.Path)
		if _, seen := byDir[dir]; !seen {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], s)
	}
	sort.Strings(dirs)

	var projects []Project
	for _, dir := range dirs {
		group := byDir[dir]
		sortByMtime(group)
		projects = append(projects, Project{
			Name:     ProjectDisplayName(filepath.Base(dir)),
			Path:     dir,
			Sessions: group,
		})
	}
	return projects
}

// FindCombinedSessions scans a Claude projects root and a Codex
// sessions root, tags each result with its origin, and resorts the
// merged list by modification time across both sources. Merging
// before sorting keeps recency ordering correct regardless of source.
func FindCombinedSessions(claudeDir, codexDir string, opts Options) []Session {
	// Per-source scans are uncapped so that the limit applies to the
	// combined ordering, not each source separately.
	uncapped := opts
	uncapped.Limit = 0

	sessions := scanSessions(claudeDir, SourceClaude, uncapped)
	sessions = append(sessions, scanCodexSessions(codexDir, uncapped)...)

	sortByMtime(sessions)
	return capSessions(sessions, opts.Limit)
}

func scanSessions(root, source string, opts Options) []Session {
	if _, err := os.Stat(root); err != nil {
		return nil
	}

	var sessions []Session
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if info.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}
		if !opts.IncludeAgents && strings.HasPrefix(filepath.Base(path), "agent-") {
			return nil
		}
		if !opts.Since.IsZero() && info.ModTime().Before(opts.Since) {
			return nil
		}

		summary := cclog.SessionSummary(path, cclog.DefaultSummaryLength)
		if summary == cclog.NoSummary || strings.ToLower(summary) == warmupSummary {
			return nil
		}

		sessions = append(sessions, Session{
			Path:    path,
			Summary: summary,
			Mtime:   info.ModTime(),
			Size:    info.Size(),
			Source:  source,
		})
		return nil
	})
	return sessions
}

func scanCodexSessions(root string, opts Options) []Session {
	if root == "" {
		return nil
	}
	if _, err := os.Stat(root); err != nil {
		return nil
	}

	var sessions []Session
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || !cclog.IsCodexRollout(path) {
			return nil
		}
		if !opts.Since.IsZero() && info.ModTime().Before(opts.Since) {
			return nil
		}

		summary := cclog.SessionSummary(path, cclog.DefaultSummaryLength)
		if summary == cclog.NoSummary || strings.ToLower(summary) == warmupSummary {
			return nil
		}

		sessions = append(sessions, Session{
			Path:    path,
			Summary: summary,
			Mtime:   info.ModTime(),
			Size:    info.Size(),
			Source:  SourceCodex,
		})
		return nil
	})
	return sessions
}

func sortByMtime(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Mtime.After(sessions[j].Mtime)
	})
}

func capSessions(sessions []Session, limit int) []Session {
	if limit > 0 && len(sessions) > limit {
		return sessions[:limit]
	}
	return sessions
}

package archive

import (
	"html"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/neilberkman/cctranscripts/internal/core/discover"
)

// indexItemPattern pulls the session link and summary back out of a
// generated project index page. This is the inverse of the index-item
// markup the renderer writes.
var indexItemPattern = regexp.MustCompile(
	`(?s)<div class="index-item">\s*<a href="([^"/]+)/index\.html">.*?<div class="index-item-content">\s*<p[^>]*>(.*?)</p>`)

// FindExistingSessions reconstructs the project list from a
// previously generated archive by scanning its per-project index
// pages. A missing or empty output directory yields an empty result.
// Sessions whose subdirectory no longer holds an index.html are
// dropped; they are not materialized and cannot be relinked.
func FindExistingSessions(outputDir string) []discover.Project {
	dirEntries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var projects []discover.Project
	for _, name := range names {
		projectDir := filepath.Join(outputDir, name)
		sessions := scanProjectIndex(projectDir)
		if len(sessions) == 0 {
			continue
		}
		projects = append(projects, discover.Project{
			Name:     name,
			Sessions: sessions,
		})
	}
	return projects
}

func scanProjectIndex(projectDir string) []discover.Session {
	content, err := os.ReadFile(filepath.Join(projectDir, "index.html"))
	if err != nil {
		return nil
	}

	var sessions []discover.Session
	for _, match := range indexItemPattern.FindAllStringSubmatch(string(content), -1) {
		stem := match[1]
		summary := strings.TrimSpace(html.UnescapeString(match[2]))

		sessionIndex := filepath.Join(projectDir, stem, "index.html")
		info, err := os.Stat(sessionIndex)
		if err != nil {
			continue
		}

		sessions = append(sessions, discover.Session{
			Path:    filepath.Join(projectDir, stem),
			Summary: summary,
			Mtime:   info.ModTime(),
			Size:    info.Size(),
		})
	}
	return sessions
}

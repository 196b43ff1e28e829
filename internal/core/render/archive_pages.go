package render

import (
	"fmt"
	"os"
	"strings"
)

// SessionItem is one row of a project index page.
type SessionItem struct {
	Stem    string // session directory name, linked as stem/index.html
	Date    string
	Size    string
	Summary string
	Source  string // optional label (Claude, Codex); "" hides it
}

// ProjectSection is one row of the master archive index.
type ProjectSection struct {
	Dir          string // project directory name
	Name         string
	SessionCount int
}

// ProjectIndexHTML renders the per-project session list. The item
// markup is also the format the archive scanner reads back when
// merging into an existing archive.
func ProjectIndexHTML(projectName string, items []SessionItem) string {
	var b strings.Builder
	for _, item := range items {
		data := map[string]interface{}{
			"stem":    item.Stem,
			"date":    item.Date,
			"size":    item.Size,
			"summary": item.Summary,
		}
		if item.Source != "" {
			data["source"] = item.Source
		}
		b.WriteString(renderTemplate(sessionItemTemplate, data))
	}
	return renderTemplate(projectIndexTemplate, map[string]interface{}{
		"css":          css,
		"js":           js,
		"project_name": projectName,
		"items_html":   b.String(),
	})
}

// WriteProjectIndex writes the project index page to path.
func WriteProjectIndex(path, projectName string, items []SessionItem) error {
	content := ProjectIndexHTML(projectName, items)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write project index: %w", err)
	}
	return nil
}

// WriteMasterIndex writes the archive root index listing every
// project with its session count.
func WriteMasterIndex(path string, sections []ProjectSection, sessionCount int) error {
	var b strings.Builder
	for _, section := range sections {
		b.WriteString(renderTemplate(projectSectionTemplate, map[string]interface{}{
			"dir":           section.Dir,
			"name":          section.Name,
			"session_count": section.SessionCount,
		}))
	}
	content := renderTemplate(masterIndexTemplate, map[string]interface{}{
		"css":           css,
		"js":            js,
		"project_count": len(sections),
		"session_count": sessionCount,
		"sections_html": b.String(),
	})
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write master index: %w", err)
	}
	return nil
}

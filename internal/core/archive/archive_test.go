package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/neilberkman/cctranscripts/internal/core/discover"
	"github.com/neilberkman/cctranscripts/internal/core/render"
)

const sampleSession = `{"type":"user","timestamp":"2025-01-01T10:00:00Z","message":{"role":"user","content":"Fix the login bug"}}
{"type":"assistant","timestamp":"2025-01-01T10:00:02Z","message":{"role":"assistant","content":[{"type":"text","text":"On it."}]}}
`

func writeSession(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sampleSession), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// mockArchive builds an archive the way a previous batch run would,
// using the real index writer so the scanner sees production markup.
func mockArchive(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	projectA := filepath.Join(dir, "project-a")
	for _, stem := range []string{"abc123", "def456"} {
		if err := os.MkdirAll(filepath.Join(projectA, stem), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(projectA, stem, "index.html"), []byte("<html></html>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	err := render.WriteProjectIndex(filepath.Join(projectA, "index.html"), "project-a", []render.SessionItem{
		{Stem: "abc123", Date: "2025-01-01", Size: "15 kB", Summary: "Hello from project A"},
		{Stem: "def456", Date: "2025-01-02", Size: "20 kB", Summary: "Second session in project A"},
	})
	if err != nil {
		t.Fatal(err)
	}

	projectB := filepath.Join(dir, "project-b")
	if err := os.MkdirAll(filepath.Join(projectB, "ghi789"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(projectB, "ghi789", "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	err = render.WriteProjectIndex(filepath.Join(projectB, "index.html"), "project-b", []render.SessionItem{
		{Stem: "ghi789", Date: "2025-01-03", Size: "10 kB", Summary: "Hello from project B"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>Master index</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestFindExistingSessions(t *testing.T) {
	archive := mockArchive(t)
	result := FindExistingSessions(archive)

	if len(result) != 2 {
		t.Fatalf("found %d projects, want 2", len(result))
	}

	var projectA *discover.Project
	for i := range result {
		if result[i].Name == "project-a" {
			projectA = &result[i]
		}
	}
	if projectA == nil {
		t.Fatal("project-a not found")
	}
	if len(projectA.Sessions) != 2 {
		t.Fatalf("project-a has %d sessions, want 2", len(projectA.Sessions))
	}

	var abc *discover.Session
	for i := range projectA.Sessions {
		if projectA.Sessions[i].Stem() == "abc123" {
			abc = &projectA.Sessions[i]
		}
	}
	if abc == nil {
		t.Fatal("session abc123 not found")
	}
	if abc.Summary != "Hello from project A" {
		t.Errorf("summary = %q, want %q", abc.Summary, "Hello from project A")
	}
	if abc.Mtime.IsZero() || abc.Size == 0 {
		t.Error("expected mtime and size from the session index file")
	}
}

func TestFindExistingSessionsSkipsUnmaterialized(t *testing.T) {
	archive := mockArchive(t)
	// Remove a session directory while its index entry remains.
	if err := os.RemoveAll(filepath.Join(archive, "project-a", "def456")); err != nil {
		t.Fatal(err)
	}

	result := FindExistingSessions(archive)
	for _, project := range result {
		if project.Name != "project-a" {
			continue
		}
		for _, session := range project.Sessions {
			if session.Stem() == "def456" {
				t.Error("removed session should not be reported")
			}
		}
	}
}

func TestFindExistingSessionsMissingDir(t *testing.T) {
	if got := FindExistingSessions("/nonexistent/path"); got != nil {
		t.Errorf("expected nil for a missing directory, got %v", got)
	}
	if got := FindExistingSessions(t.TempDir()); got != nil {
		t.Errorf("expected nil for an empty directory, got %v", got)
	}
}

func TestMergeSessionsSourceOnly(t *testing.T) {
	source := []discover.Project{{
		Name: "project-a",
		Path: "/src/project-a",
		Sessions: []discover.Session{
			{Path: "/src/abc.jsonl", Summary: "Session A", Mtime: time.Unix(100, 0), Size: 1000},
		},
	}}

	result := MergeSessions(source, nil)
	if len(result) != 1 || result[0].Name != "project-a" || len(result[0].Sessions) != 1 {
		t.Fatalf("unexpected merge result: %+v", result)
	}
}

func TestMergeSessionsPreservesOrphans(t *testing.T) {
	source := []discover.Project{{
		Name: "project-a",
		Path: "/src/project-a",
		Sessions: []discover.Session{
			{Path: "/src/abc.jsonl", Summary: "New session", Mtime: time.Unix(200, 0), Size: 1000},
		},
	}}
	existing := []discover.Project{{
		Name: "project-a",
		Sessions: []discover.Session{
			{Path: "/archive/project-a/orphan", Summary: "Orphan session", Mtime: time.Unix(100, 0), Size: 500},
		},
	}}

	result := MergeSessions(source, existing)
	if len(result) != 1 {
		t.Fatalf("got %d projects, want 1", len(result))
	}
	if len(result[0].Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(result[0].Sessions))
	}
	summaries := []string{result[0].Sessions[0].Summary, result[0].Sessions[1].Summary}
	// Most recent first.
	if summaries[0] != "New session" || summaries[1] != "Orphan session" {
		t.Errorf("unexpected session order: %v", summaries)
	}
}

func TestMergeSessionsCombinesProjects(t *testing.T) {
	source := []discover.Project{{
		Name: "project-a",
		Sessions: []discover.Session{
			{Path: "/src/abc.jsonl", Summary: "Session A", Mtime: time.Unix(100, 0)},
		},
	}}
	existing := []discover.Project{{
		Name: "project-b",
		Sessions: []discover.Session{
			{Path: "/archive/project-b/xyz", Summary: "Session B", Mtime: time.Unix(50, 0)},
		},
	}}

	result := MergeSessions(source, existing)
	if len(result) != 2 {
		t.Fatalf("got %d projects, want 2", len(result))
	}
	names := []string{result[0].Name, result[1].Name}
	if names[0] != "project-a" || names[1] != "project-b" {
		t.Errorf("unexpected project order: %v", names)
	}
}

func TestMergeSessionsSourceWinsByStem(t *testing.T) {
	source := []discover.Project{{
		Name: "project-a",
		Sessions: []discover.Session{
			{Path: "/src/abc123.jsonl", Summary: "Updated session", Mtime: time.Unix(200, 0), Size: 2000},
		},
	}}
	existing := []discover.Project{{
		Name: "project-a",
		Sessions: []discover.Session{
			{Path: "/archive/project-a/abc123", Summary: "Old session", Mtime: time.Unix(100, 0), Size: 1000},
		},
	}}

	result := MergeSessions(source, existing)
	if len(result) != 1 || len(result[0].Sessions) != 1 {
		t.Fatalf("unexpected merge result: %+v", result)
	}
	if got := result[0].Sessions[0].Summary; got != "Updated session" {
		t.Errorf("summary = %q, want the source session to win", got)
	}
}

func TestMergeSessionsBothEmpty(t *testing.T) {
	if got := MergeSessions(nil, nil); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestGenerateBatch(t *testing.T) {
	sourceDir := t.TempDir()
	projectDir := filepath.Join(sourceDir, "project-a")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSession(t, projectDir, "abc123.jsonl")

	outputDir := t.TempDir()
	var calls int
	stats, err := GenerateBatch(sourceDir, outputDir, Options{
		Quiet: true,
		Progress: func(project, session string, current, total int) {
			calls++
			if total != 1 {
				t.Errorf("progress total = %d, want 1", total)
			}
		},
	})
	if err != nil {
		t.Fatalf("GenerateBatch() error: %v", err)
	}
	if stats.TotalProjects != 1 || stats.TotalSessions != 1 || len(stats.Failed) != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if calls != 1 {
		t.Errorf("progress called %d times, want 1", calls)
	}

	for _, path := range []string{
		filepath.Join(outputDir, "index.html"),
		filepath.Join(outputDir, "project-a", "index.html"),
		filepath.Join(outputDir, "project-a", "abc123", "index.html"),
		filepath.Join(outputDir, "project-a", "abc123", "page-001.html"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s", path)
		}
	}

	index, err := os.ReadFile(filepath.Join(outputDir, "project-a", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "Fix the login bug") {
		t.Error("project index missing session summary")
	}
}

func TestGenerateBatchIsolatesFailedSession(t *testing.T) {
	sourceDir := t.TempDir()
	projectDir := filepath.Join(sourceDir, "project-a")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSession(t, projectDir, "abc123.jsonl")
	writeSession(t, projectDir, "broken.jsonl")

	// A stray regular file where the session's output directory
	// belongs makes that one conversion fail.
	outputDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(outputDir, "project-a"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "project-a", "broken"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	stats, err := GenerateBatch(sourceDir, outputDir, Options{Quiet: true})
	if err != nil {
		t.Fatalf("GenerateBatch() error: %v", err)
	}

	if stats.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1", stats.TotalSessions)
	}
	if len(stats.Failed) != 1 {
		t.Fatalf("Failed = %+v, want exactly one entry", stats.Failed)
	}
	failure := stats.Failed[0]
	if failure.Project != "project-a" || failure.Session != "broken" {
		t.Errorf("failure recorded as %s/%s", failure.Project, failure.Session)
	}
	if failure.Err == nil || failure.Err.Error() == "" {
		t.Errorf("failure carries no error: %+v", failure)
	}

	// The healthy session still converts and the indexes still get
	// written.
	if _, err := os.Stat(filepath.Join(outputDir, "project-a", "abc123", "index.html")); err != nil {
		t.Errorf("missing healthy session output: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(outputDir, "project-a", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), `abc123/index.html`) {
		t.Error("project index missing healthy session link")
	}
	if strings.Contains(string(index), `broken/index.html`) {
		t.Error("project index links the failed session despite no usable output")
	}
	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); err != nil {
		t.Errorf("missing master index: %v", err)
	}
}

func TestGenerateBatchMergePreservesOrphanOutput(t *testing.T) {
	sourceDir := t.TempDir()
	projectDir := filepath.Join(sourceDir, "project-a")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSession(t, projectDir, "abc123.jsonl")
	orphanPath := writeSession(t, projectDir, "orphan.jsonl")

	outputDir := t.TempDir()
	if _, err := GenerateBatch(sourceDir, outputDir, Options{Quiet: true}); err != nil {
		t.Fatal(err)
	}

	// The orphan's source disappears before the second run.
	if err := os.Remove(orphanPath); err != nil {
		t.Fatal(err)
	}
	if _, err := GenerateBatch(sourceDir, outputDir, Options{Merge: true, Quiet: true}); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "project-a", "orphan", "index.html")); err != nil {
		t.Error("orphan output removed by merge run")
	}
	index, err := os.ReadFile(filepath.Join(outputDir, "project-a", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), `href="orphan/index.html"`) {
		t.Error("orphan link missing from regenerated project index")
	}
}

func TestGenerateBatchWithoutMergeDropsOrphans(t *testing.T) {
	sourceDir := t.TempDir()
	projectDir := filepath.Join(sourceDir, "project-a")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSession(t, projectDir, "abc123.jsonl")
	orphanPath := writeSession(t, projectDir, "orphan.jsonl")

	outputDir := t.TempDir()
	if _, err := GenerateBatch(sourceDir, outputDir, Options{Quiet: true}); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(orphanPath); err != nil {
		t.Fatal(err)
	}
	if _, err := GenerateBatch(sourceDir, outputDir, Options{Quiet: true}); err != nil {
		t.Fatal(err)
	}

	index, err := os.ReadFile(filepath.Join(outputDir, "project-a", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(index), `href="orphan/index.html"`) {
		t.Error("orphan still linked without --merge")
	}
}

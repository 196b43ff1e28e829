package discover

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func claudeSession(text string) string {
	return `{"type": "user", "timestamp": "2025-01-01T10:00:00.000Z", "message": {"role": "user", "content": "` + text + `"}}` + "\n"
}

func codexSession(text string) string {
	return `{"timestamp":"2025-12-28T10:00:00.000Z","type":"session_meta","payload":{"id":"abc123"}}` + "\n" +
		`{"timestamp":"2025-12-28T10:00:00.000Z","type":"response_item","payload":{"type":"message","role":"user","content":[{"type":"input_text","text":"` + text + `"}]}}` + "\n"
}

func mockProjects(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "-home-user-projects-project-a", "abc123.jsonl"), claudeSession("Hello from project A"))
	writeFile(t, filepath.Join(root, "-home-user-projects-project-a", "def456.jsonl"), claudeSession("Second session in project A"))
	writeFile(t, filepath.Join(root, "-home-user-projects-project-a", "agent-xyz789.jsonl"), claudeSession("Agent session"))
	writeFile(t, filepath.Join(root, "-home-user-projects-project-b", "ghi789.jsonl"), claudeSession("Hello from project B"))
	writeFile(t, filepath.Join(root, "-home-user-projects-project-b", "warmup123.jsonl"), claudeSession("warmup"))

	return root
}

func TestProjectDisplayName(t *testing.T) {
	tests := []struct {
		encoded string
		want    string
	}{
		{"-home-user-projects-myproject", "myproject"},
		{"-home-user-code-apps-webapp", "apps-webapp"},
		{"-mnt-c-Users-name-Projects-app", "app"},
		{"simple-project", "simple-project"},
	}

	for _, tt := range tests {
		t.Run(tt.encoded, func(t *testing.T) {
			if got := ProjectDisplayName(tt.encoded); got != tt.want {
				t.Errorf("ProjectDisplayName(%q) = %q, want %q", tt.encoded, got, tt.want)
			}
		})
	}
}

func TestFindAllSessions(t *testing.T) {
	root := mockProjects(t)

	projects := FindAllSessions(root, Options{})

	if len(projects) != 2 {
		t.Fatalf("project count = %d, want 2", len(projects))
	}

	byName := make(map[string]Project)
	for _, p := range projects {
		byName[p.Name] = p
	}

	projectA, ok := byName["project-a"]
	if !ok {
		t.Fatal("project-a not found")
	}
	if len(projectA.Sessions) != 2 {
		t.Errorf("project-a session count = %d, want 2 (agent excluded)", len(projectA.Sessions))
	}
	for _, s := range projectA.Sessions {
		if s.Summary == "" {
			t.Error("session missing summary")
		}
	}

	projectB, ok := byName["project-b"]
	if !ok {
		t.Fatal("project-b not found")
	}
	if len(projectB.Sessions) != 1 {
		t.Errorf("project-b session count = %d, want 1 (warmup excluded)", len(projectB.Sessions))
	}
}

func TestFindAllSessions_IncludeAgents(t *testing.T) {
	root := mockProjects(t)

	projects := FindAllSessions(root, Options{IncludeAgents: true})

	for _, p := range projects {
		if p.Name == "project-a" {
			if len(p.Sessions) != 3 {
				t.Errorf("project-a session count = %d, want 3", len(p.Sessions))
			}
			return
		}
	}
	t.Fatal("project-a not found")
}

func TestFindAllSessions_MissingRoot(t *testing.T) {
	if got := FindAllSessions("/nonexistent/path", Options{}); got != nil {
		t.Errorf("FindAllSessions() = %v, want empty", got)
	}
}

func TestFindLocalSessions_SortedAndLimited(t *testing.T) {
	root := t.TempDir()

	old := filepath.Join(root, "p", "old.jsonl")
	mid := filepath.Join(root, "p", "mid.jsonl")
	recent := filepath.Join(root, "p", "recent.jsonl")
	writeFile(t, old, claudeSession("Old"))
	writeFile(t, mid, claudeSession("Mid"))
	writeFile(t, recent, claudeSession("Recent"))

	base := time.Now().Add(-time.Hour)
	for i, path := range []string{old, mid, recent} {
		ts := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, ts, ts); err != nil {
			t.Fatal(err)
		}
	}

	sessions := FindLocalSessions(root, Options{Limit: 2})
	if len(sessions) != 2 {
		t.Fatalf("session count = %d, want 2", len(sessions))
	}
	if sessions[0].Summary != "Recent" || sessions[1].Summary != "Mid" {
		t.Errorf("order = [%s, %s], want [Recent, Mid]", sessions[0].Summary, sessions[1].Summary)
	}
}

func TestFindLocalSessions_SinceCutoff(t *testing.T) {
	root := t.TempDir()

	old := filepath.Join(root, "p", "old.jsonl")
	recent := filepath.Join(root, "p", "recent.jsonl")
	writeFile(t, old, claudeSession("Old"))
	writeFile(t, recent, claudeSession("Recent"))

	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	sessions := FindLocalSessions(root, Options{Since: time.Now().Add(-24 * time.Hour)})
	if len(sessions) != 1 || sessions[0].Summary != "Recent" {
		t.Errorf("sessions = %+v, want only Recent", sessions)
	}
}

func TestFindCombinedSessions(t *testing.T) {
	root := t.TempDir()
	claudeDir := filepath.Join(root, "claude_projects")
	codexDir := filepath.Join(root, "codex_sessions")

	claudePath := filepath.Join(claudeDir, "project-a", "session1.jsonl")
	codexPath := filepath.Join(codexDir, "rollout-2025-12-28T10-00-00-abc123.jsonl")
	writeFile(t, claudePath, claudeSession("Claude session"))
	writeFile(t, codexPath, codexSession("Codex session"))

	// Claude session created first, Codex session later.
	older := time.Now().Add(-time.Hour)
	if err := os.Chtimes(claudePath, older, older); err != nil {
		t.Fatal(err)
	}

	results := FindCombinedSessions(claudeDir, codexDir, Options{})
	if len(results) != 2 {
		t.Fatalf("combined count = %d, want 2", len(results))
	}
	if results[0].Source != SourceCodex || results[0].Path != codexPath {
		t.Errorf("first result = %+v, want the Codex session", results[0])
	}
	if results[1].Source != SourceClaude || results[1].Path != claudePath {
		t.Errorf("second result = %+v, want the Claude session", results[1])
	}
}

func TestFindCombinedSessions_LimitAcrossSources(t *testing.T) {
	root := t.TempDir()
	claudeDir := filepath.Join(root, "claude_projects")
	codexDir := filepath.Join(root, "codex_sessions")

	for _, name := range []string{"a.jsonl", "b.jsonl", "c.jsonl"} {
		writeFile(t, filepath.Join(claudeDir, "p", name), claudeSession("Test"))
	}
	for _, name := range []string{
		"rollout-2025-12-28T10-00-00-t0.jsonl",
		"rollout-2025-12-28T10-00-01-t1.jsonl",
		"rollout-2025-12-28T10-00-02-t2.jsonl",
	} {
		writeFile(t, filepath.Join(codexDir, name), codexSession("Test"))
	}

	results := FindCombinedSessions(claudeDir, codexDir, Options{Limit: 4})
	if len(results) != 4 {
		t.Errorf("combined count = %d, want 4", len(results))
	}
}

func TestFindCombinedSessions_MissingDirectories(t *testing.T) {
	if got := FindCombinedSessions("/nonexistent/claude", "/nonexistent/codex", Options{}); len(got) != 0 {
		t.Errorf("FindCombinedSessions() = %v, want empty", got)
	}

	root := t.TempDir()
	claudeDir := filepath.Join(root, "claude_projects")
	writeFile(t, filepath.Join(claudeDir, "p", "s.jsonl"), claudeSession("Test"))

	results := FindCombinedSessions(claudeDir, "/nonexistent/codex", Options{})
	if len(results) != 1 || results[0].Source != SourceClaude {
		t.Errorf("results = %+v, want one Claude session", results)
	}
}

func TestSessionStem(t *testing.T) {
	s := Session{Path: "/archive/project-a/abc123.jsonl"}
	if got := s.Stem(); got != "abc123" {
		t.Errorf("Stem() = %q, want abc123", got)
	}
	s = Session{Path: "/archive/project-a/abc123"}
	if got := s.Stem(); got != "abc123" {
		t.Errorf("Stem() = %q, want abc123", got)
	}
}

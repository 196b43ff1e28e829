package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

func userPrompt(text, timestamp string) cclog.LogEntry {
	return cclog.LogEntry{
		Type:      cclog.EntryUser,
		Timestamp: timestamp,
		Message:   cclog.MessageBody{Role: "user", Plain: true, Text: text},
	}
}

func assistantBlocks(timestamp string, blocks ...cclog.ContentBlock) cclog.LogEntry {
	return cclog.LogEntry{
		Type:      cclog.EntryAssistant,
		Timestamp: timestamp,
		Message:   cclog.MessageBody{Role: "assistant", Blocks: blocks},
	}
}

func toolReply(timestamp, toolID, text string) cclog.LogEntry {
	return cclog.LogEntry{
		Type:      cclog.EntryUser,
		Timestamp: timestamp,
		Message: cclog.MessageBody{
			Role:   "user",
			Blocks: []cclog.ContentBlock{cclog.ToolResultBlock{ToolUseID: toolID, Text: text}},
		},
	}
}

func TestDetectGitHubRepo(t *testing.T) {
	entries := []cclog.LogEntry{
		userPrompt("push it", "2025-01-01T10:00:00Z"),
		toolReply("2025-01-01T10:00:05Z", "tool_1",
			"remote: Create a pull request for 'feature' on GitHub by visiting:\n"+
				"remote:      https://github.com/example/widgets/pull/new/feature\n"),
	}
	if got := DetectGitHubRepo(entries); got != "example/widgets" {
		t.Errorf("DetectGitHubRepo() = %q, want %q", got, "example/widgets")
	}

	if got := DetectGitHubRepo(entries[:1]); got != "" {
		t.Errorf("DetectGitHubRepo() without push output = %q, want empty", got)
	}
}

func TestMessageID(t *testing.T) {
	got := MessageID("2025-01-01T10:00:00.123Z")
	want := "msg-2025-01-01T10-00-00-123Z"
	if got != want {
		t.Errorf("MessageID() = %q, want %q", got, want)
	}
}

func TestIsJSONLike(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{`{"a": 1}`, true},
		{`  [1, 2]  `, true},
		{`plain text`, false},
		{`{not json`, false},
		{``, false},
	}
	for _, tt := range tests {
		if got := isJSONLike(tt.text); got != tt.want {
			t.Errorf("isJSONLike(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestTextResultHTMLCommitCards(t *testing.T) {
	ctx := Context{GitHubRepo: "example/widgets"}
	text := "[main abc1234] Fix the flux capacitor\n 1 file changed"
	html := textResultHTML(text, ctx)

	if !strings.Contains(html, "commit-card") {
		t.Error("expected a commit card in rendered output")
	}
	if !strings.Contains(html, "https://github.com/example/widgets/commit/abc1234") {
		t.Error("expected a commit link using the configured repo")
	}
	if !strings.Contains(html, "Fix the flux capacitor") {
		t.Error("expected the commit message in rendered output")
	}

	// Without a repo the card renders but carries no link.
	plain := textResultHTML(text, Context{})
	if strings.Contains(plain, "<a href") {
		t.Error("expected no commit link when repo is unset")
	}
}

func TestRenderMessageSuppressesToolReplies(t *testing.T) {
	entry := toolReply("2025-01-01T10:00:05Z", "tool_1", "done")
	if got := renderMessage(&entry, nil, Context{}); got != "" {
		t.Errorf("tool reply rendered as %q, want empty", got)
	}
}

func TestRenderToolUseNestsResult(t *testing.T) {
	results := map[string]cclog.ToolResultBlock{
		"tool_1": {ToolUseID: "tool_1", Text: "it worked"},
	}
	entry := assistantBlocks("2025-01-01T10:00:02Z", cclog.ToolUseBlock{
		ID:    "tool_1",
		Name:  "Bash",
		Input: []byte(`{"command":"ls","description":"list files"}`),
	})
	html := renderMessage(&entry, results, Context{})
	if !strings.Contains(html, "it worked") {
		t.Error("expected tool result nested under the tool call")
	}
	if !strings.Contains(html, "ls") {
		t.Error("expected the bash command in rendered output")
	}
}

func TestRenderEditTool(t *testing.T) {
	entry := assistantBlocks("2025-01-01T10:00:02Z", cclog.ToolUseBlock{
		ID:    "tool_2",
		Name:  "Edit",
		Input: []byte(`{"file_path":"main.go","old_string":"foo","new_string":"bar"}`),
	})
	html := renderMessage(&entry, nil, Context{})
	for _, want := range []string{"main.go", "edit-old", "edit-new", "foo", "bar"} {
		if !strings.Contains(html, want) {
			t.Errorf("edit tool output missing %q", want)
		}
	}
}

func TestGenerate(t *testing.T) {
	entries := []cclog.LogEntry{
		userPrompt("Please fix the bug", "2025-01-01T10:00:00Z"),
		assistantBlocks("2025-01-01T10:00:02Z",
			cclog.TextBlock{Text: "Looking into it."},
			cclog.ToolUseBlock{ID: "tool_1", Name: "Bash", Input: []byte(`{"command":"git commit -m fix"}`)},
		),
		toolReply("2025-01-01T10:00:05Z", "tool_1", "[main abc1234] Fix the bug\n 1 file changed"),
	}

	dir := t.TempDir()
	if err := Generate(entries, dir, Context{GitHubRepo: "example/widgets", Quiet: true}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(dir, "page-001.html"))
	if err != nil {
		t.Fatalf("missing page-001.html: %v", err)
	}
	pageHTML := string(page)
	if !strings.Contains(pageHTML, `id="msg-2025-01-01T10-00-00Z"`) {
		t.Error("page missing prompt message anchor")
	}
	if !strings.Contains(pageHTML, "commit-card") {
		t.Error("page missing nested commit card")
	}
	// The tool reply itself must not appear as a standalone message.
	if strings.Count(pageHTML, `<div class="message `) != 2 {
		t.Errorf("expected exactly 2 message cards, page:\n%s", pageHTML)
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("missing index.html: %v", err)
	}
	indexHTML := string(index)
	if !strings.Contains(indexHTML, "page-001.html#msg-2025-01-01T10-00-00Z") {
		t.Error("index missing link to the prompt")
	}
	if !strings.Contains(indexHTML, "index-commit") {
		t.Error("index missing commit timeline item")
	}
	if !strings.Contains(indexHTML, "1 bash") {
		t.Error("index missing tool stats")
	}
}

func TestGenerateContinuationWrapper(t *testing.T) {
	entries := []cclog.LogEntry{
		userPrompt("First prompt", "2025-01-01T10:00:00Z"),
		{
			Type:             cclog.EntryUser,
			Timestamp:        "2025-01-01T11:00:00Z",
			IsCompactSummary: true,
			Message:          cclog.MessageBody{Role: "user", Plain: true, Text: "Summary of earlier work"},
		},
	}

	dir := t.TempDir()
	if err := Generate(entries, dir, Context{GitHubRepo: "example/widgets", Quiet: true}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(dir, "page-001.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), `<details class="continuation">`) {
		t.Error("continuation summary not wrapped in details element")
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	// The continuation must not show up as its own timeline prompt.
	if strings.Contains(string(index), "Summary of earlier work") {
		t.Error("continuation prompt leaked into the index timeline")
	}
}

func TestGenerateEmptySession(t *testing.T) {
	dir := t.TempDir()
	if err := Generate(nil, dir, Context{GitHubRepo: "example/widgets", Quiet: true}); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Error("expected an index.html even for an empty session")
	}
}

func TestProjectIndexHTMLRoundTripShape(t *testing.T) {
	html := ProjectIndexHTML("widgets", []SessionItem{
		{Stem: "session-abc", Date: "2025-01-01 10:00", Size: "12 kB", Summary: "Fix the bug", Source: "Claude"},
	})
	for _, want := range []string{
		`href="session-abc/index.html"`,
		`<div class="index-item-content"><p>Fix the bug</p></div>`,
		"source-label",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("project index missing %q", want)
		}
	}
}

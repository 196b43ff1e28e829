package transcript

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

// LongTextThreshold is the default minimum length, in characters, for
// a text block to be surfaced on the index page.
const LongTextThreshold = 300

// commitPattern matches git commit output: [branch hash] message
var commitPattern = regexp.MustCompile(`\[[\w\-/]+ ([a-f0-9]{7,})\] (.+?)(?:\n|$)`)

// Commit is a commit detected inside string tool-result content.
type Commit struct {
	Hash      string
	Message   string
	Timestamp string
}

// Stats summarizes one conversation (or a conversation plus its
// folded continuations).
type Stats struct {
	ToolCounts map[string]int
	LongTexts  []string
	Commits    []Commit
}

// Analyze walks every content block of the given messages once,
// counting tool invocations by name, detecting commits in string
// tool-result content, and collecting text blocks at or above the
// long-text threshold.
func Analyze(messages []cclog.LogEntry, longTextThreshold int) Stats {
	if longTextThreshold <= 0 {
		longTextThreshold = LongTextThreshold
	}
	stats := Stats{ToolCounts: make(map[string]int)}

	for i := range messages {
		entry := &messages[i]
		for _, block := range entry.Message.Blocks {
			switch b := block.(type) {
			case cclog.ToolUseBlock:
				name := b.Name
				if name == "" {
					name = "Unknown"
				}
				stats.ToolCounts[name]++
			case cclog.ToolResultBlock:
				if b.Text != "" {
					stats.Commits = append(stats.Commits, DetectCommits(b.Text, entry.Timestamp)...)
				}
			case cclog.TextBlock:
				if utf8.RuneCountInString(b.Text) >= longTextThreshold {
					stats.LongTexts = append(stats.LongTexts, b.Text)
				}
			}
		}
	}

	return stats
}

// DetectCommits extracts commit detections from a string block of
// tool output.
func DetectCommits(content, timestamp string) []Commit {
	var commits []Commit
	for _, match := range commitPattern.FindAllStringSubmatch(content, -1) {
		commits = append(commits, Commit{
			Hash:      match[1],
			Message:   match[2],
			Timestamp: timestamp,
		})
	}
	return commits
}

// CommitMatches returns the index pairs of commit matches inside
// content, for callers that need to interleave surrounding text.
func CommitMatches(content string) [][]int {
	return commitPattern.FindAllStringSubmatchIndex(content, -1)
}

// FormatToolStats renders tool counts as a compact summary string,
// most used first.
func FormatToolStats(toolCounts map[string]int) string {
	if len(toolCounts) == 0 {
		return ""
	}

	abbrev := map[string]string{
		"Bash":      "bash",
		"Read":      "read",
		"Write":     "write",
		"Edit":      "edit",
		"Glob":      "glob",
		"Grep":      "grep",
		"Task":      "task",
		"TodoWrite": "todo",
		"WebFetch":  "fetch",
		"WebSearch": "search",
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(toolCounts))
	for name, count := range toolCounts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		short, ok := abbrev[e.name]
		if !ok {
			short = strings.ToLower(e.name)
		}
		parts = append(parts, fmt.Sprintf("%d %s", e.count, short))
	}
	return strings.Join(parts, " · ")
}

// ArchiveStats aggregates across every conversation in a session.
type ArchiveStats struct {
	TotalMessages  int
	TotalToolCalls int
	ToolCounts     map[string]int
	Commits        []Commit
}

// Aggregate sums per-conversation statistics over the whole session.
func Aggregate(conversations []*Conversation, longTextThreshold int) ArchiveStats {
	agg := ArchiveStats{ToolCounts: make(map[string]int)}
	for _, conv := range conversations {
		agg.TotalMessages += len(conv.Messages)
		stats := Analyze(conv.Messages, longTextThreshold)
		for name, count := range stats.ToolCounts {
			agg.ToolCounts[name] += count
			agg.TotalToolCalls += count
		}
		agg.Commits = append(agg.Commits, stats.Commits...)
	}
	return agg
}

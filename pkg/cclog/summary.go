package cclog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// NoSummary is the sentinel for sessions with no derivable summary.
const NoSummary = "(no summary)"

// DefaultSummaryLength caps derived summaries.
const DefaultSummaryLength = 200

// SessionSummary derives a human-readable summary from a session
// file. The lookup order for JSONL files is: an explicit summary
// record first, then the first non-meta user message whose content
// does not look like a system-generated tag. The function never fails
// the caller: any read or parse problem yields NoSummary.
func SessionSummary(path string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}

	if IsCodexRollout(path) {
		return codexSummary(path, maxLength)
	}
	if filepath.Ext(path) == ".jsonl" {
		return jsonlSummary(path, maxLength)
	}

	entries, err := ParseFile(path)
	if err != nil {
		return NoSummary
	}
	for i := range entries {
		if text, ok := entries[i].PromptText(); ok {
			return truncateSummary(text, maxLength)
		}
	}
	return NoSummary
}

func jsonlSummary(path string, maxLength int) string {
	// First pass: explicit summary records win.
	if s, ok := scanLines(path, func(raw *rawLine) (string, bool) {
		if raw.Type == "summary" && raw.Summary != "" {
			return raw.Summary, true
		}
		return "", false
	}); ok {
		return truncateSummary(s, maxLength)
	}

	// Second pass: first non-meta user message with real text.
	if s, ok := scanLines(path, func(raw *rawLine) (string, bool) {
		if raw.Type != "user" || raw.IsMeta || len(raw.Message) == 0 {
			return "", false
		}
		var body MessageBody
		if err := json.Unmarshal(raw.Message, &body); err != nil {
			return "", false
		}
		if !body.Plain {
			return "", false
		}
		text := strings.TrimSpace(body.Text)
		if text == "" || strings.HasPrefix(text, "<") {
			return "", false
		}
		return text, true
	}); ok {
		return truncateSummary(s, maxLength)
	}

	return NoSummary
}

func codexSummary(path string, maxLength int) string {
	entries, err := parseCodexFile(path)
	if err != nil {
		return NoSummary
	}
	for i := range entries {
		if text, ok := entries[i].PromptText(); ok {
			return truncateSummary(strings.TrimSpace(text), maxLength)
		}
	}
	return NoSummary
}

// scanLines runs match over each parseable JSONL line and returns the
// first hit. Malformed lines are skipped.
func scanLines(path string, match func(*rawLine) (string, bool)) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var raw rawLine
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			continue
		}
		if s, ok := match(&raw); ok {
			return s, true
		}
	}
	return "", false
}

// truncateSummary cuts at maxLength runes, ellipsis included,
// preserving characters exactly up to the boundary.
func truncateSummary(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}

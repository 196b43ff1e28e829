package cclog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// rawLine is one line of a Claude Code session JSONL file.
type rawLine struct {
	Type             string          `json:"type"`
	Timestamp        string          `json:"timestamp,omitempty"`
	Message          json.RawMessage `json:"message,omitempty"`
	Summary          string          `json:"summary,omitempty"`
	IsMeta           bool            `json:"isMeta,omitempty"`
	IsCompactSummary bool            `json:"isCompactSummary,omitempty"`
}

// sessionDocument is the single-JSON-document session shape.
type sessionDocument struct {
	Loglines []rawDocEntry `json:"loglines"`
}

type rawDocEntry struct {
	Type             string          `json:"type"`
	Timestamp        string          `json:"timestamp"`
	Message          json.RawMessage `json:"message"`
	IsCompactSummary bool            `json:"isCompactSummary"`
}

// ParseFile parses a session file into the canonical entry sequence.
// JSONL files are read line by line with malformed lines skipped;
// anything else is treated as a single JSON document with a
// "loglines" array. Codex CLI rollout files are recognized by their
// filename and normalized into the same shape.
func ParseFile(path string) ([]LogEntry, error) {
	if IsCodexRollout(path) {
		return parseCodexFile(path)
	}
	if filepath.Ext(path) == ".jsonl" {
		return parseJSONLFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	return ParseSessionData(data)
}

// ParseSessionData parses an in-memory single-document session, the
// shape returned by the sessions API.
func ParseSessionData(data []byte) ([]LogEntry, error) {
	var doc sessionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse session JSON: %w", err)
	}

	var entries []LogEntry
	for _, raw := range doc.Loglines {
		entry, ok := normalizeEntry(raw.Type, raw.Timestamp, raw.Message, raw.IsCompactSummary)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseJSONLFile(path string) (entries []LogEntry, err error) {
	file, ferr := os.Open(path)
	if ferr != nil {
		return nil, fmt.Errorf("failed to open file: %w", ferr)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	// Larger buffer for long lines (10MB max); tool results can be huge.
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawLine
		if uerr := json.Unmarshal([]byte(line), &raw); uerr != nil {
			// Malformed lines never abort the parse.
			continue
		}

		entry, ok := normalizeEntry(raw.Type, raw.Timestamp, raw.Message, raw.IsCompactSummary)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	if serr := scanner.Err(); serr != nil {
		return nil, fmt.Errorf("error reading file: %w", serr)
	}

	return entries, nil
}

// normalizeEntry converts a raw record into a LogEntry. Only user and
// assistant records become entries; summary/meta/system records are
// dropped here (summary records are consumed by SessionSummary only).
func normalizeEntry(entryType, timestamp string, message json.RawMessage, compact bool) (LogEntry, bool) {
	if entryType != string(EntryUser) && entryType != string(EntryAssistant) {
		return LogEntry{}, false
	}
	if len(message) == 0 {
		return LogEntry{}, false
	}

	var body MessageBody
	if err := json.Unmarshal(message, &body); err != nil {
		return LogEntry{}, false
	}
	if body.IsZero() {
		return LogEntry{}, false
	}

	return LogEntry{
		Type:             EntryType(entryType),
		Timestamp:        timestamp,
		Message:          body,
		IsCompactSummary: compact,
	}, true
}

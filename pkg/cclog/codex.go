package cclog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// codexLine is one record of a Codex CLI rollout file
// (session_meta / response_item records).
type codexLine struct {
	Timestamp string          `json:"timestamp"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

type codexPayload struct {
	Type      string          `json:"type"`
	Role      string          `json:"role"`
	Content   []codexContent  `json:"content"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	CallID    string          `json:"call_id"`
	Output    string          `json:"output"`
	Summary   []codexContent  `json:"summary"`
}

type codexContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// IsCodexRollout reports whether the file follows the Codex CLI
// session naming convention.
func IsCodexRollout(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "rollout-") &&
		filepath.Ext(path) == ".jsonl"
}

// parseCodexFile normalizes a Codex rollout into the canonical entry
// sequence. Rollouts have no compact-summary concept, so entries from
// this source never carry the continuation flag.
func parseCodexFile(path string) (entries []LogEntry, err error) {
	file, ferr := os.Open(path)
	if ferr != nil {
		return nil, fmt.Errorf("failed to open file: %w", ferr)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw codexLine
		if uerr := json.Unmarshal([]byte(line), &raw); uerr != nil {
			continue
		}
		if raw.Type != "response_item" || len(raw.Payload) == 0 {
			continue
		}

		var payload codexPayload
		if uerr := json.Unmarshal(raw.Payload, &payload); uerr != nil {
			continue
		}

		if entry, ok := normalizeCodexItem(raw.Timestamp, &payload); ok {
			entries = append(entries, entry)
		}
	}
	if serr := scanner.Err(); serr != nil {
		return nil, fmt.Errorf("error reading file: %w", serr)
	}

	return entries, nil
}

func normalizeCodexItem(timestamp string, payload *codexPayload) (LogEntry, bool) {
	switch payload.Type {
	case "message":
		text := joinCodexText(payload.Content)
		if text == "" {
			return LogEntry{}, false
		}
		if payload.Role == "user" {
			return LogEntry{
				Type:      EntryUser,
				Timestamp: timestamp,
				Message:   MessageBody{Role: "user", Plain: true, Text: text},
			}, true
		}
		return LogEntry{
			Type:      EntryAssistant,
			Timestamp: timestamp,
			Message: MessageBody{
				Role:   "assistant",
				Blocks: []ContentBlock{TextBlock{Text: text}},
			},
		}, true

	case "reasoning":
		text := joinCodexText(payload.Summary)
		if text == "" {
			return LogEntry{}, false
		}
		return LogEntry{
			Type:      EntryAssistant,
			Timestamp: timestamp,
			Message: MessageBody{
				Role:   "assistant",
				Blocks: []ContentBlock{ThinkingBlock{Thinking: text}},
			},
		}, true

	case "function_call":
		return LogEntry{
			Type:      EntryAssistant,
			Timestamp: timestamp,
			Message: MessageBody{
				Role: "assistant",
				Blocks: []ContentBlock{ToolUseBlock{
					ID:    payload.CallID,
					Name:  payload.Name,
					Input: payload.Arguments,
				}},
			},
		}, true

	case "function_call_output":
		return LogEntry{
			Type:      EntryUser,
			Timestamp: timestamp,
			Message: MessageBody{
				Role: "user",
				Blocks: []ContentBlock{ToolResultBlock{
					ToolUseID: payload.CallID,
					Text:      payload.Output,
				}},
			},
		}, true
	}

	return LogEntry{}, false
}

func joinCodexText(blocks []codexContent) string {
	var parts []string
	for _, b := range blocks {
		switch b.Type {
		case "input_text", "output_text", "text", "summary_text":
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

package cclog

import (
	"encoding/json"
	"strings"
)

// EntryType represents the role of a log entry
type EntryType string

const (
	EntryUser      EntryType = "user"
	EntryAssistant EntryType = "assistant"
)

// LogEntry is one normalized entry in a session.
// Entries keep their on-disk order; that order is the canonical
// event order for everything downstream.
type LogEntry struct {
	Type             EntryType
	Timestamp        string // ISO-8601 as recorded, not reparsed
	Message          MessageBody
	IsCompactSummary bool
}

// MessageBody holds message content in one of two shapes: a plain
// string (Plain is true, Text holds it) or an ordered block sequence.
type MessageBody struct {
	Role   string
	Plain  bool
	Text   string
	Blocks []ContentBlock
}

// IsZero reports whether the message carried no content at all.
func (m MessageBody) IsZero() bool {
	return !m.Plain && m.Text == "" && len(m.Blocks) == 0 && m.Role == ""
}

// UnmarshalJSON decodes the raw message shape, resolving the
// string-vs-blocks content union once at the boundary.
func (m *MessageBody) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Role = raw.Role
	if len(raw.Content) == 0 {
		return nil
	}

	// String content is a prompt or plain text.
	var text string
	if err := json.Unmarshal(raw.Content, &text); err == nil {
		m.Plain = true
		m.Text = text
		return nil
	}

	var rawBlocks []json.RawMessage
	if err := json.Unmarshal(raw.Content, &rawBlocks); err != nil {
		return err
	}
	for _, rb := range rawBlocks {
		block, err := decodeBlock(rb)
		if err != nil {
			continue
		}
		m.Blocks = append(m.Blocks, block)
	}
	return nil
}

// ContentBlock is one element of a block-sequence message.
// The concrete types are TextBlock, ThinkingBlock, ToolUseBlock,
// ToolResultBlock and UnknownBlock.
type ContentBlock interface {
	blockType() string
}

// TextBlock is ordinary assistant (or user) prose.
type TextBlock struct {
	Text string
}

// ThinkingBlock is extended-thinking content.
type ThinkingBlock struct {
	Thinking string
}

// ToolUseBlock is a tool invocation request.
type ToolUseBlock struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResultBlock is the asynchronous reply to a ToolUseBlock,
// matched by ToolUseID. Content is either a plain string (Text) or
// structured JSON (Structured non-nil).
type ToolResultBlock struct {
	ToolUseID  string
	Text       string
	Structured json.RawMessage
	IsError    bool
}

// UnknownBlock preserves block kinds we do not model.
type UnknownBlock struct {
	Raw json.RawMessage
}

func (TextBlock) blockType() string       { return "text" }
func (ThinkingBlock) blockType() string   { return "thinking" }
func (ToolUseBlock) blockType() string    { return "tool_use" }
func (ToolResultBlock) blockType() string { return "tool_result" }
func (UnknownBlock) blockType() string    { return "unknown" }

func decodeBlock(data json.RawMessage) (ContentBlock, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case "text":
		var b struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return TextBlock{Text: b.Text}, nil

	case "thinking":
		var b struct {
			Thinking string `json:"thinking"`
		}
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return ThinkingBlock{Thinking: b.Thinking}, nil

	case "tool_use":
		var b struct {
			ID    string          `json:"id"`
			Name  string          `json:"name"`
			Input json.RawMessage `json:"input"`
		}
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return ToolUseBlock{ID: b.ID, Name: b.Name, Input: b.Input}, nil

	case "tool_result":
		var b struct {
			ToolUseID string          `json:"tool_use_id"`
			Content   json.RawMessage `json:"content"`
			IsError   bool            `json:"is_error"`
		}
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		block := ToolResultBlock{ToolUseID: b.ToolUseID, IsError: b.IsError}
		if len(b.Content) > 0 {
			var text string
			if err := json.Unmarshal(b.Content, &text); err == nil {
				block.Text = text
			} else {
				block.Structured = b.Content
			}
		}
		return block, nil

	default:
		return UnknownBlock{Raw: data}, nil
	}
}

// PromptText returns the message's plain-string content when the
// entry is a prompt (a user message with non-empty string content),
// and false otherwise.
func (e *LogEntry) PromptText() (string, bool) {
	if e.Type != EntryUser || !e.Message.Plain {
		return "", false
	}
	if strings.TrimSpace(e.Message.Text) == "" {
		return "", false
	}
	return e.Message.Text, true
}

package transcript

import (
	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

// Conversation is one prompt plus every entry up to (but not
// including) the next prompt. A conversation always holds at least
// the initiating prompt entry.
type Conversation struct {
	UserText       string
	Timestamp      string
	Messages       []cclog.LogEntry
	IsContinuation bool
}

// BuildConversations groups a normalized entry sequence into logical
// conversations. A user entry with non-empty plain-string content
// opens a new conversation; every other entry is appended to the one
// currently open. Entries before the first prompt belong to no
// conversation and are dropped. The grouping is a pure function of
// the entry sequence, so re-running it always yields the same
// boundaries.
func BuildConversations(entries []cclog.LogEntry) []*Conversation {
	var conversations []*Conversation
	var current *Conversation

	for _, entry := range entries {
		if text, ok := entry.PromptText(); ok {
			if current != nil {
				conversations = append(conversations, current)
			}
			current = &Conversation{
				UserText:       text,
				Timestamp:      entry.Timestamp,
				Messages:       []cclog.LogEntry{entry},
				IsContinuation: entry.IsCompactSummary,
			}
			continue
		}
		if current != nil {
			current.Messages = append(current.Messages, entry)
		}
	}
	if current != nil {
		conversations = append(conversations, current)
	}

	return conversations
}

// IsToolReply reports whether an entry is a pure tool-reply message:
// a user entry whose content consists solely of tool_result blocks.
// These messages are never rendered as visible turns; their content
// is resolved inline against the matching tool_use instead.
func IsToolReply(entry *cclog.LogEntry) bool {
	if entry.Type != cclog.EntryUser || len(entry.Message.Blocks) == 0 {
		return false
	}
	for _, block := range entry.Message.Blocks {
		if _, ok := block.(cclog.ToolResultBlock); !ok {
			return false
		}
	}
	return true
}

// ToolResults builds the conversation's tool-result index: every
// tool_result block found in a pure tool-reply message, keyed by its
// back-reference identifier. Results may land several messages after
// their invocation; lookups are by identifier only. When an
// identifier repeats, the last-seen result wins.
func (c *Conversation) ToolResults() map[string]cclog.ToolResultBlock {
	results := make(map[string]cclog.ToolResultBlock)
	for i := range c.Messages {
		entry := &c.Messages[i]
		if !IsToolReply(entry) {
			continue
		}
		for _, block := range entry.Message.Blocks {
			result, ok := block.(cclog.ToolResultBlock)
			if !ok || result.ToolUseID == "" {
				continue
			}
			results[result.ToolUseID] = result
		}
	}
	return results
}

// FoldedMessages returns conv's messages plus those of the
// continuation conversations immediately following index i, stopping
// at the first non-continuation. Continuations are logical tails of
// the preceding prompt for aggregation purposes, though they stay
// separate pagination and rendering units.
func FoldedMessages(conversations []*Conversation, i int) []cclog.LogEntry {
	messages := make([]cclog.LogEntry, 0, len(conversations[i].Messages))
	messages = append(messages, conversations[i].Messages...)
	for j := i + 1; j < len(conversations); j++ {
		if !conversations[j].IsContinuation {
			break
		}
		messages = append(messages, conversations[j].Messages...)
	}
	return messages
}

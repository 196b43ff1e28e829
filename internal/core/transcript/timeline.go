package transcript

import (
	"sort"
	"strings"
)

// stopHookPrefix marks internal feedback prompts that are excluded
// from the timeline.
const stopHookPrefix = "Stop hook feedback:"

// ItemKind tags a timeline item as a prompt or a commit event.
type ItemKind int

const (
	ItemPrompt ItemKind = iota
	ItemCommit
)

// TimelineItem is one chronologically sortable unit of the index
// page: a prompt or a detected commit.
type TimelineItem struct {
	Kind      ItemKind
	Timestamp string

	// Prompt fields
	ConvIndex int // index into the conversation slice
	PromptNum int // 1-based visible prompt number

	// Commit fields
	Commit Commit
}

// Timeline builds the merged chronological view consumed by the
// index page: one item per non-continuation prompt (excluding
// internal feedback prompts) and one per detected commit, sorted by
// timestamp ascending. The sort is stable, so ties keep discovery
// order.
func Timeline(conversations []*Conversation, longTextThreshold int) []TimelineItem {
	var items []TimelineItem

	promptNum := 0
	for i, conv := range conversations {
		if conv.IsContinuation {
			continue
		}
		if strings.HasPrefix(conv.UserText, stopHookPrefix) {
			continue
		}
		promptNum++
		items = append(items, TimelineItem{
			Kind:      ItemPrompt,
			Timestamp: conv.Timestamp,
			ConvIndex: i,
			PromptNum: promptNum,
		})
	}

	for _, conv := range conversations {
		stats := Analyze(conv.Messages, longTextThreshold)
		for _, commit := range stats.Commits {
			items = append(items, TimelineItem{
				Kind:      ItemCommit,
				Timestamp: commit.Timestamp,
				Commit:    commit,
			})
		}
	}

	// ISO-8601 timestamps sort correctly as strings.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp < items[j].Timestamp
	})

	return items
}

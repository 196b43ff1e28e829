package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/neilberkman/cctranscripts/internal/core/transcript"
	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

// Generate writes a complete paginated HTML transcript for one
// session into outputDir: page-NNN.html files plus an index.html with
// session stats and a chronological timeline of prompts and commits.
func Generate(entries []cclog.LogEntry, outputDir string, ctx Context) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if ctx.GitHubRepo == "" {
		ctx.GitHubRepo = DetectGitHubRepo(entries)
		if !ctx.Quiet {
			if ctx.GitHubRepo != "" {
				fmt.Printf("Auto-detected GitHub repo: %s\n", ctx.GitHubRepo)
			} else {
				fmt.Fprintln(os.Stderr, "Warning: could not auto-detect GitHub repo, commit links disabled")
			}
		}
	}

	conversations := transcript.BuildConversations(entries)
	pages := transcript.Paginate(conversations, ctx.pageSize())
	totalPages := len(pages)

	for _, page := range pages {
		var messages strings.Builder
		for _, conv := range page.Conversations {
			toolResults := conv.ToolResults()
			for i := range conv.Messages {
				entry := &conv.Messages[i]
				var results map[string]cclog.ToolResultBlock
				if entry.Type == cclog.EntryAssistant {
					results = toolResults
				}
				msgHTML := renderMessage(entry, results, ctx)
				if msgHTML == "" {
					continue
				}
				if i == 0 && conv.IsContinuation {
					msgHTML = `<details class="continuation"><summary>Session continuation summary</summary>` + msgHTML + `</details>`
				}
				messages.WriteString(msgHTML)
			}
		}

		content := renderTemplate(pageTemplate, map[string]interface{}{
			"css":             css,
			"js":              js,
			"page_num":        page.Number,
			"total_pages":     totalPages,
			"messages_html":   messages.String(),
			"pagination_html": paginationHTML(page.Number, totalPages),
		})
		name := fmt.Sprintf("page-%03d.html", page.Number)
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if !ctx.Quiet {
			fmt.Printf("Generated %s\n", name)
		}
	}

	threshold := ctx.longTextThreshold()
	stats := transcript.Aggregate(conversations, threshold)
	timeline := transcript.Timeline(conversations, threshold)

	promptCount := 0
	var items strings.Builder
	for _, item := range timeline {
		switch item.Kind {
		case transcript.ItemPrompt:
			if item.PromptNum > promptCount {
				promptCount = item.PromptNum
			}
			items.WriteString(timelinePromptHTML(conversations, item, ctx))
		case transcript.ItemCommit:
			items.WriteString(timelineCommitHTML(item.Commit, ctx.GitHubRepo))
		}
	}

	indexContent := renderTemplate(indexTemplate, map[string]interface{}{
		"css":              css,
		"js":               js,
		"prompt_count":     promptCount,
		"total_messages":   stats.TotalMessages,
		"total_tool_calls": stats.TotalToolCalls,
		"total_commits":    len(stats.Commits),
		"total_pages":      totalPages,
		"index_items_html": items.String(),
		"pagination_html":  paginationHTML(0, totalPages),
	})
	indexPath := filepath.Join(outputDir, "index.html")
	if err := os.WriteFile(indexPath, []byte(indexContent), 0o644); err != nil {
		return fmt.Errorf("failed to write index.html: %w", err)
	}
	if !ctx.Quiet {
		abs, err := filepath.Abs(indexPath)
		if err != nil {
			abs = indexPath
		}
		fmt.Printf("Generated %s (%d prompts, %d pages)\n", abs, len(conversations), totalPages)
	}
	return nil
}

// timelinePromptHTML builds the index entry for one prompt: the
// rendered prompt text, tool usage stats, and any long assistant
// texts, with continuation conversations folded into the stats so
// their activity lands under the prompt that started it.
func timelinePromptHTML(conversations []*transcript.Conversation, item transcript.TimelineItem, ctx Context) string {
	conv := conversations[item.ConvIndex]
	page := transcript.PageFor(item.ConvIndex, ctx.pageSize())
	link := fmt.Sprintf("page-%03d.html#%s", page, MessageID(conv.Timestamp))

	folded := transcript.FoldedMessages(conversations, item.ConvIndex)
	stats := transcript.Analyze(folded, ctx.longTextThreshold())

	var longTexts strings.Builder
	for _, text := range stats.LongTexts {
		longTexts.WriteString(renderTemplate(indexLongTextTemplate, map[string]interface{}{
			"content_html": renderMarkdown(text),
		}))
	}

	statsHTML := renderTemplate(indexStatsTemplate, map[string]interface{}{
		"tool_stats":      transcript.FormatToolStats(stats.ToolCounts),
		"long_texts_html": longTexts.String(),
	})

	return renderTemplate(indexItemTemplate, map[string]interface{}{
		"prompt_num":   item.PromptNum,
		"link":         link,
		"timestamp":    conv.Timestamp,
		"content_html": renderMarkdown(conv.UserText),
		"stats_html":   statsHTML,
	})
}

func timelineCommitHTML(commit transcript.Commit, repo string) string {
	data := map[string]interface{}{
		"hash":      commit.Hash,
		"message":   commit.Message,
		"timestamp": commit.Timestamp,
	}
	if repo != "" {
		data["repo"] = repo
	}
	return renderTemplate(indexCommitTemplate, data)
}

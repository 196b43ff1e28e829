package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/neilberkman/cctranscripts/internal/core/transcript"
	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

// renderMessage renders one log entry as a message card, or returns
// "" when nothing should appear: pure tool replies are suppressed
// because their results render nested under the tool call that
// produced them.
func renderMessage(entry *cclog.LogEntry, toolResults map[string]cclog.ToolResultBlock, ctx Context) string {
	var roleClass, roleLabel, contentHTML string
	switch entry.Type {
	case cclog.EntryUser:
		if transcript.IsToolReply(entry) {
			return ""
		}
		roleClass, roleLabel = "user", "User"
		contentHTML = renderUserContent(&entry.Message, ctx)
	case cclog.EntryAssistant:
		roleClass, roleLabel = "assistant", "Assistant"
		contentHTML = renderAssistantContent(&entry.Message, toolResults, ctx)
	default:
		return ""
	}
	if strings.TrimSpace(contentHTML) == "" {
		return ""
	}
	return renderTemplate(messageTemplate, map[string]interface{}{
		"role_class":   roleClass,
		"role_label":   roleLabel,
		"msg_id":       MessageID(entry.Timestamp),
		"timestamp":    entry.Timestamp,
		"content_html": contentHTML,
	})
}

func renderUserContent(msg *cclog.MessageBody, ctx Context) string {
	if msg.Plain {
		if isJSONLike(msg.Text) {
			return renderTemplate(userContentTemplate, map[string]interface{}{
				"content_html": "<pre class=\"json\">" + html.EscapeString(formatJSON([]byte(strings.TrimSpace(msg.Text)))) + "</pre>",
			})
		}
		return renderTemplate(userContentTemplate, map[string]interface{}{
			"content_html": renderMarkdown(msg.Text),
		})
	}
	var b strings.Builder
	for _, block := range msg.Blocks {
		b.WriteString(renderBlock(block, nil, ctx))
	}
	return b.String()
}

func renderAssistantContent(msg *cclog.MessageBody, toolResults map[string]cclog.ToolResultBlock, ctx Context) string {
	if msg.Plain {
		return fmt.Sprintf("<p>%s</p>", html.EscapeString(msg.Text))
	}
	var b strings.Builder
	for _, block := range msg.Blocks {
		b.WriteString(renderBlock(block, toolResults, ctx))
	}
	return b.String()
}

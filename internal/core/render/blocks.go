package render

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/neilberkman/cctranscripts/internal/core/transcript"
	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

// renderBlock renders one content block. toolResults links tool_use
// blocks to their result; pass nil when results should not be nested
// (user messages).
func renderBlock(block cclog.ContentBlock, toolResults map[string]cclog.ToolResultBlock, ctx Context) string {
	switch b := block.(type) {
	case cclog.ThinkingBlock:
		return renderTemplate(thinkingTemplate, map[string]interface{}{
			"content_html": renderMarkdown(b.Thinking),
		})
	case cclog.TextBlock:
		return renderTemplate(assistantTextTemplate, map[string]interface{}{
			"content_html": renderMarkdown(b.Text),
		})
	case cclog.ToolUseBlock:
		return renderToolUse(b, toolResults, ctx)
	case cclog.ToolResultBlock:
		return renderToolResult(b, ctx)
	case cclog.UnknownBlock:
		return "<pre class=\"json\">" + html.EscapeString(formatJSON(b.Raw)) + "</pre>"
	default:
		return ""
	}
}

func renderToolUse(b cclog.ToolUseBlock, toolResults map[string]cclog.ToolResultBlock, ctx Context) string {
	resultHTML := ""
	if result, ok := toolResults[b.ID]; ok {
		resultHTML = renderToolResult(result, ctx)
	}

	switch b.Name {
	case "TodoWrite":
		return renderTodoWrite(b, resultHTML)
	case "Write":
		return renderWriteTool(b, resultHTML)
	case "Edit":
		return renderEditTool(b, resultHTML)
	case "Bash":
		return renderBashTool(b, resultHTML)
	}

	var input map[string]interface{}
	if err := json.Unmarshal(b.Input, &input); err != nil {
		input = nil
	}
	description, _ := input["description"].(string)
	delete(input, "description")
	inputJSON, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		inputJSON = []byte("{}")
	}
	return renderTemplate(toolUseTemplate, map[string]interface{}{
		"tool_name":        b.Name,
		"tool_id":          b.ID,
		"description":      description,
		"input_json":       string(inputJSON),
		"tool_result_html": resultHTML,
	})
}

// renderToolResult renders result content, turning any git commit
// output into linked commit cards.
func renderToolResult(b cclog.ToolResultBlock, ctx Context) string {
	var contentHTML string
	switch {
	case b.Text != "":
		contentHTML = textResultHTML(b.Text, ctx)
	case b.Structured != nil:
		contentHTML = "<pre class=\"json\">" + html.EscapeString(formatJSON(b.Structured)) + "</pre>"
	default:
		contentHTML = "<pre></pre>"
	}
	return renderTemplate(toolResultTemplate, map[string]interface{}{
		"content_html": contentHTML,
		"is_error":     b.IsError,
	})
}

// textResultHTML splits string output around detected commits so each
// gets a styled card, with surrounding output kept as preformatted
// text.
func textResultHTML(text string, ctx Context) string {
	matches := transcript.CommitMatches(text)
	if len(matches) == 0 {
		if isJSONLike(text) {
			return "<pre class=\"json\">" + html.EscapeString(formatJSON([]byte(strings.TrimSpace(text)))) + "</pre>"
		}
		return "<pre>" + html.EscapeString(text) + "</pre>"
	}

	var b strings.Builder
	lastEnd := 0
	for _, m := range matches {
		if before := strings.TrimSpace(text[lastEnd:m[0]]); before != "" {
			b.WriteString("<pre>" + html.EscapeString(before) + "</pre>")
		}
		b.WriteString(commitCardHTML(text[m[2]:m[3]], text[m[4]:m[5]], ctx.GitHubRepo))
		lastEnd = m[1]
	}
	if after := strings.TrimSpace(text[lastEnd:]); after != "" {
		b.WriteString("<pre>" + html.EscapeString(after) + "</pre>")
	}
	return b.String()
}

func commitCardHTML(hash, message, repo string) string {
	data := map[string]interface{}{
		"hash":    hash,
		"message": message,
	}
	if repo != "" {
		data["repo"] = repo
	}
	return renderTemplate(commitCardTemplate, data)
}

func renderTodoWrite(b cclog.ToolUseBlock, resultHTML string) string {
	var input struct {
		Todos []struct {
			Content string `json:"content"`
			Status  string `json:"status"`
		} `json:"todos"`
	}
	if err := json.Unmarshal(b.Input, &input); err != nil || len(input.Todos) == 0 {
		return ""
	}
	todos := make([]map[string]interface{}, 0, len(input.Todos))
	for _, todo := range input.Todos {
		todos = append(todos, map[string]interface{}{
			"content": todo.Content,
			"status":  todo.Status,
		})
	}
	return renderTemplate(todoListTemplate, map[string]interface{}{
		"tool_id": b.ID,
		"todos":   todos,
	})
}

func renderWriteTool(b cclog.ToolUseBlock, resultHTML string) string {
	var input struct {
		FilePath string `json:"file_path"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal(b.Input, &input); err != nil {
		return ""
	}
	if input.FilePath == "" {
		input.FilePath = "Unknown file"
	}
	return renderTemplate(writeToolTemplate, map[string]interface{}{
		"tool_id":          b.ID,
		"file_path":        input.FilePath,
		"content":          input.Content,
		"tool_result_html": resultHTML,
	})
}

func renderEditTool(b cclog.ToolUseBlock, resultHTML string) string {
	var input struct {
		FilePath   string `json:"file_path"`
		OldString  string `json:"old_string"`
		NewString  string `json:"new_string"`
		ReplaceAll bool   `json:"replace_all"`
	}
	if err := json.Unmarshal(b.Input, &input); err != nil {
		return ""
	}
	if input.FilePath == "" {
		input.FilePath = "Unknown file"
	}
	return renderTemplate(editToolTemplate, map[string]interface{}{
		"tool_id":          b.ID,
		"file_path":        input.FilePath,
		"old_string":       input.OldString,
		"new_string":       input.NewString,
		"replace_all":      input.ReplaceAll,
		"tool_result_html": resultHTML,
	})
}

func renderBashTool(b cclog.ToolUseBlock, resultHTML string) string {
	var input struct {
		Command     string `json:"command"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(b.Input, &input); err != nil {
		return ""
	}
	return renderTemplate(bashToolTemplate, map[string]interface{}{
		"tool_id":          b.ID,
		"command":          input.Command,
		"description":      input.Description,
		"tool_result_html": resultHTML,
	})
}

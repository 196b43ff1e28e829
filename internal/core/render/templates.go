package render

import (
	"fmt"
	"strings"

	"github.com/cbroglie/mustache"
)

// Page shells. {{{...}}} slots carry pre-rendered HTML; everything
// else is escaped by mustache.

const pageTemplateText = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Session transcript - page {{page_num}} of {{total_pages}}</title>
<style>{{{css}}}</style>
</head>
<body>
<h1>Session transcript &mdash; page {{page_num}} of {{total_pages}}</h1>
{{{messages_html}}}
{{{pagination_html}}}
<script>{{{js}}}</script>
</body>
</html>
`

const indexTemplateText = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Session transcript</title>
<style>{{{css}}}</style>
</head>
<body>
<h1>Session transcript</h1>
<div class="session-stats">
<span><strong>{{prompt_count}}</strong> prompts</span>
<span><strong>{{total_messages}}</strong> messages</span>
<span><strong>{{total_tool_calls}}</strong> tool calls</span>
<span><strong>{{total_commits}}</strong> commits</span>
<span><strong>{{total_pages}}</strong> pages</span>
</div>
{{{index_items_html}}}
{{{pagination_html}}}
<script>{{{js}}}</script>
</body>
</html>
`

const projectIndexTemplateText = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{project_name}} sessions</title>
<style>{{{css}}}</style>
</head>
<body>
<h1>{{project_name}}</h1>
<p><a href="../index.html">&larr; All projects</a></p>
{{{items_html}}}
<script>{{{js}}}</script>
</body>
</html>
`

const masterIndexTemplateText = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Session archive</title>
<style>{{{css}}}</style>
</head>
<body>
<h1>Session archive</h1>
<div class="session-stats">
<span><strong>{{project_count}}</strong> projects</span>
<span><strong>{{session_count}}</strong> sessions</span>
</div>
{{{sections_html}}}
<script>{{{js}}}</script>
</body>
</html>
`

// Message and block snippets.

const messageTemplateText = `<div class="message {{role_class}}" id="{{msg_id}}">
<div class="message-header">
<span class="role-label">{{role_label}}</span>
<time data-timestamp="{{timestamp}}">{{timestamp}}</time>
</div>
{{{content_html}}}
</div>
`

const thinkingTemplateText = `<div class="thinking">{{{content_html}}}</div>`

const assistantTextTemplateText = `<div class="assistant-text">{{{content_html}}}</div>`

const userContentTemplateText = `<div class="user-content">{{{content_html}}}</div>`

const toolUseTemplateText = `<div class="tool-use" id="tool-{{tool_id}}">
<div class="tool-header"><span>{{tool_name}}</span>{{#description}}<span class="tool-description">{{description}}</span>{{/description}}</div>
<div class="truncatable"><div class="truncatable-content"><pre class="json">{{input_json}}</pre></div><button class="expand-btn">Show more</button></div>
{{{tool_result_html}}}
</div>
`

const toolResultTemplateText = `<div class="tool-result{{#is_error}} tool-error{{/is_error}}">
<div class="truncatable"><div class="truncatable-content">{{{content_html}}}</div><button class="expand-btn">Show more</button></div>
</div>
`

const todoListTemplateText = `<div class="todo-list" id="tool-{{tool_id}}">
<div class="tool-header"><span>TodoWrite</span></div>
<ul>
{{#todos}}<li class="todo-item {{status}}">{{content}}</li>
{{/todos}}</ul>
</div>
`

const writeToolTemplateText = `<div class="file-tool write-tool" id="tool-{{tool_id}}">
<div class="file-tool-header"><span>Write</span><code>{{file_path}}</code></div>
<div class="truncatable"><div class="truncatable-content"><pre>{{content}}</pre></div><button class="expand-btn">Show more</button></div>
{{{tool_result_html}}}
</div>
`

const editToolTemplateText = `<div class="file-tool edit-tool" id="tool-{{tool_id}}">
<div class="file-tool-header"><span>Edit{{#replace_all}} (all){{/replace_all}}</span><code>{{file_path}}</code></div>
<div class="edit-section edit-old"><span class="edit-section-label">Old</span><pre>{{old_string}}</pre></div>
<div class="edit-section edit-new"><span class="edit-section-label">New</span><pre>{{new_string}}</pre></div>
{{{tool_result_html}}}
</div>
`

const bashToolTemplateText = `<div class="tool-use bash-tool" id="tool-{{tool_id}}">
<div class="tool-header"><span>Bash</span>{{#description}}<span class="tool-description">{{description}}</span>{{/description}}</div>
<pre>{{command}}</pre>
{{{tool_result_html}}}
</div>
`

const commitCardTemplateText = `<div class="commit-card">{{#repo}}<a href="https://github.com/{{repo}}/commit/{{hash}}">{{/repo}}<span class="commit-card-hash">{{hash}}</span> {{message}}{{#repo}}</a>{{/repo}}</div>`

// Index page snippets. The index-item markup doubles as the archive
// scanner's input format: the stem link and the summary paragraph are
// what FindExistingSessions parses back out.

const indexItemTemplateText = `<div class="index-item">
<a href="{{link}}">
<div class="index-item-header">
<span class="index-item-number">#{{prompt_num}}</span>
<span class="index-item-size"><time data-timestamp="{{timestamp}}">{{timestamp}}</time></span>
</div>
<div class="index-item-content">{{{content_html}}}</div>
{{{stats_html}}}
</a>
</div>
`

const indexStatsTemplateText = `{{#tool_stats}}<div class="index-item-stats">{{tool_stats}}</div>
{{/tool_stats}}{{{long_texts_html}}}`

const indexLongTextTemplateText = `<div class="index-item-long-text"><div class="truncatable"><div class="truncatable-content index-item-long-text-content">{{{content_html}}}</div><button class="expand-btn">Show more</button></div></div>`

const indexCommitTemplateText = `<div class="index-commit">{{#repo}}<a href="https://github.com/{{repo}}/commit/{{hash}}"><code>{{hash}}</code></a>{{/repo}}{{^repo}}<code>{{hash}}</code>{{/repo}} <span>{{message}}</span> <time data-timestamp="{{timestamp}}">{{timestamp}}</time></div>
`

const sessionItemTemplateText = `<div class="index-item">
<a href="{{stem}}/index.html">
<div class="index-item-header">
<span class="index-item-number">{{date}}{{#source}}<span class="source-label">{{source}}</span>{{/source}}</span>
<span class="index-item-size">{{size}}</span>
</div>
<div class="index-item-content"><p>{{summary}}</p></div>
</a>
</div>
`

const projectSectionTemplateText = `<div class="project-section">
<h2><a href="{{dir}}/index.html">{{name}}</a></h2>
<div class="session-stats"><span><strong>{{session_count}}</strong> sessions</span></div>
</div>
`

var (
	pageTemplate           = mustParse(pageTemplateText)
	indexTemplate          = mustParse(indexTemplateText)
	projectIndexTemplate   = mustParse(projectIndexTemplateText)
	masterIndexTemplate    = mustParse(masterIndexTemplateText)
	messageTemplate        = mustParse(messageTemplateText)
	thinkingTemplate       = mustParse(thinkingTemplateText)
	assistantTextTemplate  = mustParse(assistantTextTemplateText)
	userContentTemplate    = mustParse(userContentTemplateText)
	toolUseTemplate        = mustParse(toolUseTemplateText)
	toolResultTemplate     = mustParse(toolResultTemplateText)
	todoListTemplate       = mustParse(todoListTemplateText)
	writeToolTemplate      = mustParse(writeToolTemplateText)
	editToolTemplate       = mustParse(editToolTemplateText)
	bashToolTemplate       = mustParse(bashToolTemplateText)
	commitCardTemplate     = mustParse(commitCardTemplateText)
	indexItemTemplate      = mustParse(indexItemTemplateText)
	indexStatsTemplate     = mustParse(indexStatsTemplateText)
	indexLongTextTemplate  = mustParse(indexLongTextTemplateText)
	indexCommitTemplate    = mustParse(indexCommitTemplateText)
	sessionItemTemplate    = mustParse(sessionItemTemplateText)
	projectSectionTemplate = mustParse(projectSectionTemplateText)
)

func mustParse(text string) *mustache.Template {
	tmpl, err := mustache.ParseString(text)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// renderTemplate renders a parsed template with map data. Templates
// are fixed strings verified at init, so render errors cannot occur
// with well-formed map input.
func renderTemplate(tmpl *mustache.Template, data map[string]interface{}) string {
	out, _ := tmpl.Render(data)
	return out
}

// paginationHTML builds the page footer navigation: an index link,
// numbered page links with the current page highlighted, and
// prev/next links where they exist. currentPage 0 marks the index
// page itself.
func paginationHTML(currentPage, totalPages int) string {
	var b strings.Builder
	b.WriteString(`<div class="pagination">`)
	if currentPage == 0 {
		b.WriteString(`<span class="current">Index</span>`)
	} else {
		b.WriteString(`<a href="index.html">Index</a>`)
	}
	if currentPage > 1 {
		fmt.Fprintf(&b, `<a href="page-%03d.html">&larr; Prev</a>`, currentPage-1)
	}
	for page := 1; page <= totalPages; page++ {
		if page == currentPage {
			fmt.Fprintf(&b, `<span class="current">%d</span>`, page)
		} else {
			fmt.Fprintf(&b, `<a href="page-%03d.html">%d</a>`, page, page)
		}
	}
	if currentPage >= 1 && currentPage < totalPages {
		fmt.Fprintf(&b, `<a href="page-%03d.html">Next &rarr;</a>`, currentPage+1)
	}
	b.WriteString(`</div>`)
	return b.String()
}

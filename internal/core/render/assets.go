package render

// css styles every generated page. Class names are shared with the
// templates in templates.go and with the archive index scanner, which
// matches on the index-item markup.
const css = `
:root {
  --bg-color: #fafaf9;
  --text-primary: #0a0a0a;
  --text-secondary: #525252;
  --text-tertiary: #a3a3a3;
  --border-light: #e7e5e4;
  --border-medium: #d6d3d1;
  --accent-user: #2563eb;
  --accent-thinking: #d97706;
  --accent-tool: #7c3aed;
  --surface-elevated: #ffffff;
  --surface-subtle: #f5f5f4;
  --code-bg: #18181b;
  --code-text: #a1a1aa;
  --bg-user: #eff6ff;
  --bg-thinking: #fffbeb;
}

* { box-sizing: border-box; }

body {
  margin: 0 auto;
  max-width: 760px;
  padding: 40px 24px;
  background: var(--bg-color);
  color: var(--text-primary);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
  font-size: 16px;
  line-height: 1.6;
}

h1 {
  font-size: 1.4rem;
  font-weight: 600;
  margin-bottom: 32px;
}

a { color: var(--accent-user); }

pre {
  background: var(--code-bg);
  color: var(--code-text);
  border-radius: 8px;
  padding: 14px;
  overflow-x: auto;
  font-size: 0.82rem;
  line-height: 1.5;
  white-space: pre-wrap;
  word-break: break-word;
}

code {
  font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
  font-size: 0.85em;
}

.message {
  margin-bottom: 40px;
  padding-left: 20px;
  border-left: 3px solid var(--border-light);
}

.message.user { border-left-color: var(--accent-user); }
.message.assistant { border-left-color: var(--border-medium); }

.message-header {
  display: flex;
  align-items: baseline;
  gap: 10px;
  margin-bottom: 8px;
}

.role-label {
  font-size: 0.72rem;
  font-weight: 700;
  text-transform: uppercase;
  letter-spacing: 0.06em;
  color: var(--text-secondary);
}

.message.user .role-label { color: var(--accent-user); }

.message-header time {
  font-size: 0.72rem;
  color: var(--text-tertiary);
}

.user-content {
  background: var(--bg-user);
  border-radius: 8px;
  padding: 12px 16px;
}

.thinking {
  background: var(--bg-thinking);
  border-left: 3px solid var(--accent-thinking);
  border-radius: 0 8px 8px 0;
  padding: 10px 16px;
  margin: 12px 0;
  color: var(--text-secondary);
  font-style: italic;
  font-size: 0.92rem;
}

.assistant-text { margin: 12px 0; }

.tool-use,
.file-tool,
.todo-list {
  background: var(--surface-subtle);
  border: 1px solid var(--border-light);
  border-radius: 8px;
  padding: 14px;
  margin: 12px 0;
}

.tool-header,
.file-tool-header {
  display: flex;
  align-items: baseline;
  gap: 8px;
  margin-bottom: 8px;
  font-size: 0.8rem;
  color: var(--accent-tool);
  font-weight: 600;
}

.tool-description {
  color: var(--text-secondary);
  font-weight: 400;
}

.tool-result {
  margin-top: 10px;
  border-top: 1px dashed var(--border-medium);
  padding-top: 10px;
}

.tool-result.tool-error pre {
  background: #450a0a;
  color: #fca5a5;
}

.todo-list ul {
  margin: 0;
  padding-left: 20px;
  list-style: none;
}

.todo-item { margin: 4px 0; font-size: 0.9rem; }
.todo-item.completed { color: var(--text-tertiary); text-decoration: line-through; }
.todo-item.in_progress { color: var(--accent-user); font-weight: 500; }

.edit-section { margin: 8px 0; }
.edit-section-label {
  font-size: 0.72rem;
  font-weight: 600;
  text-transform: uppercase;
  color: var(--text-tertiary);
}
.edit-old pre { background: #450a0a; color: #fca5a5; }
.edit-new pre { background: #052e16; color: #86efac; }

.truncatable { position: relative; }
.truncatable.truncated .truncatable-content {
  max-height: 250px;
  overflow: hidden;
}
.truncatable.truncated::after {
  content: "";
  position: absolute;
  bottom: 34px;
  left: 0;
  right: 0;
  height: 60px;
  background: linear-gradient(transparent, var(--surface-subtle));
  pointer-events: none;
}
.expand-btn {
  display: none;
  margin-top: 6px;
  border: 1px solid var(--border-medium);
  border-radius: 6px;
  background: var(--surface-elevated);
  padding: 4px 12px;
  font-size: 0.78rem;
  cursor: pointer;
}
.truncatable.truncated .expand-btn,
.truncatable.expanded .expand-btn { display: inline-block; }

.commit-card {
  background: var(--surface-elevated);
  border: 1px solid var(--border-light);
  border-left: 3px solid #16a34a;
  border-radius: 8px;
  padding: 10px 14px;
  margin: 10px 0;
}
.commit-card a { text-decoration: none; }
.commit-card-hash {
  font-family: ui-monospace, monospace;
  font-size: 0.8rem;
  color: #16a34a;
}

details.continuation {
  margin-bottom: 40px;
  border: 1px dashed var(--border-medium);
  border-radius: 8px;
  padding: 10px 16px;
  background: var(--surface-subtle);
}
details.continuation summary {
  cursor: pointer;
  font-size: 0.85rem;
  color: var(--text-secondary);
}
details.continuation[open] summary { margin-bottom: 12px; }

.pagination {
  display: flex;
  flex-wrap: wrap;
  gap: 8px;
  margin: 40px 0 0;
  padding-top: 20px;
  border-top: 1px solid var(--border-light);
  font-size: 0.85rem;
}
.pagination a,
.pagination span {
  padding: 6px 12px;
  border-radius: 6px;
  border: 1px solid var(--border-light);
  text-decoration: none;
}
.pagination .current {
  background: var(--text-primary);
  color: var(--bg-color);
  border-color: var(--text-primary);
}

.session-stats {
  display: flex;
  flex-wrap: wrap;
  gap: 16px;
  margin-bottom: 32px;
  font-size: 0.85rem;
  color: var(--text-secondary);
}
.session-stats strong { color: var(--text-primary); }

.index-item {
  background: var(--surface-elevated);
  border: 1px solid var(--border-light);
  border-radius: 10px;
  margin-bottom: 16px;
  overflow: hidden;
}
.index-item a {
  display: block;
  color: inherit;
  text-decoration: none;
}
.index-item a:hover { background: var(--surface-subtle); }
.index-item-header {
  display: flex;
  justify-content: space-between;
  align-items: baseline;
  padding: 12px 20px 0;
}
.index-item-number {
  font-size: 0.75rem;
  font-weight: 700;
  color: var(--accent-user);
}
.index-item-size {
  font-size: 0.75rem;
  color: var(--text-tertiary);
}
.index-item-content {
  padding: 6px 20px 14px;
  font-size: 0.92rem;
}
.index-item-content p { margin: 4px 0; }
.index-item-stats {
  padding: 0 20px 14px;
  font-size: 0.78rem;
  color: var(--text-tertiary);
}
.index-item-long-text {
  margin: 8px 20px 14px;
  border-left: 3px solid var(--border-light);
  padding-left: 12px;
  font-size: 0.85rem;
  color: var(--text-secondary);
}

.index-commit {
  display: flex;
  gap: 10px;
  align-items: baseline;
  margin: 0 0 16px 12px;
  font-size: 0.85rem;
}
.index-commit code { color: #16a34a; }

.project-section { margin-bottom: 40px; }
.project-section h2 {
  font-size: 1.05rem;
  margin-bottom: 12px;
}
.source-label {
  font-size: 0.7rem;
  font-weight: 600;
  text-transform: uppercase;
  letter-spacing: 0.05em;
  color: var(--text-tertiary);
  border: 1px solid var(--border-light);
  border-radius: 4px;
  padding: 1px 6px;
  margin-left: 8px;
}

@media (max-width: 480px) {
  body { padding: 20px 12px; }
  .message { padding-left: 14px; margin-bottom: 32px; }
  .tool-use, .file-tool, .todo-list { padding: 12px; }
}
`

// js runs on every page: localizes timestamps, highlights JSON tool
// output, and wires up the expand buttons on long content.
const js = `
document.querySelectorAll('time[data-timestamp]').forEach(function(el) {
    const timestamp = el.getAttribute('data-timestamp');
    const date = new Date(timestamp);
    const now = new Date();
    const isToday = date.toDateString() === now.toDateString();
    const timeStr = date.toLocaleTimeString(undefined, { hour: '2-digit', minute: '2-digit' });
    if (isToday) { el.textContent = timeStr; }
    else { el.textContent = date.toLocaleDateString(undefined, { month: 'short', day: 'numeric' }) + ' ' + timeStr; }
});
document.querySelectorAll('pre.json').forEach(function(el) {
    let text = el.textContent;
    text = text.replace(/"([^"]+)":/g, '<span style="color: #ce93d8">"$1"</span>:');
    text = text.replace(/: "([^"]*)"/g, ': <span style="color: #81d4fa">"$1"</span>');
    text = text.replace(/: (\d+)/g, ': <span style="color: #ffcc80">$1</span>');
    text = text.replace(/: (true|false|null)/g, ': <span style="color: #f48fb1">$1</span>');
    el.innerHTML = text;
});
document.querySelectorAll('.truncatable').forEach(function(wrapper) {
    const content = wrapper.querySelector('.truncatable-content');
    const btn = wrapper.querySelector('.expand-btn');
    if (content.scrollHeight > 250) {
        wrapper.classList.add('truncated');
        btn.addEventListener('click', function() {
            if (wrapper.classList.contains('truncated')) { wrapper.classList.remove('truncated'); wrapper.classList.add('expanded'); btn.textContent = 'Show less'; }
            else { wrapper.classList.remove('expanded'); wrapper.classList.add('truncated'); btn.textContent = 'Show more'; }
        });
    }
});
`

// GistPreviewJS rewrites relative links so archives uploaded as gists
// work when browsed through gistpreview.github.io, where every file is
// addressed as ?GIST_ID/filename.html.
const GistPreviewJS = `
(function() {
    if (window.location.hostname !== 'gistpreview.github.io') return;
    var match = window.location.search.match(/^\?([^/]+)/);
    if (!match) return;
    var gistId = match[1];
    document.querySelectorAll('a[href]').forEach(function(link) {
        var href = link.getAttribute('href');
        if (href.startsWith('http') || href.startsWith('#') || href.startsWith('//')) return;
        var parts = href.split('#');
        var filename = parts[0];
        var anchor = parts.length > 1 ? '#' + parts[1] : '';
        link.setAttribute('href', '?' + gistId + '/' + filename + anchor);
    });
})();
`

// Package picker provides the interactive session chooser used by
// the local and web commands.
package picker

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/neilberkman/cctranscripts/internal/core/discover"
)

// Item is one selectable entry.
type Item struct {
	Label  string // primary line
	Detail string // secondary line
	Value  string // returned on selection: a file path or session ID
}

// FromSession builds a picker entry for a discovered local session.
func FromSession(s discover.Session) Item {
	label := s.Summary
	if runes := []rune(label); len(runes) > 70 {
		label = string(runes[:67]) + "..."
	}
	detail := fmt.Sprintf("%s | %s | %s",
		s.Mtime.Format("2006-01-02 15:04"),
		humanize.Bytes(uint64(s.Size)),
		s.Source)
	return Item{Label: label, Detail: detail, Value: s.Path}
}

type pickerItem struct {
	item Item
}

func (i pickerItem) FilterValue() string { return i.item.Label }
func (i pickerItem) Title() string       { return i.item.Label }
func (i pickerItem) Description() string { return i.item.Detail }

type pickerDelegate struct {
	list.DefaultDelegate
}

func (d pickerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(pickerItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	label := p.Title()
	detail := p.Description()
	if index == m.Index() {
		label = selectedStyle.Render("> " + label)
		detail = selectedStyle.Faint(true).Render("  " + detail)
	} else {
		label = itemStyle.Render(label)
		detail = detailStyle.Render(detail)
	}
	fmt.Fprintf(w, "%s\n%s", label, detail)
}

type model struct {
	prompt string
	list   list.Model
	choice *Item
}

func newModel(prompt string, items []Item) model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = pickerItem{item: item}
	}

	l := list.New(listItems, pickerDelegate{DefaultDelegate: list.NewDefaultDelegate()}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return model{prompt: prompt, list: l}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(pickerItem); ok {
				m.choice = &selected.item
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return promptStyle.Render(m.prompt) + "\n" + m.list.View() + "\n" +
		helpStyle.Render("enter: select  q: cancel")
}

// Choose runs the picker and returns the selected item, or nil when
// the user cancels.
func Choose(prompt string, items []Item) (*Item, error) {
	final, err := tea.NewProgram(newModel(prompt, items)).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run picker: %w", err)
	}
	return final.(model).choice, nil
}

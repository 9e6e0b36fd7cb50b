package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

var _ list.Item = optionItem{}

// optionItem wraps one select option to implement [list.Item]. index survives filtering.
type optionItem struct {
	index int
	label string
}

func (i optionItem) FilterValue() string { return i.label }

// optionDelegate renders options on a single line with a cursor.
type optionDelegate struct{}

func (d optionDelegate) Height() int                             { return 1 }
func (d optionDelegate) Spacing() int                            { return 0 }
func (d optionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	opt, ok := item.(optionItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, styles.cursor.Render("> "+opt.label))
		return
	}
	fmt.Fprint(w, "  "+opt.label)
}

const emptyOptions = "No playlists available"

// selectModel is a single-choice prompt backed by [list.Model].
type selectModel struct {
	list    list.Model
	keys    keyMap
	empty   bool
	choice  int
	done    bool
	aborted bool
}

func newSelectModel(title string, options []string) selectModel {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = optionItem{index: i, label: o}
	}

	height := min(len(options), 12) + 8
	l := list.New(items, optionDelegate{}, 80, height)
	l.Title = title
	l.SetShowStatusBar(len(options) > 12)
	l.SetFilteringEnabled(len(options) > 12)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("option", "options")

	return selectModel{list: l, keys: newKeyMap(), empty: len(options) == 0, choice: -1}
}

func (m selectModel) Init() tea.Cmd {
	if m.empty {
		return tea.Quit
	}
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.aborted = true
			return m, tea.Quit
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.enter):
			if m.empty {
				return m, tea.Quit
			}
			if item, ok := m.list.SelectedItem().(optionItem); ok {
				m.choice = item.index
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.empty {
		return styles.Title(m.list.Title) + "\n" + styles.Warn(emptyOptions) + "\n"
	}
	if m.done {
		label := m.list.SelectedItem().(optionItem).label
		return fmt.Sprintf("%s %s\n", strings.TrimSpace(m.list.Title), styles.OK(label))
	}
	return m.list.View()
}

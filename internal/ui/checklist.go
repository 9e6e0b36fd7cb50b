package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/yt2spot/internal/tasks"
)

// checklistModel is a multi-select prompt. Disabled rows can be focused but never checked.
// Enter only completes when validate accepts the current selection.
type checklistModel struct {
	title    string
	choices  []tasks.Choice
	selected []bool
	validate func([]bool) error
	cursor   int
	errMsg   string
	done     bool
	aborted  bool
	keys     keyMap
	help     help.Model
}

func newChecklistModel(title string, choices []tasks.Choice, validate func([]bool) error) checklistModel {
	selected := make([]bool, len(choices))
	for i, c := range choices {
		selected[i] = c.Checked && !c.Disabled
	}
	return checklistModel{
		title:    title,
		choices:  choices,
		selected: selected,
		validate: validate,
		keys:     newKeyMap(),
		help:     help.New(),
	}
}

func (m checklistModel) Init() tea.Cmd { return nil }

func (m checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, m.keys.quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(msgKey, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msgKey, m.keys.down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(msgKey, m.keys.toggle):
		if len(m.choices) > 0 && !m.choices[m.cursor].Disabled {
			m.selected[m.cursor] = !m.selected[m.cursor]
			m.errMsg = ""
		}
	case key.Matches(msgKey, m.keys.all):
		m.toggleAll()
		m.errMsg = ""
	case key.Matches(msgKey, m.keys.enter):
		if m.validate != nil {
			if err := m.validate(m.selected); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// toggleAll checks every enabled row, or clears them all when they are already checked.
func (m *checklistModel) toggleAll() {
	all := true
	for i, c := range m.choices {
		if !c.Disabled && !m.selected[i] {
			all = false
			break
		}
	}
	for i, c := range m.choices {
		if !c.Disabled {
			m.selected[i] = !all
		}
	}
}

func (m checklistModel) count() (selected, enabled int) {
	for i, c := range m.choices {
		if c.Disabled {
			continue
		}
		enabled++
		if m.selected[i] {
			selected++
		}
	}
	return selected, enabled
}

func (m checklistModel) View() string {
	selected, enabled := m.count()
	if m.done {
		return fmt.Sprintf("%s %s\n", m.title, styles.OK(fmt.Sprintf("%d selected", selected)))
	}

	var b strings.Builder
	b.WriteString(styles.Title(m.title))
	b.WriteString("\n")

	for i, c := range m.choices {
		cursor := "  "
		if i == m.cursor {
			cursor = styles.cursor.Render("> ")
		}

		box := "[ ]"
		if m.selected[i] {
			box = styles.OK("[x]")
		}

		line := box + " " + c.Label
		if c.Disabled {
			line = styles.Help(fmt.Sprintf("[-] %s (%s)", c.Label, c.Reason))
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString(fmt.Sprintf("\n%d/%d selected\n", selected, enabled))
	if m.errMsg != "" {
		b.WriteString(styles.Err(m.errMsg) + "\n")
	}
	b.WriteString("\n" + m.help.View(checklistKeys{m.keys}))
	return b.String()
}

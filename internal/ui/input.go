package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel is a single-line text prompt that re-asks while validate rejects the value.
type inputModel struct {
	title    string
	input    textinput.Model
	validate func(string) error
	errMsg   string
	done     bool
	aborted  bool
	keys     keyMap
	help     help.Model
}

func newInputModel(title, initial string, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.SetValue(initial)
	ti.CharLimit = 100
	ti.Width = 60
	ti.Focus()

	return inputModel{title: title, input: ti, validate: validate, keys: newKeyMap(), help: help.New()}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msgKey, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msgKey, m.keys.quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msgKey, m.keys.enter):
			if m.validate != nil {
				if err := m.validate(m.input.Value()); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
		m.errMsg = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

func (m inputModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", m.title, styles.OK(m.Value()))
	}

	view := styles.Title(m.title) + "\n" + m.input.View() + "\n"
	if m.errMsg != "" {
		view += styles.Err(m.errMsg) + "\n"
	}
	return view + "\n" + m.help.View(inputKeys{m.keys})
}

package ui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/desertthunder/yt2spot/internal/tasks"
)

var _ tasks.Prompter = (*Prompter)(nil)

// Prompter implements [tasks.Prompter] by running one bubbletea program per question.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading keys from in and drawing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// Select asks for one of options. With no options the empty state is shown
// and [shared.ErrNoEligiblePlaylists] is returned.
func (p *Prompter) Select(ctx context.Context, title string, options []string) (int, error) {
	final, err := p.run(ctx, newSelectModel(title, options))
	if err != nil {
		return -1, err
	}

	m := final.(selectModel)
	switch {
	case m.empty:
		return -1, shared.ErrNoEligiblePlaylists
	case m.aborted || !m.done:
		return -1, shared.ErrAborted
	}
	return m.choice, nil
}

// MultiSelect shows a checklist and returns one flag per choice.
func (p *Prompter) MultiSelect(ctx context.Context, title string, choices []tasks.Choice, validate func([]bool) error) ([]bool, error) {
	final, err := p.run(ctx, newChecklistModel(title, choices, validate))
	if err != nil {
		return nil, err
	}

	m := final.(checklistModel)
	if m.aborted || !m.done {
		return nil, shared.ErrAborted
	}
	return m.selected, nil
}

// Input asks for one line of text, trimmed.
func (p *Prompter) Input(ctx context.Context, title, initial string, validate func(string) error) (string, error) {
	final, err := p.run(ctx, newInputModel(title, initial, validate))
	if err != nil {
		return "", err
	}

	m := final.(inputModel)
	if m.aborted || !m.done {
		return "", shared.ErrAborted
	}
	return m.Value(), nil
}

// ProgressPrinter returns a [tasks.Reporter] that prints coloured progress lines to w.
func ProgressPrinter(w io.Writer) tasks.Reporter {
	return func(u tasks.ProgressUpdate) {
		fmt.Fprintln(w, FormatProgress(u))
	}
}

// FormatProgress renders one update. Search results are coloured by outcome.
func FormatProgress(u tasks.ProgressUpdate) string {
	switch u.Phase {
	case tasks.SearchTracks:
		if m, ok := u.Data.(models.Match); ok {
			if m.Found() {
				return styles.OK(u.Message)
			}
			return styles.Warn(u.Message)
		}
		return u.Message
	case tasks.MatchSummary:
		if u.Step == 0 {
			return styles.Err(u.Message)
		}
		return styles.Title(u.Message)
	case tasks.ChooseTarget:
		return styles.Warn(u.Message)
	case tasks.Complete:
		return styles.OK(u.Message)
	default:
		return styles.Help(u.Message)
	}
}

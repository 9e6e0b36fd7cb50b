package testing

import (
	"context"

	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/desertthunder/yt2spot/internal/tasks"
)

// ScriptedPrompter is a test double for [tasks.Prompter] that replays canned answers in order.
//
// Answers rejected by a validate func are recorded in Rejected and the next answer is used,
// mirroring a prompt that re-asks. Running out of answers returns [shared.ErrAborted].
type ScriptedPrompter struct {
	Selects      []int
	MultiSelects [][]bool
	Inputs       []string

	SelectTitles  []string
	SelectOptions [][]string
	Choices       [][]tasks.Choice
	InputDefaults []string
	Rejected      []error
}

func (p *ScriptedPrompter) Select(ctx context.Context, title string, options []string) (int, error) {
	p.SelectTitles = append(p.SelectTitles, title)
	p.SelectOptions = append(p.SelectOptions, options)
	if len(options) == 0 {
		return -1, shared.ErrNoEligiblePlaylists
	}
	if len(p.Selects) == 0 {
		return -1, shared.ErrAborted
	}
	idx := p.Selects[0]
	p.Selects = p.Selects[1:]
	return idx, nil
}

func (p *ScriptedPrompter) MultiSelect(ctx context.Context, title string, choices []tasks.Choice, validate func([]bool) error) ([]bool, error) {
	p.Choices = append(p.Choices, choices)
	for len(p.MultiSelects) > 0 {
		answer := p.MultiSelects[0]
		p.MultiSelects = p.MultiSelects[1:]

		// disabled rows cannot be toggled
		selected := make([]bool, len(choices))
		for i := range choices {
			selected[i] = i < len(answer) && answer[i] && !choices[i].Disabled
		}

		if validate != nil {
			if err := validate(selected); err != nil {
				p.Rejected = append(p.Rejected, err)
				continue
			}
		}
		return selected, nil
	}
	return nil, shared.ErrAborted
}

func (p *ScriptedPrompter) Input(ctx context.Context, title, initial string, validate func(string) error) (string, error) {
	p.InputDefaults = append(p.InputDefaults, initial)
	for len(p.Inputs) > 0 {
		answer := p.Inputs[0]
		p.Inputs = p.Inputs[1:]

		if validate != nil {
			if err := validate(answer); err != nil {
				p.Rejected = append(p.Rejected, err)
				continue
			}
		}
		return answer, nil
	}
	return "", shared.ErrAborted
}

package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
)

const noMatchReason = "No match found"

// ConfirmationStage asks the user which matched tracks to transfer.
type ConfirmationStage struct {
	prompter Prompter
}

// NewConfirmationStage creates a ConfirmationStage.
func NewConfirmationStage(prompter Prompter) *ConfirmationStage {
	return &ConfirmationStage{prompter: prompter}
}

// Choices renders a match set as prompt rows: matched rows are pre-checked,
// unmatched rows are disabled and show the source title.
func Choices(matches models.MatchSet) []Choice {
	choices := make([]Choice, len(matches))
	for i, m := range matches {
		choices[i] = Choice{Label: m.Label(), Checked: m.Found(), Disabled: !m.Found()}
		if !m.Found() {
			choices[i].Reason = noMatchReason
		}
	}
	return choices
}

// Confirm returns the destination URIs of the selected matches, in match order. The result is never empty:
// the prompt keeps asking until at least one matched row is selected.
func (c *ConfirmationStage) Confirm(ctx context.Context, matches models.MatchSet) ([]string, error) {
	if matches.FoundCount() == 0 {
		return nil, shared.ErrNoMatchesFound
	}

	validate := func(selected []bool) error {
		if len(matches.URIs(selected)) == 0 {
			return shared.ErrEmptySelection
		}
		return nil
	}

	selected, err := c.prompter.MultiSelect(ctx, "Select the songs to transfer", Choices(matches), validate)
	if err != nil {
		return nil, err
	}
	if len(selected) != len(matches) {
		return nil, fmt.Errorf("%w: got %d selections for %d matches", shared.ErrInvalidArgument, len(selected), len(matches))
	}

	uris := matches.URIs(selected)
	if len(uris) == 0 {
		return nil, shared.ErrEmptySelection
	}
	return uris, nil
}

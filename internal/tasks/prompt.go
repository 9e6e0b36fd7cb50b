package tasks

import "context"

// Choice is one row of a multi-select prompt.
type Choice struct {
	Label    string
	Checked  bool   // initially selected
	Disabled bool   // cannot be toggled
	Reason   string // shown next to disabled rows
}

// Prompter is the interactive surface the pipeline needs.
//
// Implementations re-prompt while a validate func returns an error, showing the error to the user,
// and return [shared.ErrAborted] when the user cancels.
type Prompter interface {
	// Select asks for one of options and returns its index.
	Select(ctx context.Context, title string, options []string) (int, error)

	// MultiSelect returns one flag per choice, indexed like choices.
	MultiSelect(ctx context.Context, title string, choices []Choice, validate func([]bool) error) ([]bool, error)

	// Input asks for a line of text, pre-filled with initial.
	Input(ctx context.Context, title, initial string, validate func(string) error) (string, error)
}

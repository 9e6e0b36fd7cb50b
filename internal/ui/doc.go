// Package ui implements the interactive prompts of a migration with bubbletea's Elm architecture.
//
// [Prompter] satisfies [tasks.Prompter] and runs one short-lived program per question:
//  1. Select : a [list.Model] of options with filtering for long libraries
//  2. MultiSelect : a checklist whose disabled rows show why they cannot be picked
//  3. Input : a [textinput.Model] with inline validation errors
//
// Validation runs when enter is pressed; a rejected answer keeps the prompt open with the error shown below it.
// esc and ctrl+c cancel the prompt and surface [shared.ErrAborted].
//
// [ProgressPrinter] renders pipeline progress with the shared lipgloss [Palette].
package ui

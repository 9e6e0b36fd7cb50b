package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/desertthunder/yt2spot/internal/tasks"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press[M tea.Model](t *testing.T, m M, keys ...string) M {
	t.Helper()
	var model tea.Model = m
	for _, k := range keys {
		model, _ = model.Update(keyMsg(k))
	}
	out, ok := model.(M)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return out
}

func confirmChoices() []tasks.Choice {
	return []tasks.Choice{
		{Label: "Queen - Bohemian Rhapsody", Checked: true},
		{Label: "Coldplay - Yellow", Checked: true},
		{Label: "Unknown Band - Obscure", Disabled: true, Reason: "No match found"},
	}
}

func requireOne(sel []bool) error {
	for _, s := range sel {
		if s {
			return nil
		}
	}
	return shared.ErrEmptySelection
}

func TestChecklistModel(t *testing.T) {
	t.Run("pre-checks enabled rows", func(t *testing.T) {
		m := newChecklistModel("Pick", confirmChoices(), requireOne)
		if !m.selected[0] || !m.selected[1] || m.selected[2] {
			t.Errorf("unexpected initial selection %v", m.selected)
		}
	})

	t.Run("disabled row cannot be toggled", func(t *testing.T) {
		m := press(t, newChecklistModel("Pick", confirmChoices(), requireOne), "down", "down", "x")
		if m.cursor != 2 {
			t.Fatalf("expected cursor on row 2, got %d", m.cursor)
		}
		if m.selected[2] {
			t.Error("disabled row was selected")
		}
	})

	t.Run("enter with selection completes", func(t *testing.T) {
		m := press(t, newChecklistModel("Pick", confirmChoices(), requireOne), "down", "x", "enter")
		if !m.done {
			t.Fatal("expected prompt to complete")
		}
		if !m.selected[0] || m.selected[1] || m.selected[2] {
			t.Errorf("unexpected selection %v", m.selected)
		}
	})

	t.Run("empty selection is rejected in place", func(t *testing.T) {
		m := press(t, newChecklistModel("Pick", confirmChoices(), requireOne), "a", "enter")
		if m.done {
			t.Fatal("expected prompt to stay open")
		}
		if m.errMsg != shared.ErrEmptySelection.Error() {
			t.Errorf("unexpected error message %q", m.errMsg)
		}
		if !strings.Contains(m.View(), shared.ErrEmptySelection.Error()) {
			t.Error("expected error in view")
		}

		m = press(t, m, "x", "enter")
		if !m.done {
			t.Error("expected prompt to complete after selecting")
		}
	})

	t.Run("toggle all skips disabled rows", func(t *testing.T) {
		m := newChecklistModel("Pick", confirmChoices(), nil)
		m = press(t, m, "a")
		if m.selected[0] || m.selected[1] {
			t.Errorf("expected all cleared, got %v", m.selected)
		}
		m = press(t, m, "a")
		if !m.selected[0] || !m.selected[1] || m.selected[2] {
			t.Errorf("expected enabled rows checked, got %v", m.selected)
		}
	})

	t.Run("cursor stays in bounds", func(t *testing.T) {
		m := press(t, newChecklistModel("Pick", confirmChoices(), nil), "up", "down", "down", "down", "down")
		if m.cursor != 2 {
			t.Errorf("expected cursor 2, got %d", m.cursor)
		}
	})

	t.Run("view shows reason for disabled rows", func(t *testing.T) {
		view := newChecklistModel("Pick", confirmChoices(), nil).View()
		for _, want := range []string{"Queen - Bohemian Rhapsody", "Unknown Band - Obscure", "No match found", "2/2 selected"} {
			if !strings.Contains(view, want) {
				t.Errorf("view should contain %q", want)
			}
		}
	})

	t.Run("esc aborts", func(t *testing.T) {
		m := press(t, newChecklistModel("Pick", confirmChoices(), nil), "esc")
		if !m.aborted || m.done {
			t.Error("expected aborted prompt")
		}
	})
}

func TestSelectModel(t *testing.T) {
	t.Run("moves and selects", func(t *testing.T) {
		m := press(t, newSelectModel("Mode", []string{"Create", "Existing"}), "down", "enter")
		if !m.done || m.choice != 1 {
			t.Errorf("expected choice 1, got %d (done=%v)", m.choice, m.done)
		}
	})

	t.Run("default is first option", func(t *testing.T) {
		m := press(t, newSelectModel("Mode", []string{"Create", "Existing"}), "enter")
		if m.choice != 0 {
			t.Errorf("expected choice 0, got %d", m.choice)
		}
	})

	t.Run("esc aborts", func(t *testing.T) {
		m := press(t, newSelectModel("Mode", []string{"Create"}), "esc")
		if !m.aborted || m.done {
			t.Error("expected aborted prompt")
		}
	})

	t.Run("empty state", func(t *testing.T) {
		m := newSelectModel("Choose a playlist", nil)
		if !m.empty {
			t.Fatal("expected empty model")
		}
		if m.Init() == nil {
			t.Error("expected empty prompt to quit immediately")
		}
		if !strings.Contains(m.View(), emptyOptions) {
			t.Errorf("expected empty state in view, got %q", m.View())
		}
		m = press(t, m, "enter")
		if m.done {
			t.Error("empty prompt should never complete with a choice")
		}
	})
}

func TestInputModel(t *testing.T) {
	notBlank := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return shared.ErrEmptyPlaylistName
		}
		return nil
	}

	t.Run("accepts default", func(t *testing.T) {
		m := press(t, newInputModel("Name", "Road Trip", notBlank), "enter")
		if !m.done || m.Value() != "Road Trip" {
			t.Errorf("expected Road Trip, got %q (done=%v)", m.Value(), m.done)
		}
	})

	t.Run("rejects blank then accepts typed", func(t *testing.T) {
		m := press(t, newInputModel("Name", "", notBlank), "enter")
		if m.done {
			t.Fatal("expected prompt to stay open")
		}
		if m.errMsg != shared.ErrEmptyPlaylistName.Error() {
			t.Errorf("unexpected error %q", m.errMsg)
		}

		m = press(t, m, "Chill", "enter")
		if !m.done || m.Value() != "Chill" {
			t.Errorf("expected Chill, got %q", m.Value())
		}
	})

	t.Run("ctrl+c aborts", func(t *testing.T) {
		m := press(t, newInputModel("Name", "x", notBlank), "ctrl+c")
		if !m.aborted {
			t.Error("expected aborted prompt")
		}
	})
}

func TestFormatProgress(t *testing.T) {
	found := models.Match{SourceTitle: "a", Destination: &models.DestinationTrack{URI: "u", Name: "n", ArtistName: "a"}}
	missing := models.Match{SourceTitle: "b"}

	tests := []struct {
		name   string
		update tasks.ProgressUpdate
		want   string
	}{
		{"found", tasks.ProgressUpdate{Phase: tasks.SearchTracks, Message: "Match found: a - n", Data: found}, styles.OK("Match found: a - n")},
		{"missing", tasks.ProgressUpdate{Phase: tasks.SearchTracks, Message: "No match found.", Data: missing}, styles.Warn("No match found.")},
		{"searching", tasks.ProgressUpdate{Phase: tasks.SearchTracks, Message: "Searching"}, "Searching"},
		{"complete", tasks.ProgressUpdate{Phase: tasks.Complete, Message: "done"}, styles.OK("done")},
		{"no writable playlists", tasks.ProgressUpdate{Phase: tasks.ChooseTarget, Message: "none"}, styles.Warn("none")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatProgress(tt.update); got != tt.want {
				t.Errorf("FormatProgress() = %q, want %q", got, tt.want)
			}
		})
	}
}

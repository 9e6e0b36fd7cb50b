package tasks_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/desertthunder/yt2spot/internal/tasks"
	tu "github.com/desertthunder/yt2spot/internal/testing"
)

func destPlaylists() []models.DestinationPlaylist {
	return []models.DestinationPlaylist{
		{Ref: models.PlaylistRef{ID: "own", Title: "Mine"}, OwnerID: "me", TrackCount: 4},
		{Ref: models.PlaylistRef{ID: "followed", Title: "Followed"}, OwnerID: "friend"},
		{Ref: models.PlaylistRef{ID: "collab", Title: "Shared"}, OwnerID: "friend", Collaborative: true, TrackCount: 9},
	}
}

func TestEligiblePlaylists(t *testing.T) {
	got := tasks.EligiblePlaylists(destPlaylists(), "me")
	if len(got) != 2 || got[0].Ref.ID != "own" || got[1].Ref.ID != "collab" {
		t.Errorf("unexpected eligible playlists %+v", got)
	}

	if got := tasks.EligiblePlaylists(nil, "me"); len(got) != 0 {
		t.Errorf("expected none, got %d", len(got))
	}
}

func TestTransferStage(t *testing.T) {
	selection := []string{"spotify:track:a", "spotify:track:b"}

	t.Run("create new with suggested name", func(t *testing.T) {
		dest := &tu.FakeDestination{}
		prompter := &tu.ScriptedPrompter{Selects: []int{0}, Inputs: []string{"Road Trip"}}
		stage := tasks.NewTransferStage(dest, prompter, nil, "Migrated from YouTube: %s")

		res, err := stage.Transfer(context.Background(), selection, "Road Trip", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if prompter.InputDefaults[0] != "Road Trip" {
			t.Errorf("expected suggested name as default, got %q", prompter.InputDefaults[0])
		}
		if len(dest.Created) != 1 || dest.Created[0] != "Road Trip" {
			t.Errorf("unexpected created playlists %v", dest.Created)
		}
		if dest.Descs[0] != "Migrated from YouTube: Road Trip" {
			t.Errorf("unexpected description %q", dest.Descs[0])
		}
		if len(dest.Appends) != 1 || dest.Appends[0].Ref.ID != "new-1" || !slices.Equal(dest.Appends[0].URIs, selection) {
			t.Errorf("unexpected appends %+v", dest.Appends)
		}
		if res.URL != "https://open.spotify.com/playlist/new-1" || res.Target.Mode != models.CreateNew || res.Count != 2 {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("empty name re-prompts", func(t *testing.T) {
		dest := &tu.FakeDestination{}
		prompter := &tu.ScriptedPrompter{Selects: []int{0}, Inputs: []string{"", "   ", " Chill "}}

		res, err := tasks.NewTransferStage(dest, prompter, nil, "").Transfer(context.Background(), selection, "x", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(prompter.Rejected) != 2 || !errors.Is(prompter.Rejected[0], shared.ErrEmptyPlaylistName) {
			t.Errorf("expected two ErrEmptyPlaylistName rejections, got %v", prompter.Rejected)
		}
		if res.Target.Name != "Chill" {
			t.Errorf("expected trimmed name, got %q", res.Target.Name)
		}
	})

	t.Run("add to existing lists only writable playlists", func(t *testing.T) {
		dest := &tu.FakeDestination{UserID: "me", Playlists: destPlaylists()}
		prompter := &tu.ScriptedPrompter{Selects: []int{1, 1}}

		res, err := tasks.NewTransferStage(dest, prompter, nil, "").Transfer(context.Background(), selection, "x", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		options := prompter.SelectOptions[1]
		if !slices.Equal(options, []string{"Mine (4 tracks)", "Shared (9 tracks)"}) {
			t.Errorf("unexpected options %v", options)
		}
		if len(dest.Created) != 0 {
			t.Error("expected no playlist to be created")
		}
		if len(dest.Appends) != 1 || dest.Appends[0].Ref.ID != "collab" {
			t.Errorf("unexpected appends %+v", dest.Appends)
		}
		if res.Target.Mode != models.AddToExisting {
			t.Errorf("expected existing mode, got %s", res.Target.Mode)
		}
	})

	t.Run("no eligible playlists shows empty state and falls back to create new", func(t *testing.T) {
		dest := &tu.FakeDestination{UserID: "me", Playlists: []models.DestinationPlaylist{
			{Ref: models.PlaylistRef{ID: "followed"}, OwnerID: "friend"},
		}}
		prompter := &tu.ScriptedPrompter{Selects: []int{1}, Inputs: []string{"Fresh"}}

		var updates []tasks.ProgressUpdate
		report := func(u tasks.ProgressUpdate) { updates = append(updates, u) }

		res, err := tasks.NewTransferStage(dest, prompter, nil, "").Transfer(context.Background(), selection, "Fresh", report)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(prompter.SelectOptions) != 2 || len(prompter.SelectOptions[1]) != 0 {
			t.Fatalf("expected playlist prompt with zero options, got %v", prompter.SelectOptions)
		}
		if len(updates) == 0 || updates[0].Phase != tasks.ChooseTarget || !strings.Contains(updates[0].Message, "Creating a new playlist") {
			t.Errorf("expected a warning before the new playlist prompt, got %+v", updates)
		}
		if res.Target.Mode != models.CreateNew || len(dest.Created) != 1 {
			t.Errorf("expected fallback to create new, got %+v", res.Target)
		}
	})

	t.Run("mode options map to transfer modes", func(t *testing.T) {
		dest := &tu.FakeDestination{UserID: "me", Playlists: destPlaylists()}
		prompter := &tu.ScriptedPrompter{Selects: []int{0}, Inputs: []string{"New"}}

		res, err := tasks.NewTransferStage(dest, prompter, nil, "").Transfer(context.Background(), selection, "New", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !slices.Equal(prompter.SelectOptions[0], []string{"Create a new playlist", "Add to an existing playlist"}) {
			t.Errorf("unexpected mode options %v", prompter.SelectOptions[0])
		}
		if res.Target.Mode != models.CreateNew {
			t.Errorf("expected create new, got %s", res.Target.Mode)
		}
	})

	t.Run("out of range mode choice", func(t *testing.T) {
		prompter := &tu.ScriptedPrompter{Selects: []int{5}}

		_, err := tasks.NewTransferStage(&tu.FakeDestination{}, prompter, nil, "").Transfer(context.Background(), selection, "x", nil)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("append failure keeps created playlist", func(t *testing.T) {
		dest := &tu.FakeDestination{AppendErr: shared.ErrAPIRequest}
		prompter := &tu.ScriptedPrompter{Selects: []int{0}, Inputs: []string{"Road Trip"}}

		_, err := tasks.NewTransferStage(dest, prompter, nil, "").Transfer(context.Background(), selection, "Road Trip", nil)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if len(dest.Created) != 1 || len(dest.Appends) != 1 {
			t.Errorf("expected one create and one append attempt, got %d/%d", len(dest.Created), len(dest.Appends))
		}
	})

	t.Run("collaborator errors propagate", func(t *testing.T) {
		dest := &tu.FakeDestination{UserErr: shared.ErrNotAuthenticated}
		prompter := &tu.ScriptedPrompter{Selects: []int{1}}

		_, err := tasks.NewTransferStage(dest, prompter, nil, "").Transfer(context.Background(), selection, "x", nil)
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if len(dest.Appends) != 0 {
			t.Error("expected no append")
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := tasks.NewTransferStage(&tu.FakeDestination{}, &tu.ScriptedPrompter{}, nil, "").
			Transfer(context.Background(), nil, "x", nil)
		if !errors.Is(err, shared.ErrEmptySelection) {
			t.Errorf("expected ErrEmptySelection, got %v", err)
		}
	})
}

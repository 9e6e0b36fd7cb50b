package tasks_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/desertthunder/yt2spot/internal/tasks"
	tu "github.com/desertthunder/yt2spot/internal/testing"
)

type memRecorder struct {
	records []*models.TransferRecord
	err     error
}

func (r *memRecorder) Create(ctx context.Context, rec *models.TransferRecord) error {
	if r.err != nil {
		return r.err
	}
	rec.SetID("rec-1")
	r.records = append(r.records, rec)
	return nil
}

func fixture() (*tu.FakeSource, *tu.FakeDestination) {
	source := &tu.FakeSource{
		Playlists: []models.PlaylistRef{
			{ID: "PL1", Title: "Road Trip"},
			{ID: "PL2", Title: "Chill"},
		},
		Items: map[string][]models.SourceItem{
			"PL1": items("Queen - Bohemian Rhapsody (Official Video)", "lofi hip hop radio", "Coldplay - Yellow"),
			"PL2": items("nothing matches here"),
		},
	}
	dest := &tu.FakeDestination{
		UserID: "me",
		Results: map[string]*models.DestinationTrack{
			tu.SearchKey("Bohemian Rhapsody ", "Queen"): tu.Track("t1", "Queen", "Bohemian Rhapsody"),
			tu.SearchKey("Yellow", "Coldplay"):          tu.Track("t3", "Coldplay", "Yellow"),
		},
	}
	return source, dest
}

func TestMigrator(t *testing.T) {
	t.Run("full run with prompt for source", func(t *testing.T) {
		source, dest := fixture()
		prompter := &tu.ScriptedPrompter{
			Selects:      []int{0, 0},
			MultiSelects: [][]bool{{true, true, true}},
			Inputs:       []string{"Road Trip"},
		}
		recorder := &memRecorder{}

		var phases []tasks.Phase
		report := func(u tasks.ProgressUpdate) { phases = append(phases, u.Phase) }

		res, err := tasks.NewMigrator(source, dest, prompter, tasks.WithRecorder(recorder)).Run(context.Background(), "", report)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if res.Source.ID != "PL1" || len(res.Matches) != 3 {
			t.Errorf("unexpected result %+v", res)
		}
		if len(dest.Appends) != 1 {
			t.Fatalf("expected exactly one append, got %d", len(dest.Appends))
		}
		if !slices.Equal(dest.Appends[0].URIs, []string{"spotify:track:t1", "spotify:track:t3"}) {
			t.Errorf("unexpected appended uris %v", dest.Appends[0].URIs)
		}
		if res.Transfer.URL != "https://open.spotify.com/playlist/new-1" {
			t.Errorf("unexpected url %s", res.Transfer.URL)
		}

		if len(recorder.records) != 1 {
			t.Fatalf("expected one record, got %d", len(recorder.records))
		}
		rec := recorder.records[0]
		if rec.ItemsTotal() != 3 || rec.TracksMatched() != 2 || rec.TracksTransferred() != 2 || rec.Mode() != models.CreateNew {
			t.Errorf("unexpected record counts %d/%d/%d %s", rec.ItemsTotal(), rec.TracksMatched(), rec.TracksTransferred(), rec.Mode())
		}
		if res.Record == nil || res.Record.ID() != "rec-1" {
			t.Error("expected record on result")
		}

		if phases[len(phases)-1] != tasks.Complete {
			t.Errorf("expected final phase complete, got %s", phases[len(phases)-1])
		}
	})

	t.Run("aborts without prompting when nothing matched", func(t *testing.T) {
		source, dest := fixture()
		prompter := &tu.ScriptedPrompter{}

		res, err := tasks.NewMigrator(source, dest, prompter).Run(context.Background(), "Chill", nil)
		if !errors.Is(err, shared.ErrNoMatchesFound) {
			t.Fatalf("expected ErrNoMatchesFound, got %v", err)
		}
		if len(prompter.Choices) != 0 || len(prompter.SelectTitles) != 0 {
			t.Error("expected no prompts")
		}
		if len(dest.Appends) != 0 || len(dest.Created) != 0 {
			t.Error("expected no writes")
		}
		if res == nil || len(res.Matches) != 1 {
			t.Error("expected matches on result")
		}
	})

	t.Run("empty source playlist aborts", func(t *testing.T) {
		source, dest := fixture()
		source.Items["PL3"] = nil

		_, err := tasks.NewMigrator(source, dest, &tu.ScriptedPrompter{}).Run(context.Background(), "PL3", nil)
		if !errors.Is(err, shared.ErrNoMatchesFound) {
			t.Errorf("expected ErrNoMatchesFound, got %v", err)
		}
	})

	t.Run("source fetch failure is fatal", func(t *testing.T) {
		source, dest := fixture()
		source.ItemsErr = shared.ErrAPIRequest

		_, err := tasks.NewMigrator(source, dest, &tu.ScriptedPrompter{}).Run(context.Background(), "PL1", nil)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if len(dest.Searches) != 0 {
			t.Error("expected no searches")
		}
	})

	t.Run("user abort during confirmation", func(t *testing.T) {
		source, dest := fixture()

		_, err := tasks.NewMigrator(source, dest, &tu.ScriptedPrompter{}).Run(context.Background(), "PL1", nil)
		if !errors.Is(err, shared.ErrAborted) {
			t.Errorf("expected ErrAborted, got %v", err)
		}
		if len(dest.Appends) != 0 {
			t.Error("expected no append")
		}
	})

	t.Run("record failure does not fail the run", func(t *testing.T) {
		source, dest := fixture()
		prompter := &tu.ScriptedPrompter{
			Selects:      []int{0},
			MultiSelects: [][]bool{{true, false, false}},
			Inputs:       []string{"Road Trip"},
		}

		res, err := tasks.NewMigrator(source, dest, prompter, tasks.WithRecorder(&memRecorder{err: errors.New("disk full")})).
			Run(context.Background(), "PL1", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Record != nil {
			t.Error("expected no record")
		}
		if !slices.Equal(dest.Appends[0].URIs, []string{"spotify:track:t1"}) {
			t.Errorf("unexpected uris %v", dest.Appends[0].URIs)
		}
	})
}

func TestResolveSource(t *testing.T) {
	source, dest := fixture()
	m := tasks.NewMigrator(source, dest, &tu.ScriptedPrompter{})

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"by id", "PL2", "PL2"},
		{"by title", "road trip", "PL1"},
		{"unknown query is used as id", "PLxyz", "PLxyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := m.ResolveSource(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if ref.ID != tt.want {
				t.Errorf("expected %s, got %s", tt.want, ref.ID)
			}
		})
	}

	t.Run("unauthenticated listing with query", func(t *testing.T) {
		src := &tu.FakeSource{ListErr: shared.ErrNotAuthenticated}
		ref, err := tasks.NewMigrator(src, dest, &tu.ScriptedPrompter{}).ResolveSource(context.Background(), "PLpublic")
		if err != nil || ref.ID != "PLpublic" {
			t.Errorf("expected PLpublic, got %+v (%v)", ref, err)
		}
	})

	t.Run("unauthenticated listing without query", func(t *testing.T) {
		src := &tu.FakeSource{ListErr: shared.ErrNotAuthenticated}
		_, err := tasks.NewMigrator(src, dest, &tu.ScriptedPrompter{}).ResolveSource(context.Background(), "")
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("empty library", func(t *testing.T) {
		_, err := tasks.NewMigrator(&tu.FakeSource{}, dest, &tu.ScriptedPrompter{}).ResolveSource(context.Background(), "")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})
}

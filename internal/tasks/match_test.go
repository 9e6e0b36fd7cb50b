package tasks_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/desertthunder/yt2spot/internal/tasks"
	tu "github.com/desertthunder/yt2spot/internal/testing"
)

func items(titles ...string) []models.SourceItem {
	out := make([]models.SourceItem, len(titles))
	for i, title := range titles {
		out[i] = models.SourceItem{Title: title}
	}
	return out
}

func TestMatchEngine(t *testing.T) {
	t.Run("preserves order and length", func(t *testing.T) {
		dest := &tu.FakeDestination{Results: map[string]*models.DestinationTrack{
			tu.SearchKey("Bohemian Rhapsody", "Queen"): tu.Track("t1", "Queen", "Bohemian Rhapsody"),
			tu.SearchKey("Yellow", "Coldplay"):         tu.Track("t3", "Coldplay", "Yellow"),
		}}
		in := items("Queen - Bohemian Rhapsody", "Nobody - Nothing", "Coldplay - Yellow")

		matches, err := tasks.NewMatchEngine(dest, nil).BuildMatches(context.Background(), in, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(matches) != len(in) {
			t.Fatalf("expected %d matches, got %d", len(in), len(matches))
		}
		for i := range in {
			if matches[i].SourceTitle != in[i].Title {
				t.Errorf("matches[%d].SourceTitle = %q, want %q", i, matches[i].SourceTitle, in[i].Title)
			}
		}
		if !matches[0].Found() || matches[1].Found() || !matches[2].Found() {
			t.Errorf("unexpected found flags: %v %v %v", matches[0].Found(), matches[1].Found(), matches[2].Found())
		}
		if matches[1].ParsedArtist != "Nobody" || matches[1].ParsedTrack != "Nothing" {
			t.Errorf("unexpected parse on unmatched item: %+v", matches[1])
		}
	})

	t.Run("one search per item, sequentially", func(t *testing.T) {
		dest := &tu.FakeDestination{}
		in := items("A - 1", "B - 2", "C - 3", "D - 4")

		if _, err := tasks.NewMatchEngine(dest, nil).BuildMatches(context.Background(), in, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(dest.Searches) != len(in) {
			t.Fatalf("expected %d searches, got %d", len(in), len(dest.Searches))
		}
		if dest.Searches[3] != (tu.SearchCall{Track: "4", Artist: "D"}) {
			t.Errorf("unexpected last search %+v", dest.Searches[3])
		}
	})

	t.Run("fallback searches by track alone", func(t *testing.T) {
		dest := &tu.FakeDestination{Results: map[string]*models.DestinationTrack{
			tu.SearchKey("lofi hip hop radio", ""): tu.Track("l1", "Lofi Girl", "lofi hip hop radio"),
		}}

		matches, _ := tasks.NewMatchEngine(dest, nil).BuildMatches(context.Background(), items("lofi hip hop radio"), nil)
		if dest.Searches[0].Artist != "" {
			t.Errorf("expected empty artist in search, got %q", dest.Searches[0].Artist)
		}
		if matches[0].ParsedArtist != models.UnknownArtist || matches[0].Confidence != models.Fallback {
			t.Errorf("expected Unknown/fallback, got %+v", matches[0])
		}
		if !matches[0].Found() {
			t.Error("expected fallback search to match")
		}
	})

	t.Run("search error is recorded as not found", func(t *testing.T) {
		dest := &tu.FakeDestination{
			SearchErrs: map[string]error{tu.SearchKey("Song", "Artist"): errors.New("boom")},
			Results:    map[string]*models.DestinationTrack{tu.SearchKey("Other", "Band"): tu.Track("o1", "Band", "Other")},
		}

		matches, err := tasks.NewMatchEngine(dest, nil).BuildMatches(context.Background(), items("Artist - Song", "Band - Other"), nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if matches[0].Found() {
			t.Error("expected failed search to be absent")
		}
		if !matches[1].Found() {
			t.Error("expected search after a failure to continue")
		}
	})

	t.Run("rejected session ends the run", func(t *testing.T) {
		dest := &tu.FakeDestination{
			SearchErrs: map[string]error{tu.SearchKey("Song", "Artist"): fmt.Errorf("%w: token expired", shared.ErrNotAuthenticated)},
		}

		matches, err := tasks.NewMatchEngine(dest, nil).BuildMatches(context.Background(), items("Artist - Song", "Band - Other"), nil)
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
		if matches != nil {
			t.Errorf("expected no matches, got %+v", matches)
		}
		if len(dest.Searches) != 1 {
			t.Errorf("expected searching to stop after the failure, got %d searches", len(dest.Searches))
		}
	})

	t.Run("all absent still returns full set", func(t *testing.T) {
		matches, err := tasks.NewMatchEngine(&tu.FakeDestination{}, nil).BuildMatches(context.Background(), items("a - b", "c"), nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(matches) != 2 || matches.FoundCount() != 0 {
			t.Errorf("expected 2 absent matches, got %d (%d found)", len(matches), matches.FoundCount())
		}
	})

	t.Run("reports per item and summary", func(t *testing.T) {
		dest := &tu.FakeDestination{Results: map[string]*models.DestinationTrack{
			tu.SearchKey("B", "A"): tu.Track("x", "A", "B"),
		}}

		var updates []tasks.ProgressUpdate
		report := func(u tasks.ProgressUpdate) { updates = append(updates, u) }

		if _, err := tasks.NewMatchEngine(dest, nil).BuildMatches(context.Background(), items("A - B", "C - D"), report); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(updates) != 5 {
			t.Fatalf("expected 5 updates, got %d", len(updates))
		}
		last := updates[len(updates)-1]
		if last.Phase != tasks.MatchSummary || last.Step != 1 || last.Total != 2 {
			t.Errorf("unexpected summary %+v", last)
		}
		if m, ok := updates[1].Data.(models.Match); !ok || !m.Found() {
			t.Errorf("expected found match in update data, got %#v", updates[1].Data)
		}
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		dest := &tu.FakeDestination{}
		_, err := tasks.NewMatchEngine(dest, nil).BuildMatches(ctx, items("A - B"), nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(dest.Searches) != 0 {
			t.Errorf("expected no searches, got %d", len(dest.Searches))
		}
	})
}

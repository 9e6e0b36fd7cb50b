package tasks

import (
	"fmt"

	"github.com/desertthunder/yt2spot/internal/models"
)

// ProgressUpdate represents a progress event during a migration.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data (e.g. the [models.Match] just built)
}

// Reporter receives progress updates. It is called synchronously on the pipeline goroutine.
type Reporter func(ProgressUpdate)

func (r Reporter) send(u ProgressUpdate) {
	if r != nil {
		r(u)
	}
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	SearchTracks
	MatchSummary
	Confirm
	ChooseTarget
	CreatePlaylist
	AppendTracks
	Complete
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case SearchTracks:
		return "search_tracks"
	case MatchSummary:
		return "match_summary"
	case Confirm:
		return "confirm"
	case ChooseTarget:
		return "choose_target"
	case CreatePlaylist:
		return "create_playlist"
	case AppendTracks:
		return "append_tracks"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func fetchSourceUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching items of %q...", name),
	}
}

func foundSourceUpdate(ref models.PlaylistRef, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found playlist: %s (%d items)", ref.Title, total),
		Data:    ref,
	}
}

func searchingUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Searching for: %s", step, total, title),
	}
}

func searchedUpdate(step, total int, m models.Match) ProgressUpdate {
	msg := "No match found."
	if m.Found() {
		msg = fmt.Sprintf("Match found: %s", m.Label())
	}
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, msg),
		Data:    m,
	}
}

func matchSummaryUpdate(found, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchSummary,
		Step:    found,
		Total:   total,
		Message: fmt.Sprintf("Matched %d of %d items", found, total),
	}
}

func confirmedUpdate(selected, found int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Confirm,
		Step:    selected,
		Total:   found,
		Message: fmt.Sprintf("Selected %d of %d matched tracks", selected, found),
	}
}

func noEligibleUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ChooseTarget,
		Step:    0,
		Total:   0,
		Message: "You don't own or collaborate on any Spotify playlist. Creating a new playlist instead.",
	}
}

func createPlaylistUpdate(ref models.PlaylistRef) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", ref.Title, ref.ID),
		Data:    ref,
	}
}

func appendTracksUpdate(ref models.PlaylistRef, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AppendTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Adding %d tracks to %s...", count, ref.Title),
	}
}

func completeUpdate(url string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist available at %s", url),
		Data:    url,
	}
}

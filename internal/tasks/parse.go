package tasks

import (
	"strings"

	"github.com/desertthunder/yt2spot/internal/models"
)

// ParseTitle extracts an artist and track from a title following the loose "Artist - Track (annotation)" convention.
//
// The title must contain exactly one '-' with text on both sides. Both sides are trimmed and the track is cut
// at the first '('. Any other title yields the whole title as the track, [models.UnknownArtist] as the artist
// and [models.Fallback] confidence, so hyphenated names like "Jay-Z - Empire" are searched as-is.
// ParseTitle never fails.
func ParseTitle(title string) models.ParsedQuery {
	fallback := models.ParsedQuery{Artist: models.UnknownArtist, Track: title, Confidence: models.Fallback}
	if strings.Count(title, "-") != 1 {
		return fallback
	}

	artist, track, _ := strings.Cut(title, "-")
	artist = strings.TrimSpace(artist)
	track = strings.TrimSpace(track)
	if artist == "" || track == "" {
		return fallback
	}

	if i := strings.IndexByte(track, '('); i >= 0 {
		track = track[:i]
	}

	return models.ParsedQuery{Artist: artist, Track: track, Confidence: models.Parsed}
}

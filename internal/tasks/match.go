package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/services"
	"github.com/desertthunder/yt2spot/internal/shared"
)

// MatchEngine maps source items to destination tracks.
type MatchEngine struct {
	dest   services.DestinationClient
	logger *log.Logger
}

// NewMatchEngine creates a MatchEngine. A nil logger discards output.
func NewMatchEngine(dest services.DestinationClient, logger *log.Logger) *MatchEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &MatchEngine{dest: dest, logger: logger}
}

// BuildMatches returns exactly one [models.Match] per item, in item order.
//
// Searches run sequentially. A failed search is logged and recorded as not found, except a rejected session
// ([shared.ErrNotAuthenticated]) or a cancelled context, which end the run.
// Titles that did not parse are searched by track alone.
func (e *MatchEngine) BuildMatches(ctx context.Context, items []models.SourceItem, report Reporter) (models.MatchSet, error) {
	total := len(items)
	matches := make(models.MatchSet, 0, total)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report.send(searchingUpdate(i+1, total, item.Title))

		q := ParseTitle(item.Title)
		artist := q.Artist
		if q.Confidence == models.Fallback {
			artist = ""
		}

		found, err := e.dest.Search(ctx, q.Track, artist)
		if err != nil {
			if errors.Is(err, shared.ErrNotAuthenticated) {
				return nil, fmt.Errorf("search for %q: %w", item.Title, err)
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			e.logger.Warn("search failed, treating as no match", "title", item.Title, "error", err)
			found = nil
		}

		m := models.Match{
			SourceTitle:  item.Title,
			ParsedTrack:  q.Track,
			ParsedArtist: q.Artist,
			Confidence:   q.Confidence,
			Destination:  found,
		}
		matches = append(matches, m)

		e.logger.Debug("searched", "title", item.Title, "artist", q.Artist, "track", q.Track, "found", m.Found())
		report.send(searchedUpdate(i+1, total, m))
	}

	found := matches.FoundCount()
	e.logger.Info("matching complete", "found", found, "total", total)
	report.send(matchSummaryUpdate(found, total))

	return matches, nil
}

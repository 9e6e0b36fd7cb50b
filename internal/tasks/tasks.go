package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/services"
	"github.com/desertthunder/yt2spot/internal/shared"
)

// Recorder journals committed transfers.
type Recorder interface {
	Create(ctx context.Context, record *models.TransferRecord) error
}

// MigrationResult contains all data from a completed migration.
type MigrationResult struct {
	Source   models.PlaylistRef // Source playlist
	Matches  models.MatchSet    // One match per source item
	Transfer *TransferResult    // Committed write
	Record   *models.TransferRecord
}

// Migrator sequences a migration: fetch, match, confirm, transfer.
type Migrator struct {
	source   services.SourceClient
	matcher  *MatchEngine
	confirm  *ConfirmationStage
	transfer *TransferStage
	prompter Prompter
	recorder Recorder
	logger   *log.Logger
}

// MigratorOption configures a [Migrator].
type MigratorOption func(*migratorOptions)

type migratorOptions struct {
	recorder    Recorder
	logger      *log.Logger
	description string
}

// WithRecorder journals each committed transfer.
func WithRecorder(r Recorder) MigratorOption {
	return func(o *migratorOptions) { o.recorder = r }
}

// WithLogger sets the logger shared by all stages.
func WithLogger(l *log.Logger) MigratorOption {
	return func(o *migratorOptions) { o.logger = l }
}

// WithDescription sets the description template for new playlists.
func WithDescription(d string) MigratorOption {
	return func(o *migratorOptions) { o.description = d }
}

// NewMigrator wires the pipeline stages around the given collaborators.
func NewMigrator(source services.SourceClient, dest services.DestinationClient, prompter Prompter, opts ...MigratorOption) *Migrator {
	o := migratorOptions{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	return &Migrator{
		source:   source,
		matcher:  NewMatchEngine(dest, o.logger),
		confirm:  NewConfirmationStage(prompter),
		transfer: NewTransferStage(dest, prompter, o.logger, o.description),
		prompter: prompter,
		recorder: o.recorder,
		logger:   o.logger,
	}
}

// Run migrates one source playlist. sourceQuery is a playlist ID or title; when empty the user picks one.
//
// Run returns an error wrapping [shared.ErrNoMatchesFound] without prompting when no item matched.
// Collaborator errors end the run as they occur; nothing written to the destination is rolled back.
func (m *Migrator) Run(ctx context.Context, sourceQuery string, report Reporter) (*MigrationResult, error) {
	source, err := m.ResolveSource(ctx, sourceQuery)
	if err != nil {
		return nil, err
	}

	report.send(fetchSourceUpdate(source.Title))
	items, err := m.source.ListItems(ctx, source.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s playlist items: %w", m.source.Name(), err)
	}
	report.send(foundSourceUpdate(source, len(items)))

	matches, err := m.matcher.BuildMatches(ctx, items, report)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{Source: source, Matches: matches}
	if matches.FoundCount() == 0 {
		return result, fmt.Errorf("%w: none of the %d items in %q resolved to a track", shared.ErrNoMatchesFound, len(items), source.Title)
	}

	selection, err := m.confirm.Confirm(ctx, matches)
	if err != nil {
		return result, err
	}
	report.send(confirmedUpdate(len(selection), matches.FoundCount()))

	transferred, err := m.transfer.Transfer(ctx, selection, source.Title, report)
	if err != nil {
		return result, err
	}
	result.Transfer = transferred
	result.Record = m.record(ctx, result)

	return result, nil
}

// ResolveSource finds the source playlist by ID or case-insensitive title, or prompts when query is empty.
//
// When the user's playlists cannot be listed (e.g. API key only) a non-empty query is used as the ID as-is.
func (m *Migrator) ResolveSource(ctx context.Context, query string) (models.PlaylistRef, error) {
	query = strings.TrimSpace(query)

	playlists, err := m.source.ListPlaylists(ctx)
	if err != nil {
		if query != "" && errors.Is(err, shared.ErrNotAuthenticated) {
			m.logger.Debug("cannot list source playlists, using query as ID", "query", query)
			return models.PlaylistRef{ID: query, Title: query}, nil
		}
		return models.PlaylistRef{}, fmt.Errorf("failed to list %s playlists: %w", m.source.Name(), err)
	}

	if query != "" {
		for _, p := range playlists {
			if p.ID == query {
				return p, nil
			}
		}
		for _, p := range playlists {
			if strings.EqualFold(p.Title, query) {
				return p, nil
			}
		}
		return models.PlaylistRef{ID: query, Title: query}, nil
	}

	if len(playlists) == 0 {
		return models.PlaylistRef{}, fmt.Errorf("%w: no %s playlists in your library", shared.ErrPlaylistNotFound, m.source.Name())
	}

	titles := make([]string, len(playlists))
	for i, p := range playlists {
		titles[i] = p.Title
	}

	idx, err := m.prompter.Select(ctx, "Which playlist do you want to migrate?", titles)
	if err != nil {
		return models.PlaylistRef{}, err
	}
	if idx < 0 || idx >= len(playlists) {
		return models.PlaylistRef{}, fmt.Errorf("%w: playlist choice %d", shared.ErrInvalidArgument, idx)
	}
	return playlists[idx], nil
}

func (m *Migrator) record(ctx context.Context, result *MigrationResult) *models.TransferRecord {
	if m.recorder == nil {
		return nil
	}

	t := result.Transfer
	rec := models.NewTransferRecord(
		result.Source, t.Ref, t.URL, t.Target.Mode,
		len(result.Matches), result.Matches.FoundCount(), t.Count,
	)
	if err := m.recorder.Create(ctx, rec); err != nil {
		m.logger.Warn("failed to record transfer", "playlist", t.Ref.ID, "error", err)
		return nil
	}
	return rec
}

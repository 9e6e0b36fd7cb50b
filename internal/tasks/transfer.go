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

type modeOption struct {
	label string
	mode  models.TransferMode
}

var modeOptions = []modeOption{
	{label: "Create a new playlist", mode: models.CreateNew},
	{label: "Add to an existing playlist", mode: models.AddToExisting},
}

func modeLabels() []string {
	labels := make([]string, len(modeOptions))
	for i, o := range modeOptions {
		labels[i] = o.label
	}
	return labels
}

// TransferResult describes the committed write.
type TransferResult struct {
	Target models.TransferTarget
	Ref    models.PlaylistRef // playlist the tracks were appended to
	URL    string
	Count  int
}

// TransferStage resolves a destination playlist and commits the confirmed selection to it.
type TransferStage struct {
	dest        services.DestinationClient
	prompter    Prompter
	logger      *log.Logger
	description string
}

// NewTransferStage creates a TransferStage. description is used for new playlists; a "%s" verb is replaced with the
// suggested name.
func NewTransferStage(dest services.DestinationClient, prompter Prompter, logger *log.Logger, description string) *TransferStage {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TransferStage{dest: dest, prompter: prompter, logger: logger, description: description}
}

// EligiblePlaylists keeps the playlists userID owns or can collaborate on, in listing order.
func EligiblePlaylists(playlists []models.DestinationPlaylist, userID string) []models.DestinationPlaylist {
	eligible := make([]models.DestinationPlaylist, 0, len(playlists))
	for _, p := range playlists {
		if p.Writable(userID) {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// Transfer chooses a target and appends selection to it with a single AppendTracks call.
// A newly created playlist is left in place if the append fails.
func (s *TransferStage) Transfer(ctx context.Context, selection []string, suggestedName string, report Reporter) (*TransferResult, error) {
	if len(selection) == 0 {
		return nil, shared.ErrEmptySelection
	}

	target, err := s.ChooseTarget(ctx, suggestedName, report)
	if err != nil {
		return nil, err
	}

	ref := target.Ref
	if target.Mode == models.CreateNew {
		ref, err = s.dest.CreatePlaylist(ctx, target.Name, s.describe(suggestedName))
		if err != nil {
			return nil, fmt.Errorf("failed to create playlist %q: %w", target.Name, err)
		}
		s.logger.Info("created playlist", "id", ref.ID, "name", ref.Title)
		report.send(createPlaylistUpdate(ref))
	}

	report.send(appendTracksUpdate(ref, len(selection)))
	url, err := s.dest.AppendTracks(ctx, ref, selection)
	if err != nil {
		return nil, fmt.Errorf("failed to add tracks to %q: %w", ref.Title, err)
	}

	s.logger.Info("added tracks", "playlist", ref.ID, "count", len(selection))
	report.send(completeUpdate(url))

	return &TransferResult{Target: target, Ref: ref, URL: url, Count: len(selection)}, nil
}

// ChooseTarget runs the mode prompt and the follow-up name or playlist prompt.
//
// When no existing playlist is writable the playlist prompt shows its empty state, a warning is reported and the
// user is asked for a new playlist name instead.
func (s *TransferStage) ChooseTarget(ctx context.Context, suggestedName string, report Reporter) (models.TransferTarget, error) {
	idx, err := s.prompter.Select(ctx, "Where should the songs go?", modeLabels())
	if err != nil {
		return models.TransferTarget{}, err
	}
	if idx < 0 || idx >= len(modeOptions) {
		return models.TransferTarget{}, fmt.Errorf("%w: mode choice %d", shared.ErrInvalidArgument, idx)
	}

	if modeOptions[idx].mode == models.AddToExisting {
		ref, err := s.pickExisting(ctx)
		switch {
		case err == nil:
			return models.ExistingPlaylistTarget(ref), nil
		case errors.Is(err, shared.ErrNoEligiblePlaylists):
			s.logger.Warn("no writable playlists, falling back to a new playlist")
			report.send(noEligibleUpdate())
		default:
			return models.TransferTarget{}, err
		}
	}

	name, err := s.prompter.Input(ctx, "Name of the new playlist", suggestedName, ValidatePlaylistName)
	if err != nil {
		return models.TransferTarget{}, err
	}
	return models.NewPlaylistTarget(strings.TrimSpace(name)), nil
}

func (s *TransferStage) pickExisting(ctx context.Context) (models.PlaylistRef, error) {
	userID, err := s.dest.CurrentUserID(ctx)
	if err != nil {
		return models.PlaylistRef{}, err
	}

	playlists, err := s.dest.ListPlaylists(ctx)
	if err != nil {
		return models.PlaylistRef{}, err
	}

	eligible := EligiblePlaylists(playlists, userID)
	s.logger.Debug("listed destination playlists", "total", len(playlists), "writable", len(eligible))

	// With no options the prompter renders its empty state and returns shared.ErrNoEligiblePlaylists.
	options := make([]string, len(eligible))
	for i, p := range eligible {
		options[i] = fmt.Sprintf("%s (%d tracks)", p.Ref.Title, p.TrackCount)
	}

	idx, err := s.prompter.Select(ctx, "Choose a playlist", options)
	if err != nil {
		return models.PlaylistRef{}, err
	}
	if idx < 0 || idx >= len(eligible) {
		return models.PlaylistRef{}, fmt.Errorf("%w: playlist choice %d", shared.ErrInvalidArgument, idx)
	}
	return eligible[idx].Ref, nil
}

func (s *TransferStage) describe(name string) string {
	if strings.Contains(s.description, "%s") {
		return fmt.Sprintf(s.description, name)
	}
	return s.description
}

// ValidatePlaylistName rejects blank names.
func ValidatePlaylistName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.ErrEmptyPlaylistName
	}
	return nil
}

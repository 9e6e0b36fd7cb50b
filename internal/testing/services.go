package testing

import (
	"context"
	"fmt"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
)

// FakeSource is a test double for [services.SourceClient]
type FakeSource struct {
	Playlists []models.PlaylistRef
	Items     map[string][]models.SourceItem
	ListErr   error
	ItemsErr  error

	ItemCalls []string // playlist IDs passed to ListItems
}

func (f *FakeSource) Name() string { return "fake-source" }

func (f *FakeSource) ListPlaylists(ctx context.Context) ([]models.PlaylistRef, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Playlists, nil
}

func (f *FakeSource) ListItems(ctx context.Context, playlistID string) ([]models.SourceItem, error) {
	f.ItemCalls = append(f.ItemCalls, playlistID)
	if f.ItemsErr != nil {
		return nil, f.ItemsErr
	}
	items, ok := f.Items[playlistID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	return items, nil
}

// SearchCall records the arguments of one Search call
type SearchCall struct {
	Track  string
	Artist string
}

// AppendCall records the arguments of one AppendTracks call
type AppendCall struct {
	Ref  models.PlaylistRef
	URIs []string
}

// FakeDestination is a test double for [services.DestinationClient].
// Search results are keyed by [SearchKey]; a missing key means no match.
type FakeDestination struct {
	Results    map[string]*models.DestinationTrack
	SearchErrs map[string]error
	UserID     string
	Playlists  []models.DestinationPlaylist
	UserErr    error
	ListErr    error
	CreateErr  error
	AppendErr  error

	Searches []SearchCall
	Created  []string // names passed to CreatePlaylist
	Descs    []string // descriptions passed to CreatePlaylist
	Appends  []AppendCall
}

// SearchKey builds the [FakeDestination.Results] key for a search.
func SearchKey(track, artist string) string {
	return track + "|" + artist
}

func (f *FakeDestination) Name() string { return "fake-destination" }

func (f *FakeDestination) Search(ctx context.Context, track, artist string) (*models.DestinationTrack, error) {
	f.Searches = append(f.Searches, SearchCall{Track: track, Artist: artist})
	key := SearchKey(track, artist)
	if err, ok := f.SearchErrs[key]; ok {
		return nil, err
	}
	return f.Results[key], nil
}

func (f *FakeDestination) ListPlaylists(ctx context.Context) ([]models.DestinationPlaylist, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Playlists, nil
}

func (f *FakeDestination) CurrentUserID(ctx context.Context) (string, error) {
	if f.UserErr != nil {
		return "", f.UserErr
	}
	return f.UserID, nil
}

func (f *FakeDestination) CreatePlaylist(ctx context.Context, name, description string) (models.PlaylistRef, error) {
	f.Created = append(f.Created, name)
	f.Descs = append(f.Descs, description)
	if f.CreateErr != nil {
		return models.PlaylistRef{}, f.CreateErr
	}
	return models.PlaylistRef{ID: fmt.Sprintf("new-%d", len(f.Created)), Title: name}, nil
}

func (f *FakeDestination) AppendTracks(ctx context.Context, ref models.PlaylistRef, uris []string) (string, error) {
	f.Appends = append(f.Appends, AppendCall{Ref: ref, URIs: append([]string(nil), uris...)})
	if f.AppendErr != nil {
		return "", f.AppendErr
	}
	return "https://open.spotify.com/playlist/" + ref.ID, nil
}

// Track builds a destination track with a predictable URI.
func Track(id, artist, name string) *models.DestinationTrack {
	return &models.DestinationTrack{URI: "spotify:track:" + id, Name: name, ArtistName: artist}
}

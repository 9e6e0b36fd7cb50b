// package services defines the collaborator interfaces the migration pipeline depends on
//
// YouTube (source), Spotify (destination)
package services

import (
	"context"

	"github.com/desertthunder/yt2spot/internal/models"
	"golang.org/x/oauth2"
)

// DefaultRedirectURI is used when a credential section leaves redirect_uri empty.
const DefaultRedirectURI = "http://127.0.0.1:3000/callback"

// SourceClient lists playlists and their entries on the service being migrated from.
type SourceClient interface {
	// Name returns the name of the service (e.g., "YouTube")
	Name() string

	// ListPlaylists retrieves all playlists for the authenticated user.
	ListPlaylists(ctx context.Context) ([]models.PlaylistRef, error)

	// ListItems retrieves every entry of a playlist, in playlist order.
	ListItems(ctx context.Context, playlistID string) ([]models.SourceItem, error)
}

// DestinationClient searches tracks and writes playlists on the service being migrated to.
type DestinationClient interface {
	// Name returns the name of the service (e.g., "Spotify")
	Name() string

	// Search returns the best match for track by artist, or nil when nothing matched.
	// An empty artist searches by track alone.
	Search(ctx context.Context, track, artist string) (*models.DestinationTrack, error)

	// ListPlaylists retrieves every playlist visible to the authenticated user with ownership details.
	ListPlaylists(ctx context.Context) ([]models.DestinationPlaylist, error)

	// CurrentUserID returns the authenticated user's ID.
	CurrentUserID(ctx context.Context) (string, error)

	// CreatePlaylist creates an empty playlist owned by the authenticated user.
	CreatePlaylist(ctx context.Context, name, description string) (models.PlaylistRef, error)

	// AppendTracks appends uris to the playlist and returns its public URL.
	// Not idempotent: calling it twice appends the tracks twice.
	AppendTracks(ctx context.Context, ref models.PlaylistRef, uris []string) (string, error)
}

// OAuthService is implemented by clients that authenticate with the OAuth2 authorization code flow.
type OAuthService interface {
	// Name returns the name of the service
	Name() string

	// AuthURL returns the consent page URL carrying state.
	AuthURL(state string) string

	// Exchange trades an authorization code for a token.
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)

	// Authenticate configures the client to use token for subsequent requests.
	Authenticate(ctx context.Context, token *oauth2.Token) error
}

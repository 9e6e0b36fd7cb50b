// Spotify Web API [DestinationClient] implementation backed by github.com/zmb3/spotify/v2
//
// API reference: https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"
)

const (
	spotifyPlaylistURL = "https://open.spotify.com/playlist/"
	spotifyTrackPrefix = "spotify:track:"
	// maximum number of tracks per add-items request
	spotifyAddLimit  = 100
	spotifyPageLimit = 50
)

// SpotifyService implements [DestinationClient] and [OAuthService] for Spotify.
type SpotifyService struct {
	auth    *spotifyauth.Authenticator
	client  *spotify.Client
	limiter *rate.Limiter
	public  bool
	baseURL string

	mu     sync.Mutex
	userID string
}

// SpotifyOption configures a [SpotifyService].
type SpotifyOption func(*SpotifyService)

// WithSearchRate limits searches to perSecond requests. Zero or less disables pacing.
func WithSearchRate(perSecond float64) SpotifyOption {
	return func(s *SpotifyService) {
		if perSecond <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithPublicPlaylists makes newly created playlists public.
func WithPublicPlaylists(public bool) SpotifyOption {
	return func(s *SpotifyService) { s.public = public }
}

// WithSpotifyBaseURL points the API client at a different root. The URL must end in a slash.
func WithSpotifyBaseURL(u string) SpotifyOption {
	return func(s *SpotifyService) { s.baseURL = u }
}

// NewSpotifyService creates a new Spotify service from the configured credentials.
func NewSpotifyService(creds shared.OAuthCredentials, opts ...SpotifyOption) (*SpotifyService, error) {
	if creds.ClientID == "" {
		return nil, fmt.Errorf("%w: spotify client_id", shared.ErrMissingCredentials)
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_secret", shared.ErrMissingCredentials)
	}

	redirectURI := creds.RedirectURI
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}

	s := &SpotifyService{
		auth: spotifyauth.New(
			spotifyauth.WithClientID(creds.ClientID),
			spotifyauth.WithClientSecret(creds.ClientSecret),
			spotifyauth.WithRedirectURL(redirectURI),
			spotifyauth.WithScopes(
				spotifyauth.ScopePlaylistReadPrivate,
				spotifyauth.ScopePlaylistReadCollaborative,
				spotifyauth.ScopePlaylistModifyPublic,
				spotifyauth.ScopePlaylistModifyPrivate,
			),
		),
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Name returns the service name.
func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL generates the OAuth2 authorization URL.
func (s *SpotifyService) AuthURL(state string) string {
	return s.auth.AuthURL(state)
}

// Exchange trades an authorization code for a token.
func (s *SpotifyService) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	return s.auth.Exchange(ctx, code, opts...)
}

// Authenticate builds the API client around token. Expired access tokens are refreshed by the client.
func (s *SpotifyService) Authenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("%w: missing spotify token", shared.ErrNotAuthenticated)
	}
	s.setClient(s.auth.Client(ctx, token))
	return nil
}

func (s *SpotifyService) setClient(httpClient *http.Client) {
	var opts []spotify.ClientOption
	if s.baseURL != "" {
		opts = append(opts, spotify.WithBaseURL(s.baseURL))
	}
	s.client = spotify.New(httpClient, opts...)
}

func (s *SpotifyService) api() (*spotify.Client, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: run 'yt2spot auth spotify' first", shared.ErrNotAuthenticated)
	}
	return s.client, nil
}

// Search returns the top track for the query, or nil when the catalogue has nothing.
func (s *SpotifyService) Search(ctx context.Context, track, artist string) (*models.DestinationTrack, error) {
	client, err := s.api()
	if err != nil {
		return nil, err
	}

	query := SearchQuery(track, artist)
	if query == "" {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	results, err := client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return nil, wrapSpotifyError("search", err)
	}

	if results == nil || results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		return nil, nil
	}

	t := results.Tracks.Tracks[0]
	found := &models.DestinationTrack{URI: string(t.URI), Name: t.Name}
	if found.URI == "" {
		found.URI = spotifyTrackPrefix + string(t.ID)
	}
	if len(t.Artists) > 0 {
		found.ArtistName = t.Artists[0].Name
	}
	return found, nil
}

// SearchQuery builds a field-filtered track search. Both parts are NFKC-normalised.
func SearchQuery(track, artist string) string {
	track = strings.TrimSpace(norm.NFKC.String(track))
	artist = strings.TrimSpace(norm.NFKC.String(artist))

	switch {
	case track == "" && artist == "":
		return ""
	case artist == "":
		return fmt.Sprintf("track:%s", track)
	case track == "":
		return fmt.Sprintf("artist:%s", artist)
	default:
		return fmt.Sprintf("track:%s artist:%s", track, artist)
	}
}

// CurrentUserID returns the authenticated user's ID, cached after the first call.
func (s *SpotifyService) CurrentUserID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID != "" {
		return s.userID, nil
	}

	client, err := s.api()
	if err != nil {
		return "", err
	}

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return "", wrapSpotifyError("current user", err)
	}

	s.userID = user.ID
	return s.userID, nil
}

// ListPlaylists retrieves every playlist in the user's library, following pagination.
func (s *SpotifyService) ListPlaylists(ctx context.Context) ([]models.DestinationPlaylist, error) {
	client, err := s.api()
	if err != nil {
		return nil, err
	}

	page, err := client.CurrentUsersPlaylists(ctx, spotify.Limit(spotifyPageLimit))
	if err != nil {
		return nil, wrapSpotifyError("list playlists", err)
	}

	var playlists []models.DestinationPlaylist
	for {
		for _, p := range page.Playlists {
			playlists = append(playlists, models.DestinationPlaylist{
				Ref:           models.PlaylistRef{ID: string(p.ID), Title: p.Name},
				OwnerID:       p.Owner.ID,
				Collaborative: p.Collaborative,
				TrackCount:    int(p.Tracks.Total),
			})
		}

		err := client.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, wrapSpotifyError("list playlists", err)
		}
	}

	return playlists, nil
}

// CreatePlaylist creates an empty, non-collaborative playlist for the current user.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, name, description string) (models.PlaylistRef, error) {
	if strings.TrimSpace(name) == "" {
		return models.PlaylistRef{}, shared.ErrEmptyPlaylistName
	}

	userID, err := s.CurrentUserID(ctx)
	if err != nil {
		return models.PlaylistRef{}, err
	}

	pl, err := s.client.CreatePlaylistForUser(ctx, userID, name, description, s.public, false)
	if err != nil {
		return models.PlaylistRef{}, wrapSpotifyError("create playlist", err)
	}

	return models.PlaylistRef{ID: string(pl.ID), Title: pl.Name}, nil
}

// AppendTracks adds uris to the end of the playlist in batches of 100, preserving order.
func (s *SpotifyService) AppendTracks(ctx context.Context, ref models.PlaylistRef, uris []string) (string, error) {
	client, err := s.api()
	if err != nil {
		return "", err
	}
	if ref.ID == "" {
		return "", fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	ids := make([]spotify.ID, 0, len(uris))
	for _, uri := range uris {
		id, err := TrackID(uri)
		if err != nil {
			return "", err
		}
		ids = append(ids, id)
	}

	for start := 0; start < len(ids); start += spotifyAddLimit {
		end := min(start+spotifyAddLimit, len(ids))
		if _, err := client.AddTracksToPlaylist(ctx, spotify.ID(ref.ID), ids[start:end]...); err != nil {
			return "", wrapSpotifyError("add tracks", err)
		}
	}

	return PlaylistURL(ref.ID), nil
}

// TrackID extracts the bare track ID from a spotify:track: URI.
func TrackID(uri string) (spotify.ID, error) {
	id, ok := strings.CutPrefix(uri, spotifyTrackPrefix)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: not a track URI: %q", shared.ErrInvalidArgument, uri)
	}
	return spotify.ID(id), nil
}

// PlaylistURL returns the public web URL of a playlist.
func PlaylistURL(id string) string {
	return spotifyPlaylistURL + id
}

func wrapSpotifyError(op string, err error) error {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: spotify %s: %s", shared.ErrNotAuthenticated, op, apiErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: spotify %s: %s", shared.ErrPlaylistNotFound, op, apiErr.Message)
		}
		return fmt.Errorf("%w: spotify %s (status %d): %s", shared.ErrAPIRequest, op, apiErr.Status, apiErr.Message)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: spotify %s: %v", shared.ErrAPIRequest, op, err)
}

// YouTube Data API v3 [SourceClient] implementation
//
// API reference: https://developers.google.com/youtube/v3/docs
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/shared"
	"golang.org/x/oauth2"
)

const (
	youtubeBaseURL  = "https://www.googleapis.com/youtube/v3"
	googleAuthURL   = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL  = "https://oauth2.googleapis.com/token"
	youtubeScope    = "https://www.googleapis.com/auth/youtube.readonly"
	youtubePageSize = 50
)

type youtubeSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	Position     int    `json:"position"`
}

type youtubePlaylist struct {
	ID      string         `json:"id"`
	Snippet youtubeSnippet `json:"snippet"`
}

type youtubePlaylistItem struct {
	ID      string         `json:"id"`
	Snippet youtubeSnippet `json:"snippet"`
}

type youtubePage[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

type youtubeError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// YouTubeService implements [SourceClient] for the YouTube Data API.
type YouTubeService struct {
	config     *oauth2.Config
	apiKey     string
	baseURL    string
	httpClient *http.Client
	authed     bool
}

// YouTubeOption configures a [YouTubeService].
type YouTubeOption func(*YouTubeService)

// WithYouTubeBaseURL points the service at a different API root.
func WithYouTubeBaseURL(u string) YouTubeOption {
	return func(y *YouTubeService) { y.baseURL = u }
}

// WithYouTubeHTTPClient replaces the unauthenticated HTTP client.
func WithYouTubeHTTPClient(c *http.Client) YouTubeOption {
	return func(y *YouTubeService) { y.httpClient = c }
}

// NewYouTubeService creates a YouTube service from the configured credentials.
// Either an OAuth client registration or an API key is required.
func NewYouTubeService(creds shared.OAuthCredentials, opts ...YouTubeOption) (*YouTubeService, error) {
	if !creds.Configured() && creds.APIKey == "" {
		return nil, fmt.Errorf("%w: youtube client_id/client_secret or api_key", shared.ErrMissingCredentials)
	}

	redirectURI := creds.RedirectURI
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}

	y := &YouTubeService{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{youtubeScope},
			Endpoint:     oauth2.Endpoint{AuthURL: googleAuthURL, TokenURL: googleTokenURL},
		},
		apiKey:     creds.APIKey,
		baseURL:    youtubeBaseURL,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(y)
	}

	return y, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// AuthURL returns the Google consent URL. Offline access is requested so a refresh token is issued.
func (y *YouTubeService) AuthURL(state string) string {
	return y.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a token.
func (y *YouTubeService) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	return y.config.Exchange(ctx, code, opts...)
}

// Authenticate switches to an OAuth2 client that refreshes token automatically.
func (y *YouTubeService) Authenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("%w: missing youtube token", shared.ErrNotAuthenticated)
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, y.httpClient)
	y.httpClient = y.config.Client(ctx, token)
	y.authed = true
	return nil
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if !y.authed && y.apiKey == "" {
		return fmt.Errorf("%w: run 'yt2spot auth youtube' first", shared.ErrNotAuthenticated)
	}
	if y.apiKey != "" && !y.authed {
		params.Set("key", y.apiKey)
	}

	apiURL := y.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp youtubeError
		detail := ""
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			detail = errResp.Error.Message
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return fmt.Errorf("%w: youtube rejected the token: %s", shared.ErrNotAuthenticated, detail)
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, detail)
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: youtube returned status %d", shared.ErrServiceUnavailable, resp.StatusCode)
		default:
			return fmt.Errorf("%w: youtube API error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, detail)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// ListPlaylists retrieves all playlists owned by the authenticated user.
//
// Calls GET /playlists?mine=true, following nextPageToken.
func (y *YouTubeService) ListPlaylists(ctx context.Context) ([]models.PlaylistRef, error) {
	if !y.authed {
		return nil, fmt.Errorf("%w: listing your playlists requires 'yt2spot auth youtube'", shared.ErrNotAuthenticated)
	}

	var playlists []models.PlaylistRef
	pageToken := ""
	for {
		params := url.Values{
			"part":       {"snippet"},
			"mine":       {"true"},
			"maxResults": {strconv.Itoa(youtubePageSize)},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page youtubePage[youtubePlaylist]
		if err := y.doRequest(ctx, "/playlists", params, &page); err != nil {
			return nil, err
		}

		for _, p := range page.Items {
			playlists = append(playlists, models.PlaylistRef{ID: p.ID, Title: p.Snippet.Title})
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return playlists, nil
}

// ListItems retrieves every entry of a playlist in playlist order.
//
// Calls GET /playlistItems?playlistId={id}, following nextPageToken.
func (y *YouTubeService) ListItems(ctx context.Context, playlistID string) ([]models.SourceItem, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	var items []models.SourceItem
	pageToken := ""
	for {
		params := url.Values{
			"part":       {"snippet"},
			"playlistId": {playlistID},
			"maxResults": {strconv.Itoa(youtubePageSize)},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page youtubePage[youtubePlaylistItem]
		if err := y.doRequest(ctx, "/playlistItems", params, &page); err != nil {
			return nil, err
		}

		for _, it := range page.Items {
			items = append(items, models.SourceItem{Title: it.Snippet.Title})
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return items, nil
}

// Package services defines [SourceClient] and [DestinationClient], the two remote collaborators of a migration,
// and implements them for YouTube and Spotify.
//
// # YouTube Implementation
//
// [YouTubeService] reads playlists through the YouTube Data API v3 using an OAuth2 client.
// Listing the user's own playlists requires a token; reading the items of a public playlist also works with an
// API key alone.
//
// # Spotify Implementation
//
// [SpotifyService] wraps github.com/zmb3/spotify/v2. Searches are paced by a [rate.Limiter] and issued one at a
// time. Queries are NFKC-normalised so full-width and compatibility characters common in video titles match the
// catalogue.
//
// # OAuth Service Extension
//
// Both implementations satisfy [OAuthService] so the CLI can run the authorization code flow against a local
// callback server and persist the resulting tokens.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : no token configured or the token was rejected
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrPlaylistNotFound] : Playlist ID not found
//
// A search with no result is not an error: Search returns (nil, nil).
package services

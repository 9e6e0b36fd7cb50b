package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")

	// Migration errors
	ErrNoMatchesFound      = fmt.Errorf("no matches found")
	ErrEmptySelection      = fmt.Errorf("you must choose at least one song to transfer")
	ErrEmptyPlaylistName   = fmt.Errorf("you must enter a name for your playlist")
	ErrNoEligiblePlaylists = fmt.Errorf("no playlists you can modify")
	ErrAborted             = fmt.Errorf("aborted by user")
	ErrNotInteractive      = fmt.Errorf("an interactive terminal is required")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

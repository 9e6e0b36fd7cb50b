package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/yt2spot/internal/server"
	"github.com/desertthunder/yt2spot/internal/services"
	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const authTimeout = 2 * time.Minute

func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize yt2spot with Spotify or YouTube",
		Commands: []*cli.Command{
			{
				Name:    "spotify",
				Aliases: []string{"spot"},
				Usage:   "Authenticate with Spotify using OAuth2",
				Action:  r.AuthSpotify,
			},
			{
				Name:    "youtube",
				Aliases: []string{"yt"},
				Usage:   "Authenticate with YouTube using OAuth2",
				Action:  r.AuthYouTube,
			},
		},
	}
}

// AuthSpotify performs the OAuth2 authorization flow for Spotify and saves the tokens to the config file.
func (r *Runner) AuthSpotify(ctx context.Context, cmd *cli.Command) error {
	creds := &r.config.Credentials.Spotify
	if !creds.Configured() {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in %s", shared.ErrMissingCredentials, r.configPath)
	}

	svc, err := services.NewSpotifyService(*creds)
	if err != nil {
		return fmt.Errorf("failed to create Spotify service: %w", err)
	}

	return r.authorize(ctx, svc, creds)
}

// AuthYouTube performs the OAuth2 authorization flow for YouTube and saves the tokens to the config file.
//
// An api_key alone is enough to read public playlists; authorization is needed to list your own.
func (r *Runner) AuthYouTube(ctx context.Context, cmd *cli.Command) error {
	creds := &r.config.Credentials.YouTube
	if !creds.Configured() {
		return fmt.Errorf("%w: YouTube client_id and client_secret must be set in %s", shared.ErrMissingCredentials, r.configPath)
	}

	svc, err := services.NewYouTubeService(*creds)
	if err != nil {
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return r.authorize(ctx, svc, creds)
}

func (r *Runner) authorize(ctx context.Context, svc services.OAuthService, creds *shared.OAuthCredentials) error {
	name := svc.Name()
	redirectURI := cmp.Or(creds.RedirectURI, services.DefaultRedirectURI)

	token, err := r.doOAuth(ctx, svc, name, redirectURI)
	if err != nil {
		return err
	}

	if err := r.saveTokens(name, creds, token); err != nil {
		return err
	}

	r.writePlainln("✓ %s authorization successful", name)
	if r.configPath != "" {
		r.writePlain("✓ Tokens saved to %s\n", r.configPath)
	}
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(ctx context.Context, svc services.OAuthService, name, redirectURI string) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	oauthHandler, err := server.NewOAuthHandler(svc, name, redirectURI, state)
	if err != nil {
		return nil, err
	}
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", name, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	authURL := svc.AuthURL(state)
	r.writePlain("→ Opening browser for %s authorization...\n", name)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.OAuthResult
	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}

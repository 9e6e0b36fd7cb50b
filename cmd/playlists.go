package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/tasks"
	"github.com/urfave/cli/v3"
)

func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlists",
		Usage: "List playlists on either service",
		Commands: []*cli.Command{
			{
				Name:    "youtube",
				Aliases: []string{"yt"},
				Usage:   "List your YouTube playlists",
				Flags:   []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action:  r.YouTubePlaylists,
			},
			{
				Name:    "spotify",
				Aliases: []string{"spot"},
				Usage:   "List your Spotify playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{
						Name:  "writable",
						Usage: "Only show playlists you own or collaborate on",
					},
				},
				Action: r.SpotifyPlaylists,
			},
		},
	}
}

// YouTubePlaylists prints the authenticated user's YouTube playlists.
func (r *Runner) YouTubePlaylists(ctx context.Context, cmd *cli.Command) error {
	source, err := r.sourceClient(ctx)
	if err != nil {
		return err
	}

	playlists, err := source.ListPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list YouTube playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}
	if len(playlists) == 0 {
		return r.writePlain("No YouTube playlists found.\n")
	}

	rows := make([][]string, len(playlists))
	for i, p := range playlists {
		rows[i] = []string{strconv.Itoa(i + 1), p.Title, p.ID}
	}
	return r.writePlain("%s\n", renderTable([]string{"#", "Title", "ID"}, rows, 0))
}

// SpotifyPlaylists prints the current user's Spotify playlists, optionally limited to writable ones.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	dest, err := r.destinationClient(ctx)
	if err != nil {
		return err
	}

	userID, err := dest.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	playlists, err := dest.ListPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list Spotify playlists: %w", err)
	}
	if cmd.Bool("writable") {
		playlists = tasks.EligiblePlaylists(playlists, userID)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}
	if len(playlists) == 0 {
		return r.writePlain("No Spotify playlists found.\n")
	}

	return r.writePlain("%s\n", spotifyPlaylistTable(playlists, userID))
}

func spotifyPlaylistTable(playlists []models.DestinationPlaylist, userID string) string {
	rows := make([][]string, len(playlists))
	for i, p := range playlists {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			p.Ref.Title,
			strconv.Itoa(p.TrackCount),
			p.OwnerID,
			yesNo(p.Collaborative),
			yesNo(p.Writable(userID)),
			p.Ref.ID,
		}
	}
	return renderTable([]string{"#", "Name", "Tracks", "Owner", "Collaborative", "Writable", "ID"}, rows, 0, 2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

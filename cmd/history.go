package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/yt2spot/internal/models"
	"github.com/desertthunder/yt2spot/internal/repositories"
	"github.com/urfave/cli/v3"
)

func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List completed transfers, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of transfers to show",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "playlist",
				Usage: "Only show transfers into this Spotify playlist ID",
			},
		},
		Action: r.History,
	}
}

// History prints the transfer journal.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	journal, closeDB, err := r.openJournal()
	if err != nil {
		return err
	}
	defer closeDB()

	records, err := journal.List(ctx, repositories.ListCriteria{
		DestPlaylistID: cmd.String("playlist"),
		Limit:          cmd.Int("limit"),
	})
	if err != nil {
		return fmt.Errorf("failed to list transfers: %w", err)
	}

	if len(records) == 0 {
		return r.writePlain("No transfers recorded yet.\n")
	}
	return r.writePlain("%s\n", historyTable(records))
}

func historyTable(records []*models.TransferRecord) string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			rec.CreatedAt().Local().Format("2006-01-02 15:04"),
			rec.SourceTitle(),
			rec.DestName(),
			rec.Mode().String(),
			strconv.Itoa(rec.ItemsTotal()),
			strconv.Itoa(rec.TracksMatched()),
			strconv.Itoa(rec.TracksTransferred()),
			rec.DestURL(),
		}
	}
	return renderTable(
		[]string{"When", "From", "To", "Mode", "Items", "Matched", "Added", "URL"},
		rows, 4, 5, 6,
	)
}

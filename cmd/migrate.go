package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/desertthunder/yt2spot/internal/tasks"
	"github.com/desertthunder/yt2spot/internal/ui"
	"github.com/urfave/cli/v3"
)

func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Copy the songs of a YouTube playlist into a Spotify playlist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "YouTube playlist ID or title (prompts when omitted)",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record the transfer in the database",
			},
		},
		Action: r.Migrate,
	}
}

// Migrate runs one interactive migration: pick a source playlist, match its items on Spotify, confirm the
// matches, then create or extend a Spotify playlist.
func (r *Runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	if !r.isTerminal() {
		return fmt.Errorf("%w: run yt2spot migrate from a terminal", shared.ErrNotInteractive)
	}

	source, err := r.sourceClient(ctx)
	if err != nil {
		return err
	}
	dest, err := r.destinationClient(ctx)
	if err != nil {
		return err
	}

	logger, closeLog := r.promptLogger()
	defer closeLog()

	opts := []tasks.MigratorOption{
		tasks.WithLogger(logger),
		tasks.WithDescription(r.config.Transfer.Description),
	}
	if !cmd.Bool("no-history") {
		journal, closeDB, err := r.openJournal()
		if err != nil {
			r.logger.Warn("transfer history disabled", "error", err)
		} else {
			defer closeDB()
			opts = append(opts, tasks.WithRecorder(journal))
		}
	}

	migrator := tasks.NewMigrator(source, dest, r.prompter, opts...)
	result, err := migrator.Run(ctx, cmd.String("source"), ui.ProgressPrinter(r.output))
	if err != nil {
		return err
	}

	t := result.Transfer
	r.writePlainln("✓ Transferred %d of %d songs from %q to %q", t.Count, len(result.Matches), result.Source.Title, t.Ref.Title)
	r.writePlain("%s\n", t.URL)

	if result.Record != nil {
		r.logger.Debug("transfer recorded", "id", result.Record.ID())
	}
	return nil
}

// promptLogger returns a logger that writes to the rotating log file so prompts keep the terminal.
func (r *Runner) promptLogger() (*log.Logger, func()) {
	logger, closer, err := shared.NewFileLogger(r.config.Log)
	if err != nil {
		r.logger.Warn("file logging disabled", "error", err)
		return log.New(io.Discard), func() {}
	}

	logger.SetLevel(r.logger.GetLevel())
	return logger, func() { closer.Close() }
}

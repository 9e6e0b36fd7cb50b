package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yt2spot/internal/repositories"
	"github.com/desertthunder/yt2spot/internal/services"
	"github.com/desertthunder/yt2spot/internal/shared"
	"github.com/desertthunder/yt2spot/internal/tasks"
	"github.com/desertthunder/yt2spot/internal/ui"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	source      services.SourceClient
	destination services.DestinationClient
	prompter    tasks.Prompter
	logger      *log.Logger
	output      io.Writer
	isTerminal  func() bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Source and Destination are built from the config on first use when nil.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Source      services.SourceClient
	Destination services.DestinationClient
	Prompter    tasks.Prompter
	Logger      *log.Logger
	Output      io.Writer
	IsTerminal  func() bool
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Prompter == nil {
		opts.Prompter = ui.NewPrompter(os.Stdin, os.Stdout)
	}
	if opts.IsTerminal == nil {
		opts.IsTerminal = stdioIsTerminal
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		source:      opts.Source,
		destination: opts.Destination,
		prompter:    opts.Prompter,
		logger:      opts.Logger,
		output:      opts.Output,
		isTerminal:  opts.IsTerminal,
	}
}

// Init loads the configuration named by --config and applies the log level. Runs before every command.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")

	config, err := shared.LoadOrDefault(r.configPath)
	if err != nil {
		return ctx, err
	}
	r.config = config

	level := config.Log.Level
	if cmd.Bool("verbose") {
		level = "debug"
	}
	if err := shared.SetLogLevel(r.logger, level); err != nil {
		return ctx, err
	}

	r.logger.Debug("configuration loaded", "path", r.configPath)
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, migrateCommand, playlistsCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// sourceClient returns the YouTube client, authenticated when a token has been saved.
func (r *Runner) sourceClient(ctx context.Context) (services.SourceClient, error) {
	if r.source != nil {
		return r.source, nil
	}

	yt, err := services.NewYouTubeService(r.config.Credentials.YouTube)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	if token := r.config.Credentials.YouTube.Token(); token != nil {
		if err := yt.Authenticate(ctx, token); err != nil {
			return nil, fmt.Errorf("failed to authenticate with YouTube: %w", err)
		}
	} else {
		r.logger.Debug("no YouTube token saved, using api key")
	}

	r.source = yt
	return yt, nil
}

// destinationClient returns an authenticated Spotify client.
func (r *Runner) destinationClient(ctx context.Context) (services.DestinationClient, error) {
	if r.destination != nil {
		return r.destination, nil
	}

	creds := r.config.Credentials.Spotify
	sp, err := services.NewSpotifyService(creds,
		services.WithSearchRate(r.config.Transfer.SearchRate),
		services.WithPublicPlaylists(r.config.Transfer.Public),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spotify service: %w", err)
	}

	token := creds.Token()
	if token == nil {
		return nil, fmt.Errorf("%w: run 'yt2spot auth spotify' first", shared.ErrNotAuthenticated)
	}
	if err := sp.Authenticate(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to authenticate with Spotify: %w", err)
	}

	r.destination = sp
	return sp, nil
}

// openJournal opens the transfer journal. The returned func closes the database.
func (r *Runner) openJournal() (*repositories.TransferRepository, func(), error) {
	if r.config.Database.Path == "" {
		return nil, nil, fmt.Errorf("%w: database.path is empty", shared.ErrMissingConfig)
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, nil, err
	}

	return repositories.NewTransferRepository(db), func() { db.Close() }, nil
}

// saveTokens stores token in creds and writes the config back to disk. With no config path the
// update stays in memory.
func (r *Runner) saveTokens(service string, creds *shared.OAuthCredentials, token *oauth2.Token) error {
	if r.config == nil {
		return fmt.Errorf("%w: config is nil", shared.ErrMissingConfig)
	}

	if err := creds.Update(token); err != nil {
		return fmt.Errorf("failed to update %s configuration: %w", service, err)
	}

	if r.configPath == "" {
		return nil
	}

	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func stdioIsTerminal() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		fd := f.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return false
		}
	}
	return true
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

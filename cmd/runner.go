package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvk/internal/collection"
	"github.com/desertthunder/mvk/internal/intake"
	"github.com/desertthunder/mvk/internal/services"
	"github.com/desertthunder/mvk/internal/shared"
	"github.com/desertthunder/mvk/internal/storage"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Storage and the movie database are opened lazily so that commands which never touch them (setup, help) do not
// fail on a missing database file or credential.
type Runner struct {
	config      *shared.Config
	configPath  string
	backend     storage.Backend
	ownsBackend bool
	library     *collection.Library
	movies      services.MovieDatabase
	tmdb        *services.TMDBService
	flow        *intake.Flow
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is loaded from the --config flag (plus .env and environment overrides) before any command runs.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Backend    storage.Backend
	MovieDB    services.MovieDatabase
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		backend:    opts.Backend,
		movies:     opts.MovieDB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the logger used by subsequently opened components.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// configure loads configuration before any command runs.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		if path := cmd.String("config"); path != "" {
			r.configPath = path
		}
		config, err := loadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		if err := config.ApplyEnv(".env"); err != nil {
			return ctx, err
		}
		r.config = config
	}

	level, err := shared.ParseLogLevel(r.config.Logging.Level)
	if err != nil {
		r.logger.Warn("invalid log level, using info", "level", r.config.Logging.Level)
	}
	shared.SetLogLevel(r.logger, level)

	if r.movies == nil && r.tmdb == nil && r.config.TMDB.HasCredentials() {
		svc, err := services.NewTMDBService(services.TMDBOpts{
			APIKey:      r.config.TMDB.APIKey,
			AccessToken: r.config.TMDB.AccessToken,
			BaseURL:     r.config.TMDB.BaseURL,
			Language:    r.config.TMDB.Language,
			HTTPClient:  r.httpClient,
		})
		if err != nil {
			return ctx, err
		}
		r.tmdb = svc
	}

	return ctx, nil
}

// loadConfig reads path when it exists and falls back to defaults otherwise.
func loadConfig(path string) (*shared.Config, error) {
	if path == "" {
		return shared.DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return shared.DefaultConfig(), nil
	}
	return shared.LoadConfig(path)
}

// movieDB returns the configured movie database, or nil when search is unavailable.
func (r *Runner) movieDB() services.MovieDatabase {
	if r.movies != nil {
		return r.movies
	}
	if r.tmdb != nil {
		return r.tmdb
	}
	return nil
}

// openLibrary opens storage and loads the collection on first use.
func (r *Runner) openLibrary() (*collection.Library, error) {
	if r.library != nil {
		return r.library, nil
	}
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}

	if r.backend == nil {
		backend, err := storage.Open(r.config.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		r.backend = backend
		r.ownsBackend = true
		r.logger.Debug("storage opened", "driver", r.config.Storage.Driver, "path", r.config.Storage.Path)
	}

	r.library = collection.OpenLibrary(collection.NewStore(r.backend, r.config.Storage.Key, r.logger))
	return r.library, nil
}

// intakeFlow returns the movie intake flow wired to the collection.
func (r *Runner) intakeFlow() (*intake.Flow, error) {
	if r.flow != nil {
		return r.flow, nil
	}

	lib, err := r.openLibrary()
	if err != nil {
		return nil, err
	}

	r.flow = intake.NewFlow(r.movieDB(), lib.AddMovie, r.logger)
	return r.flow, nil
}

// Close releases storage opened by the runner.
func (r *Runner) Close() error {
	if r.backend == nil || !r.ownsBackend {
		return nil
	}
	err := r.backend.Close()
	r.backend = nil
	r.library = nil
	r.flow = nil
	return err
}

// isTerminal reports whether output is an interactive terminal.
func (r *Runner) isTerminal() bool {
	f, ok := r.output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, listCommand, addCommand, searchCommand, openCommand, exportCommand, importCommand, apiCommand,
		tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

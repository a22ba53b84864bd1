package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/mvk/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates a config file when none exists and initializes the configured storage.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = "config.toml"
	}

	r.writePlainHeader("mvk setup")

	if _, err := os.Stat(path); err == nil {
		r.writePlain("• Using existing config: %s\n", path)
	} else {
		if err := shared.CreateConfigFile(path); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrMissingConfig, err)
		}
		r.writePlain("✓ Created config: %s\n", path)

		config, err := shared.LoadConfig(path)
		if err != nil {
			return err
		}
		if err := config.ApplyEnv(".env"); err != nil {
			return err
		}
		r.config = config
	}

	lib, err := r.openLibrary()
	if err != nil {
		return err
	}

	r.writePlain("✓ Storage ready: %s (%s)\n", r.config.Storage.Path, r.config.Storage.Driver)
	r.writePlain("  Movies: %d\n", lib.Len())

	if r.config.TMDB.HasCredentials() {
		r.writePlain("✓ Movie database credentials configured\n")
	} else {
		r.writePlainln("Search is disabled until tmdb.api_key (or TMDB_API_KEY) is set.")
	}

	return nil
}

// submodule cmd contains command definitions
package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

// newApp builds the root command. Global flags are visible to every subcommand.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "mvk",
		Usage:   "Keep track of the movies you have watched",
		Version: version,
		Writer:  r.output,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before:   r.configure,
		After:    func(ctx context.Context, cmd *cli.Command) error { return r.Close() },
		Commands: r.register(),
	}
}

// setupCommand creates the config file and initializes storage
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create a config file and initialize the movie database",
		Action: r.Setup,
	}
}

// listCommand prints the collection
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the movies in the collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Fuzzy filter on title and director",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the stored record as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.List,
	}
}

// addCommand adds a manually entered movie
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a movie by hand",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "Movie title",
			},
			&cli.StringFlag{
				Name:    "director",
				Aliases: []string{"d"},
				Usage:   "Director name",
			},
			&cli.StringFlag{
				Name:    "year",
				Aliases: []string{"y"},
				Usage:   "Release year",
			},
			&cli.IntFlag{
				Name:    "rating",
				Aliases: []string{"r"},
				Usage:   "Rating from 0 to 5",
			},
		},
		Action: r.Add,
	}
}

// searchCommand queries the movie database
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the movie database and optionally add a result",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "pick",
				Aliases: []string{"p"},
				Usage:   "Add the n-th result (1-based) to the collection",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Include movies already in the collection",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// openCommand opens a movie's page in the browser
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Open a collected movie on themoviedb.org",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "key"},
		},
		Action: r.Open,
	}
}

// exportCommand writes the collection to a file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (table, csv, md, txt, json)",
				Value: "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (\"-\" for stdout)",
			},
		},
		Action: r.Export,
	}
}

// importCommand adds many titles from a file
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import titles from a text, CSV or JSON file",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Movie database requests per second (defaults to import.rate_limit)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Concurrent lookups",
				Value:   4,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Resolve titles without adding them",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the import summary as JSON",
			},
		},
		Action: r.Import,
	}
}

// apiCommand issues raw movie database requests
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Raw movie database requests",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "GET a path relative to the API base URL",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse and add movies interactively",
		Action: r.TUI,
	}
}

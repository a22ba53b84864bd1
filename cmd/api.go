package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mvk/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the movie database and prints the response
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if r.tmdb == nil {
		return fmt.Errorf("%w: set tmdb.api_key or TMDB_API_KEY", shared.ErrMissingCredentials)
	}

	r.logger.Debug("GET request", "path", path)

	resp, err := r.tmdb.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

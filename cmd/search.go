package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytq/internal/services"
	"github.com/desertthunder/ytq/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search finds songs on YouTube, directly when credentials are configured and through the server otherwise.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	var searcher services.Searcher = r.api
	if r.searcher != nil && !cmd.Bool("remote") {
		searcher = r.searcher
	}

	r.logger.Info("searching", "query", query, "provider", searcher.Name())

	result, err := searcher.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, false)
	}

	r.writePlainHeader(fmt.Sprintf("Results for '%s' via %s", result.Query, searcher.Name()))
	if len(result.Tracks) == 0 {
		return r.writePlain("No results.\n")
	}
	for i, track := range result.Tracks {
		line := track.Title
		if track.Artist != "" {
			line = track.Artist + " - " + line
		}
		if track.VideoID != "" {
			line += " (" + track.VideoID + ")"
		}
		r.writePlain("%d. %s\n", i+1, line)
	}
	return nil
}

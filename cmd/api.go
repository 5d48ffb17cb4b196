package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/ytq/internal/formatter"
	"github.com/desertthunder/ytq/internal/models"
	"github.com/desertthunder/ytq/internal/services"
	"github.com/desertthunder/ytq/internal/shared"
	"github.com/urfave/cli/v3"
)

// QueueList prints the server's queue in the requested format, or writes it to --output.
func (r *Runner) QueueList(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")

	records, err := r.api.Queue(ctx)
	if err != nil {
		return err
	}
	r.logger.Debug("fetched queue", "length", len(records))

	export := formatter.FromRecords("Playback Queue", records)

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(format, export, path); err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %d records to %s\n", len(records), path)
	}

	data, err := formatter.Render(format, export)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// QueueAdd appends one record, either raw JSON from --data or a track assembled from --title and friends.
func (r *Runner) QueueAdd(ctx context.Context, cmd *cli.Command) error {
	record, err := recordFromFlags(cmd)
	if err != nil {
		return err
	}

	if err := r.api.Enqueue(ctx, record); err != nil {
		return err
	}

	r.logger.Info("record enqueued", "bytes", len(record))
	return r.writePlain("✓ Song added successfully!\n")
}

// QueueMove moves the record at <from> so it ends up at <to>.
func (r *Runner) QueueMove(ctx context.Context, cmd *cli.Command) error {
	from, to := cmd.IntArg("from"), cmd.IntArg("to")
	if from < 0 || to < 0 {
		return fmt.Errorf("%w: <from> and <to> are required", shared.ErrMissingArgument)
	}

	if err := r.api.Move(ctx, from, to); err != nil {
		return err
	}
	return r.writePlain("✓ Queue updated\n")
}

// APIGet makes a direct GET request to the server
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp)
}

// APIPost makes a direct POST request to the server
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}
	if !json.Valid([]byte(data)) {
		return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
	}

	r.logger.Info("POST request", "path", path)

	resp, err := r.api.Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp)
}

func (r *Runner) writeResponse(resp *services.APIResponse) error {
	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(resp.Body)))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}

	if _, err := r.output.Write(resp.Body); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	_, err := r.output.Write([]byte("\n"))
	return err
}

func recordFromFlags(cmd *cli.Command) (json.RawMessage, error) {
	if data := strings.TrimSpace(cmd.String("data")); data != "" {
		if !strings.HasPrefix(data, "{") || !json.Valid([]byte(data)) {
			return nil, fmt.Errorf("%w: --data must be a JSON object", shared.ErrInvalidInput)
		}
		return json.RawMessage(data), nil
	}

	track := models.Track{
		VideoID: cmd.String("video-id"),
		Title:   cmd.String("title"),
		Artist:  cmd.String("artist"),
	}
	if err := track.Validate(); err != nil {
		return nil, fmt.Errorf("%w: pass --data or --title", shared.ErrMissingArgument)
	}
	return track.Record()
}

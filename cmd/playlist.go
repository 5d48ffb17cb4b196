package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/ytq/internal/models"
	"github.com/desertthunder/ytq/internal/shared"
	"github.com/desertthunder/ytq/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate stores an empty playlist for a user.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	owner, err := r.lookupUser(cmd.String("user"))
	if err != nil {
		return err
	}

	playlists, err := r.playlists()
	if err != nil {
		return err
	}

	playlist := models.NewPlaylist(owner.ID(), name, cmd.String("cover"))
	if err := playlists.Create(playlist); err != nil {
		return err
	}

	r.logger.Info("playlist created", "id", playlist.ID(), "owner", owner.Username())
	r.writePlain("✓ Playlist '%s' created successfully! (ID: %s)\n", playlist.Name(), playlist.ID())
	return nil
}

// PlaylistList prints stored playlists, filtered to one owner when --user is given.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	found, err := r.listPlaylists(cmd.String("user"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]models.PlaylistView, len(found))
		for i, p := range found {
			views[i] = p.View()
		}
		return r.writeJSON(views, true)
	}

	if len(found) == 0 {
		return r.writePlain("No playlists found.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(found)))
	for i, p := range found {
		r.writePlain("%d. %s (%d songs)\n", i+1, p.Name(), len(p.Songs()))
		r.writePlain("   ID: %s\n", p.ID())
	}
	return nil
}

// PlaylistImport loads playlists from a JSON file for a user.
func (r *Runner) PlaylistImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: playlist file path", shared.ErrMissingArgument)
	}

	owner, err := r.lookupUser(cmd.String("user"))
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open playlist file: %w", err)
	}
	defer f.Close()

	specs, err := tasks.ReadPlaylistSpecs(f)
	if err != nil {
		return err
	}

	playlists, err := r.playlists()
	if err != nil {
		return err
	}

	r.logger.Info("importing playlists", "file", path, "count", len(specs), "owner", owner.Username())

	imported, err := runWithProgress(r, func(progress chan<- tasks.ProgressUpdate) (*tasks.ImportResult, error) {
		return tasks.NewPlaylistEngine(playlists).Import(ctx, progress, owner.ID(), specs)
	})
	if err != nil {
		return err
	}

	r.writePlainln("✓ Imported %d of %d playlists (%d songs)", len(imported.Imported), imported.Total, imported.SongCount)
	for _, failure := range imported.Failed {
		r.writePlain("  ✗ #%d %q: %v\n", failure.Index+1, failure.Name, failure.Error)
	}
	return nil
}

// PlaylistExport writes stored playlists to files with a worker pool.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.StringSlice("id")
	if len(ids) == 0 {
		found, err := r.listPlaylists(cmd.String("user"))
		if err != nil {
			return err
		}
		for _, p := range found {
			ids = append(ids, p.ID())
		}
	}
	if len(ids) == 0 {
		return r.writePlain("No playlists to export.\n")
	}

	playlists, err := r.playlists()
	if err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output-dir"),
		NumWorkers: cmd.Int("workers"),
	}

	exported, err := runWithProgress(r, func(progress chan<- tasks.ProgressUpdate) (*tasks.BulkExportResult, error) {
		return tasks.NewPlaylistEngine(playlists).BulkExport(ctx, progress, ids, opts)
	})
	if err != nil {
		return err
	}

	r.writePlainln("✓ Exported %d of %d playlists to %s", exported.SuccessfulExports, exported.TotalPlaylists, exported.OutputDirectory)
	if exported.FailedExports > 0 {
		r.writePlain("  %d failed, see %s\n", exported.FailedExports, exported.ManifestPath)
	}
	return nil
}

// PlaylistEnqueue asks the server to append every song of a stored playlist to its queue.
func (r *Runner) PlaylistEnqueue(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	added, err := r.api.EnqueuePlaylist(ctx, id)
	if err != nil {
		return err
	}

	r.logger.Info("playlist enqueued", "id", id, "added", added)
	return r.writePlain("✓ Playlist queued (%d songs added)\n", added)
}

func (r *Runner) listPlaylists(username string) ([]*models.Playlist, error) {
	criteria := map[string]any{}
	if strings.TrimSpace(username) != "" {
		owner, err := r.lookupUser(username)
		if err != nil {
			return nil, err
		}
		criteria["user_id"] = owner.ID()
	}

	playlists, err := r.playlists()
	if err != nil {
		return nil, err
	}
	return playlists.List(criteria)
}

// runWithProgress runs job while printing its progress updates, and returns the job's result once both finish.
func runWithProgress[T any](r *Runner, job func(chan<- tasks.ProgressUpdate) (T, error)) (T, error) {
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug("progress", "phase", update.Phase, "step", update.Step, "total", update.Total)
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := job(progress)
	close(progress)
	<-done
	return result, err
}

package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/desertthunder/ytq/internal/models"
	"github.com/desertthunder/ytq/internal/shared"
)

// PlaylistStore is the subset of the playlist repository the engine needs.
type PlaylistStore interface {
	Create(playlist *models.Playlist) error
	Get(id string) (*models.Playlist, error)
	List(criteria map[string]any) ([]*models.Playlist, error)
}

// PlaylistSpec is one entry of a playlist import document.
type PlaylistSpec struct {
	Name     string         `json:"name"`
	CoverArt string         `json:"cover_art"`
	Songs    []models.Track `json:"songs"`
}

// ImportResult summarizes an [PlaylistEngine.Import] run.
type ImportResult struct {
	Total     int
	Imported  []*models.Playlist
	Failed    []ImportFailure
	SongCount int
}

// ImportFailure records a spec that could not be stored.
type ImportFailure struct {
	Index int
	Name  string
	Error error
}

// PlaylistEngine runs import and export jobs against a [PlaylistStore].
type PlaylistEngine struct {
	store PlaylistStore
}

// NewPlaylistEngine creates a new PlaylistEngine backed by store.
func NewPlaylistEngine(store PlaylistStore) *PlaylistEngine {
	return &PlaylistEngine{store: store}
}

// ReadPlaylistSpecs decodes a JSON array of [PlaylistSpec].
func ReadPlaylistSpecs(r io.Reader) ([]PlaylistSpec, error) {
	var specs []PlaylistSpec
	if err := json.NewDecoder(r).Decode(&specs); err != nil {
		return nil, fmt.Errorf("%w: playlist file must be a JSON array: %v", shared.ErrInvalidInput, err)
	}
	return specs, nil
}

// Import stores every spec as a playlist owned by userID.
//
// A spec that fails validation or storage is recorded in [ImportResult.Failed] and the run continues.
// Only a canceled context aborts the run early.
func (e *PlaylistEngine) Import(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	userID string,
	specs []PlaylistSpec,
) (*ImportResult, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: playlist store not initialized", shared.ErrServiceUnavailable)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: owner is required", shared.ErrMissingArgument)
	}

	result := &ImportResult{Total: len(specs)}
	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		playlist := models.NewPlaylist(userID, spec.Name, spec.CoverArt)
		playlist.SetSongs(spec.Songs)

		if err := e.importOne(playlist); err != nil {
			result.Failed = append(result.Failed, ImportFailure{Index: i, Name: spec.Name, Error: err})
			e.sendProgress(progress, importFailedUpdate(i+1, len(specs), spec.Name, err))
			continue
		}

		result.Imported = append(result.Imported, playlist)
		result.SongCount += len(spec.Songs)
		e.sendProgress(progress, importedPlaylistUpdate(i+1, len(specs), playlist.Name(), len(spec.Songs)))
	}

	return result, nil
}

func (e *PlaylistEngine) importOne(playlist *models.Playlist) error {
	for i, song := range playlist.Songs() {
		if err := song.Validate(); err != nil {
			return fmt.Errorf("song %d: %w", i, err)
		}
	}
	return e.store.Create(playlist)
}

// sendProgress sends a progress update through the channel without blocking.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytq/internal/models"
	"github.com/desertthunder/ytq/internal/shared"
)

const playlistColumns = `id, sequence, user_id, name, cover_art, created_at, updated_at, deleted_at`

// PlaylistRepository implements models.Repository[*models.Playlist] along with ordered track storage.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist into the database with generated ID and sequence.
// Songs already set on the playlist are stored in order within the same transaction.
func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return err
	}
	songs := playlist.Songs()
	if err := validateTracks(songs); err != nil {
		return err
	}

	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := shared.GenerateID()
	query := `
		INSERT INTO playlists (id, sequence, user_id, name, cover_art, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.Exec(query,
		id,
		sequence,
		playlist.UserID(),
		playlist.Name(),
		playlist.CoverArt(),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	if err := addTracksTx(tx, id, 0, songs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit playlist: %w", err)
	}

	playlist.SetID(id)
	playlist.SetSequence(sequence)
	return nil
}

// Get retrieves a playlist with its songs by ID, excluding soft-deleted playlists
func (r *PlaylistRepository) Get(id string) (*models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE id = ? AND deleted_at IS NULL`

	playlist, err := r.scanPlaylist(r.db.QueryRow(query, id), id)
	if err != nil {
		return nil, err
	}

	songs, err := r.Tracks(id)
	if err != nil {
		return nil, err
	}
	playlist.SetSongs(songs)

	return playlist, nil
}

// Update modifies an existing playlist's metadata in the database
func (r *PlaylistRepository) Update(playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return err
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	query := `
		UPDATE playlists
		SET name = ?, cover_art = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, playlist.Name(), playlist.CoverArt(), now, playlist.ID())
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	return checkAffected(result, shared.ErrPlaylistNotFound, playlist.ID())
}

// Delete soft-deletes a playlist by ID
func (r *PlaylistRepository) Delete(id string) error {
	query := `
		UPDATE playlists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	return checkAffected(result, shared.ErrPlaylistNotFound, id)
}

// List retrieves all playlists matching the given criteria with their songs, excluding soft-deleted playlists.
//
// Supported criteria: "user_id" (string).
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE deleted_at IS NULL`
	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}

	playlists := []*models.Playlist{}
	for rows.Next() {
		playlist, err := r.scanPlaylist(rows, "")
		if err != nil {
			rows.Close()
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	for _, playlist := range playlists {
		songs, err := r.Tracks(playlist.ID())
		if err != nil {
			return nil, err
		}
		playlist.SetSongs(songs)
	}

	return playlists, nil
}

// AddTracks appends tracks to the end of a playlist in a single transaction.
func (r *PlaylistRepository) AddTracks(playlistID string, tracks ...models.Track) error {
	if err := validateTracks(tracks); err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(*) FROM playlists WHERE id = ? AND deleted_at IS NULL`, playlistID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up playlist: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	var next int
	err = tx.QueryRow(`SELECT COALESCE(MAX(position) + 1, 0) FROM playlist_tracks WHERE playlist_id = ?`, playlistID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to compute track position: %w", err)
	}

	if err := addTracksTx(tx, playlistID, next, tracks); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tracks: %w", err)
	}

	return nil
}

func validateTracks(tracks []models.Track) error {
	for i, track := range tracks {
		if err := track.Validate(); err != nil {
			return fmt.Errorf("song %d: %w", i, err)
		}
	}
	return nil
}

// addTracksTx inserts tracks starting at position start.
func addTracksTx(tx *sql.Tx, playlistID string, start int, tracks []models.Track) error {
	query := `
		INSERT INTO playlist_tracks (id, playlist_id, position, video_id, title, artist, thumbnail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	for i, track := range tracks {
		_, err := tx.Exec(query,
			shared.GenerateID(), playlistID, start+i, track.VideoID, track.Title, track.Artist, track.Thumbnail, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert track: %w", err)
		}
	}
	return nil
}

// Tracks returns the songs of a playlist ordered by position.
func (r *PlaylistRepository) Tracks(playlistID string) ([]models.Track, error) {
	query := `
		SELECT video_id, title, artist, thumbnail
		FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist tracks: %w", err)
	}
	defer rows.Close()

	tracks := []models.Track{}
	for rows.Next() {
		var track models.Track
		if err := rows.Scan(&track.VideoID, &track.Title, &track.Artist, &track.Thumbnail); err != nil {
			return nil, fmt.Errorf("failed to scan playlist track: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

func (r *PlaylistRepository) scanPlaylist(row scanner, lookup string) (*models.Playlist, error) {
	var (
		id        string
		sequence  int
		userID    string
		name      string
		coverArt  string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &userID, &name, &coverArt, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, lookup)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	playlist := models.NewPlaylist(userID, name, coverArt)
	playlist.SetID(id)
	playlist.SetSequence(sequence)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		playlist.SetDeletedAt(&deletedAt.Time)
	}

	return playlist, nil
}

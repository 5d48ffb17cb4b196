package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytq/internal/models"
)

// PlaylistStore is the persistence the playlist endpoints need.
type PlaylistStore interface {
	Create(playlist *models.Playlist) error
	Get(id string) (*models.Playlist, error)
	List(criteria map[string]any) ([]*models.Playlist, error)
}

// PlaylistHandlers serves playlist endpoints.
type PlaylistHandlers struct {
	store  PlaylistStore
	queue  *PlaybackQueue
	notify func()
	logger *log.Logger
}

// NewPlaylistHandlers creates playlist handlers that enqueue into q.
func NewPlaylistHandlers(store PlaylistStore, q *PlaybackQueue, notify func(), logger *log.Logger) *PlaylistHandlers {
	if notify == nil {
		notify = func() {}
	}
	return &PlaylistHandlers{store: store, queue: q, notify: notify, logger: logger}
}

// List handles GET /api/playlists. Authenticated users see their own playlists, anonymous callers see all.
func (h *PlaylistHandlers) List(w http.ResponseWriter, r *http.Request) {
	criteria := map[string]any{}
	if user, ok := UserFromContext(r.Context()); ok {
		criteria["user_id"] = user.ID()
	}

	playlists, err := h.store.List(criteria)
	if err != nil {
		h.logger.Error("failed to list playlists", "error", err)
		writeError(w, statusFor(err), "failed to list playlists")
		return
	}

	views := make([]models.PlaylistView, 0, len(playlists))
	for _, p := range playlists {
		views = append(views, p.View())
	}
	writeJSON(w, http.StatusOK, views)
}

type createPlaylistRequest struct {
	Name     string         `json:"name"`
	CoverArt string         `json:"coverArt"`
	Songs    []models.Track `json:"songs"`
}

type createPlaylistResponse struct {
	Message  string              `json:"message"`
	Playlist models.PlaylistView `json:"playlist"`
}

// Create handles POST /api/playlists/create for the authenticated user.
func (h *PlaylistHandlers) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Playlist name is required")
		return
	}

	playlist := models.NewPlaylist(user.ID(), req.Name, req.CoverArt)
	playlist.SetSongs(req.Songs)

	if err := h.store.Create(playlist); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("failed to create playlist", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, createPlaylistResponse{
		Message:  fmt.Sprintf("Playlist '%s' created successfully!", playlist.Name()),
		Playlist: playlist.View(),
	})
}

type enqueueResponse struct {
	Message string `json:"message"`
	Added   int    `json:"added"`
}

// Enqueue handles POST /api/playlists/{id}/enqueue, appending every song of the playlist to the queue.
//
// The songs are added together or not at all.
func (h *PlaylistHandlers) Enqueue(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), "playlist not found")
		return
	}

	songs := playlist.Songs()
	records := make([]json.RawMessage, 0, len(songs))
	for _, song := range songs {
		record, err := song.Record()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		records = append(records, record)
	}

	if !h.queue.OfferAll(records...) {
		writeError(w, http.StatusConflict, "queue is full")
		return
	}

	if len(records) > 0 {
		h.notify()
	}
	writeJSON(w, http.StatusOK, enqueueResponse{Message: "Playlist queued", Added: len(records)})
}

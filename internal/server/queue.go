package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytq/internal/queue"
)

// PlaybackQueue is the shared queue of opaque song records served over HTTP.
type PlaybackQueue = queue.Queue[json.RawMessage]

// QueueHandlers serves the playback queue endpoints.
type QueueHandlers struct {
	queue  *PlaybackQueue
	notify func()
	logger *log.Logger
}

// NewQueueHandlers creates queue handlers. notify runs after every successful mutation.
func NewQueueHandlers(q *PlaybackQueue, notify func(), logger *log.Logger) *QueueHandlers {
	if notify == nil {
		notify = func() {}
	}
	return &QueueHandlers{queue: q, notify: notify, logger: logger}
}

// List handles GET /api/queue, returning every record in order exactly as stored.
func (h *QueueHandlers) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.queue.Snapshot())
}

// Add handles POST /api/queue/add. The body must be a single JSON object.
func (h *QueueHandlers) Add(w http.ResponseWriter, r *http.Request) {
	record, err := readRecord(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.queue.Offer(record) {
		writeError(w, http.StatusConflict, "queue is full")
		return
	}

	h.logger.Debug("song queued", "length", h.queue.Len())
	h.notify()
	writeMessage(w, http.StatusCreated, "Song added successfully!")
}

type moveRequest struct {
	FromIndex *int `json:"fromIndex"`
	ToIndex   *int `json:"toIndex"`
}

// Move handles POST /api/queue/move with {"fromIndex": int, "toIndex": int}.
//
// Indices outside the queue are accepted and leave it unchanged.
func (h *QueueHandlers) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil || req.FromIndex == nil || req.ToIndex == nil {
		writeError(w, http.StatusBadRequest, "fromIndex and toIndex must be integers")
		return
	}

	h.queue.Move(*req.FromIndex, *req.ToIndex)

	h.logger.Debug("queue reordered", "from", *req.FromIndex, "to", *req.ToIndex)
	h.notify()
	writeMessage(w, http.StatusOK, "Queue updated")
}

// readRecord reads the request body and returns it compacted when it is exactly one JSON object.
func readRecord(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.New("failed to read request body")
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' || !json.Valid(data) {
		return nil, errors.New("request body must be a JSON object")
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return json.RawMessage(buf.Bytes()), nil
}

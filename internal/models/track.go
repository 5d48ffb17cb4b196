package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/ytq/internal/shared"
)

// Track is a song reference in the record shape the playback queue carries.
type Track struct {
	VideoID   string `json:"videoId,omitempty"`
	Title     string `json:"title"`
	Artist    string `json:"artist,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Validate requires a title.
func (t Track) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: track title is required", shared.ErrValidation)
	}
	return nil
}

// Record encodes t as an opaque queue record.
func (t Track) Record() (json.RawMessage, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode track: %w", err)
	}
	return json.RawMessage(data), nil
}

// TrackFromRecord decodes the known fields of a queue record. Unknown keys are ignored.
func TrackFromRecord(record json.RawMessage) (Track, error) {
	var t Track
	if err := json.Unmarshal(record, &t); err != nil {
		return Track{}, fmt.Errorf("%w: record is not a track: %v", shared.ErrInvalidInput, err)
	}
	return t, nil
}

// SearchResult is a page of tracks returned by a search provider.
type SearchResult struct {
	Query  string  `json:"query"`
	Tracks []Track `json:"tracks"`
}

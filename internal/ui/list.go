package ui

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ytq/internal/models"
)

var (
	_ list.Item = queueItem{}
	_ list.Item = resultItem{}
)

// queueItem wraps one queue record to implement [list.Item].
type queueItem struct {
	position int
	track    models.Track
}

func newQueueItem(position int, record json.RawMessage) queueItem {
	track, err := models.TrackFromRecord(record)
	if err != nil || track.Title == "" {
		track.Title = string(record)
	}
	return queueItem{position: position, track: track}
}

func (i queueItem) FilterValue() string { return i.track.Title }
func (i queueItem) Title() string       { return fmt.Sprintf("%d. %s", i.position+1, i.track.Title) }
func (i queueItem) Description() string {
	if i.track.Artist == "" {
		return i.track.VideoID
	}
	return i.track.Artist
}

// resultItem wraps a search result [models.Track] to implement [list.Item].
type resultItem struct {
	track models.Track
}

func (i resultItem) FilterValue() string { return i.track.Title }
func (i resultItem) Title() string       { return i.track.Title }
func (i resultItem) Description() string { return i.track.Artist }

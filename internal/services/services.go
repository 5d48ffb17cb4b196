// package services defines interface Searcher and the HTTP clients used by the server, CLI and TUI
//
// YouTube Data API (search), ytq server (queue)
package services

import (
	"context"
	"encoding/json"

	"github.com/desertthunder/ytq/internal/models"
)

// Searcher finds tracks for a free-text query.
type Searcher interface {
	// Search returns matching tracks. An empty query yields an empty result without contacting the provider.
	Search(ctx context.Context, query string) (*models.SearchResult, error)

	// Name returns the name of the provider (e.g., "YouTube")
	Name() string
}

// QueueClient reads and reorders a remote playback queue.
type QueueClient interface {
	Queue(ctx context.Context) ([]json.RawMessage, error)
	Enqueue(ctx context.Context, record json.RawMessage) error
	Move(ctx context.Context, from, to int) error
}

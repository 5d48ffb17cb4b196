package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytq/internal/services"
)

// SearchHandler serves GET /api/search?query=...
type SearchHandler struct {
	searcher services.Searcher
	logger   *log.Logger
}

// NewSearchHandler creates a search handler. A nil searcher answers 503.
func NewSearchHandler(searcher services.Searcher, logger *log.Logger) *SearchHandler {
	return &SearchHandler{searcher: searcher, logger: logger}
}

// ServeHTTP returns the matching tracks as a JSON array.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		writeError(w, http.StatusServiceUnavailable, "search is not configured")
		return
	}

	result, err := h.searcher.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.logger.Warn("search failed", "provider", h.searcher.Name(), "error", err)
		writeError(w, statusFor(err), "search failed")
		return
	}

	writeJSON(w, http.StatusOK, result.Tracks)
}

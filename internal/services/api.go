// API service for talking to a running ytq server
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/ytq/internal/models"
	"github.com/desertthunder/ytq/internal/shared"
)

const defaultAPIBaseURL string = "http://localhost:3000"

// APIService makes HTTP requests to a ytq server and implements [QueueClient] and [Searcher].
type APIService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPIService creates a new API client for the ytq server at baseURL.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// SetAPIKey sets the key sent as a bearer token on every request.
func (a *APIService) SetAPIKey(key string) {
	a.apiKey = key
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status code is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Message extracts the "message" or "error" field from a JSON body.
func (r *APIResponse) Message() string {
	if obj, ok := r.JSONData.(map[string]any); ok {
		for _, key := range []string{"error", "message"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return strings.TrimSpace(string(r.Body))
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, path, data)
}

// Name returns the service name.
func (a *APIService) Name() string {
	return "ytq"
}

// Search asks the server's search endpoint for tracks matching query.
func (a *APIService) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	query = strings.TrimSpace(query)
	result := &models.SearchResult{Query: query, Tracks: []models.Track{}}
	if query == "" {
		return result, nil
	}

	resp, err := a.Get(ctx, "/api/search?query="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resp.Body, &result.Tracks); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return result, nil
}

// Queue fetches the current queue records in order.
func (a *APIService) Queue(ctx context.Context) ([]json.RawMessage, error) {
	resp, err := a.Get(ctx, "/api/queue")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	records := []json.RawMessage{}
	if err := json.Unmarshal(resp.Body, &records); err != nil {
		return nil, fmt.Errorf("failed to decode queue: %w", err)
	}
	return records, nil
}

// Enqueue appends record to the end of the queue.
func (a *APIService) Enqueue(ctx context.Context, record json.RawMessage) error {
	resp, err := a.Post(ctx, "/api/queue/add", record)
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

// Move relocates the record at from to index to.
func (a *APIService) Move(ctx context.Context, from, to int) error {
	body, err := json.Marshal(map[string]int{"fromIndex": from, "toIndex": to})
	if err != nil {
		return fmt.Errorf("failed to encode move: %w", err)
	}

	resp, err := a.Post(ctx, "/api/queue/move", body)
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

// EnqueuePlaylist appends every song of a stored playlist to the queue and returns how many were added.
func (a *APIService) EnqueuePlaylist(ctx context.Context, playlistID string) (int, error) {
	resp, err := a.Post(ctx, "/api/playlists/"+url.PathEscape(playlistID)+"/enqueue", nil)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	if err := checkResponse(resp); err != nil {
		return 0, err
	}

	var body struct {
		Added int `json:"added"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return 0, fmt.Errorf("failed to decode enqueue response: %w", err)
	}
	return body.Added, nil
}

func (a *APIService) do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       raw,
	}

	var jsonData any
	if err := json.Unmarshal(raw, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

func checkResponse(resp *APIResponse) error {
	if resp.OK() {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", shared.ErrNotAuthenticated, resp.Message())
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", shared.ErrQueueFull, resp.Message())
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, resp.Message())
	default:
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, resp.Message())
	}
}

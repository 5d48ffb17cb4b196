// YouTube Data API [Searcher] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/ytq/internal/models"
	"github.com/desertthunder/ytq/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultYTBaseURL     string = "https://www.googleapis.com/youtube/v3"
	defaultMaxResults    int    = 10
	defaultMusicCategory string = "10"
)

// YouTubeThumbnail is one entry of a snippet's thumbnails map.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeSearchItem is a single result of the search.list endpoint.
type YouTubeSearchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string                      `json:"title"`
		ChannelTitle string                      `json:"channelTitle"`
		Thumbnails   map[string]YouTubeThumbnail `json:"thumbnails"`
	} `json:"snippet"`
}

// Track converts the item into a [models.Track], using the channel as artist.
func (i YouTubeSearchItem) Track() models.Track {
	return models.Track{
		VideoID:   i.ID.VideoID,
		Title:     i.Snippet.Title,
		Artist:    i.Snippet.ChannelTitle,
		Thumbnail: i.Snippet.Thumbnails["default"].URL,
	}
}

type youtubeSearchResponse struct {
	Items []YouTubeSearchItem `json:"items"`
}

type youtubeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// YouTubeService implements [Searcher] against the YouTube Data API.
type YouTubeService struct {
	baseURL    string
	apiKey     string
	token      string
	maxResults int
	categoryID string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeService creates a search client from credentials and search settings.
//
// A nil client selects [http.DefaultClient], or an [oauth2] client when only an access token is configured.
func NewYouTubeService(creds shared.YouTubeConfig, opts shared.SearchConfig, client *http.Client) *YouTubeService {
	baseURL := strings.TrimRight(creds.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	if client == nil {
		if creds.APIKey == "" && creds.AccessToken != "" {
			src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken, TokenType: "Bearer"})
			client = oauth2.NewClient(context.Background(), src)
		} else {
			client = http.DefaultClient
		}
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	categoryID := opts.CategoryID
	if categoryID == "" {
		categoryID = defaultMusicCategory
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	return &YouTubeService{
		baseURL:    baseURL,
		apiKey:     creds.APIKey,
		token:      creds.AccessToken,
		maxResults: maxResults,
		categoryID: categoryID,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// Search calls GET {base}/search for videos in the configured category.
func (y *YouTubeService) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	query = strings.TrimSpace(query)
	result := &models.SearchResult{Query: query, Tracks: []models.Track{}}
	if query == "" {
		return result, nil
	}

	if y.apiKey == "" && y.token == "" {
		return nil, fmt.Errorf("%w: youtube api_key or access_token", shared.ErrMissingCredentials)
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRateLimited, err)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoCategoryId", y.categoryID)
	params.Set("maxResults", strconv.Itoa(y.maxResults))
	params.Set("q", query)
	if y.apiKey != "" {
		params.Set("key", y.apiKey)
	}

	var resp youtubeSearchResponse
	if err := y.doRequest(ctx, "/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		result.Tracks = append(result.Tracks, item.Track())
	}

	return result, nil
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp youtubeErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: youtube API error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: youtube API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ytq/internal/models"
	"github.com/desertthunder/ytq/internal/queue"
	"github.com/desertthunder/ytq/internal/repositories"
	"github.com/desertthunder/ytq/internal/shared"
	tu "github.com/desertthunder/ytq/internal/testing"
	"github.com/gorilla/websocket"
)

type fixture struct {
	server    *Server
	http      *httptest.Server
	user      *models.User
	playlists *repositories.PlaylistRepository
}

func newFixture(t *testing.T, cfg shared.ServerConfig, maxLen int, searcher *tu.MockSearcher) *fixture {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	users := repositories.NewUserRepository(db)
	user := models.NewUser(0, "alice")
	if err := users.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{"*"}
	}

	opts := Options{
		Config:    cfg,
		Queue:     queue.New[json.RawMessage](maxLen),
		Users:     users,
		Playlists: repositories.NewPlaylistRepository(db),
		Logger:    shared.NewLogger(io.Discard),
	}
	if searcher != nil {
		opts.Searcher = searcher
	}

	srv := New(opts)
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		srv.Hub().Close()
		ts.Close()
	})

	return &fixture{server: srv, http: ts, user: user, playlists: repositories.NewPlaylistRepository(db)}
}

func (f *fixture) do(t *testing.T, method, path, body, key string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, f.http.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, string(data)
}

func TestQueueEndpoints(t *testing.T) {
	open := shared.ServerConfig{RequireAuth: false}

	t.Run("Empty queue", func(t *testing.T) {
		f := newFixture(t, open, 0, nil)

		resp, body := f.do(t, http.MethodGet, "/api/queue", "", "")
		if resp.StatusCode != http.StatusOK || body != "[]" {
			t.Errorf("expected 200 [], got %d %s", resp.StatusCode, body)
		}
		if resp.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %s", resp.Header.Get("Content-Type"))
		}
	})

	t.Run("Add preserves records as-is", func(t *testing.T) {
		f := newFixture(t, open, 0, nil)

		resp, body := f.do(t, http.MethodPost, "/api/queue/add", `{"title": "A", "zeta": [1, 2], "alpha": null}`, "")
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d %s", resp.StatusCode, body)
		}
		if body != `{"message":"Song added successfully!"}` {
			t.Errorf("unexpected body %s", body)
		}

		f.do(t, http.MethodPost, "/api/queue/add", `{"title":"B"}`, "")

		_, body = f.do(t, http.MethodGet, "/api/queue", "", "")
		if body != `[{"title":"A","zeta":[1,2],"alpha":null},{"title":"B"}]` {
			t.Errorf("unexpected queue %s", body)
		}
	})

	t.Run("Add rejects non-objects", func(t *testing.T) {
		f := newFixture(t, open, 0, nil)

		for _, body := range []string{"", "[1,2]", `"song"`, "42", "null", "{broken", `{"a":1} {"b":2}`} {
			resp, _ := f.do(t, http.MethodPost, "/api/queue/add", body, "")
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("body %q: expected 400, got %d", body, resp.StatusCode)
			}
		}

		if f.server.Queue().Len() != 0 {
			t.Errorf("rejected bodies should not be queued, len=%d", f.server.Queue().Len())
		}
	})

	t.Run("Move", func(t *testing.T) {
		tt := []struct {
			name string
			body string
			want string
		}{
			{name: "front to end", body: `{"fromIndex":0,"toIndex":2}`, want: `[{"t":"B"},{"t":"C"},{"t":"A"}]`},
			{name: "end to front", body: `{"fromIndex":2,"toIndex":0}`, want: `[{"t":"C"},{"t":"A"},{"t":"B"}]`},
			{name: "out of range is a no-op", body: `{"fromIndex":7,"toIndex":0}`, want: `[{"t":"A"},{"t":"B"},{"t":"C"}]`},
			{name: "destination past end appends", body: `{"fromIndex":0,"toIndex":99}`, want: `[{"t":"B"},{"t":"C"},{"t":"A"}]`},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture(t, open, 0, nil)
				for _, title := range []string{"A", "B", "C"} {
					f.do(t, http.MethodPost, "/api/queue/add", `{"t":"`+title+`"}`, "")
				}

				resp, body := f.do(t, http.MethodPost, "/api/queue/move", tc.body, "")
				if resp.StatusCode != http.StatusOK || body != `{"message":"Queue updated"}` {
					t.Fatalf("expected 200 Queue updated, got %d %s", resp.StatusCode, body)
				}

				_, body = f.do(t, http.MethodGet, "/api/queue", "", "")
				if body != tc.want {
					t.Errorf("queue = %s, want %s", body, tc.want)
				}
			})
		}
	})

	t.Run("Move rejects bad input", func(t *testing.T) {
		f := newFixture(t, open, 0, nil)

		for _, body := range []string{"", `{}`, `{"fromIndex":0}`, `{"fromIndex":"0","toIndex":1}`, `{"fromIndex":1.5,"toIndex":0}`} {
			resp, _ := f.do(t, http.MethodPost, "/api/queue/move", body, "")
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("body %q: expected 400, got %d", body, resp.StatusCode)
			}
		}
	})

	t.Run("Queue full", func(t *testing.T) {
		f := newFixture(t, open, 1, nil)

		f.do(t, http.MethodPost, "/api/queue/add", `{"t":"A"}`, "")
		resp, _ := f.do(t, http.MethodPost, "/api/queue/add", `{"t":"B"}`, "")
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409, got %d", resp.StatusCode)
		}
	})

	t.Run("Wrong method", func(t *testing.T) {
		f := newFixture(t, open, 0, nil)

		resp, _ := f.do(t, http.MethodGet, "/api/queue/add", "", "")
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", resp.StatusCode)
		}
	})
}

func TestAuthentication(t *testing.T) {
	locked := shared.ServerConfig{RequireAuth: true}

	t.Run("Mutations require a key", func(t *testing.T) {
		f := newFixture(t, locked, 0, nil)

		resp, _ := f.do(t, http.MethodPost, "/api/queue/add", `{"t":"A"}`, "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("missing key: expected 401, got %d", resp.StatusCode)
		}

		resp, _ = f.do(t, http.MethodPost, "/api/queue/add", `{"t":"A"}`, "ytq_wrong")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("wrong key: expected 401, got %d", resp.StatusCode)
		}

		resp, _ = f.do(t, http.MethodPost, "/api/queue/add", `{"t":"A"}`, f.user.APIKey())
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("valid key: expected 201, got %d", resp.StatusCode)
		}
	})

	t.Run("Reads stay open", func(t *testing.T) {
		f := newFixture(t, locked, 0, nil)

		resp, _ := f.do(t, http.MethodGet, "/api/queue", "", "")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("Account", func(t *testing.T) {
		f := newFixture(t, locked, 0, nil)

		resp, _ := f.do(t, http.MethodGet, "/api/account", "", "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}

		resp, body := f.do(t, http.MethodGet, "/api/account", "", f.user.APIKey())
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var account models.Account
		if err := json.Unmarshal([]byte(body), &account); err != nil {
			t.Fatalf("failed to decode account: %v", err)
		}
		if account.Username != "alice" || account.Subscribed {
			t.Errorf("unexpected account %+v", account)
		}
		if strings.Contains(body, f.user.APIKey()) {
			t.Error("account response leaks the API key")
		}
	})

	t.Run("Subscribe", func(t *testing.T) {
		f := newFixture(t, locked, 0, nil)

		resp, body := f.do(t, http.MethodPost, "/api/subscribe", "", f.user.APIKey())
		if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Subscription successful!") {
			t.Fatalf("expected 200, got %d %s", resp.StatusCode, body)
		}

		_, body = f.do(t, http.MethodGet, "/api/account", "", f.user.APIKey())
		if !strings.Contains(body, `"subscribed":true`) {
			t.Errorf("subscription not persisted: %s", body)
		}
	})
}

func TestPlaylistEndpoints(t *testing.T) {
	cfg := shared.ServerConfig{RequireAuth: true}

	t.Run("Create and list", func(t *testing.T) {
		f := newFixture(t, cfg, 0, nil)

		resp, body := f.do(t, http.MethodPost, "/api/playlists/create", `{"name":"Road Trip"}`, f.user.APIKey())
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d %s", resp.StatusCode, body)
		}
		if !strings.Contains(body, "Playlist 'Road Trip' created successfully!") {
			t.Errorf("unexpected body %s", body)
		}

		resp, body = f.do(t, http.MethodGet, "/api/playlists", "", f.user.APIKey())
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var views []models.PlaylistView
		if err := json.Unmarshal([]byte(body), &views); err != nil {
			t.Fatalf("failed to decode playlists: %v", err)
		}
		if len(views) != 1 || views[0].Name != "Road Trip" || views[0].Songs == nil {
			t.Errorf("unexpected playlists %+v", views)
		}
	})

	t.Run("Create validation", func(t *testing.T) {
		f := newFixture(t, cfg, 0, nil)

		resp, _ := f.do(t, http.MethodPost, "/api/playlists/create", `{"name":"  "}`, f.user.APIKey())
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("blank name: expected 400, got %d", resp.StatusCode)
		}

		resp, _ = f.do(t, http.MethodPost, "/api/playlists/create", `{"name":"X"}`, "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("anonymous: expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("Create with invalid song stores nothing", func(t *testing.T) {
		f := newFixture(t, cfg, 0, nil)

		resp, body := f.do(t, http.MethodPost, "/api/playlists/create", `{"name":"Broken","songs":[{"title":""}]}`, f.user.APIKey())
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d %s", resp.StatusCode, body)
		}
		if strings.Count(body, "validation failed") != 1 {
			t.Errorf("unexpected error body %s", body)
		}

		playlists, err := f.playlists.List(nil)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 0 {
			t.Errorf("expected no playlists after failed create, got %d", len(playlists))
		}
	})

	t.Run("Enqueue", func(t *testing.T) {
		f := newFixture(t, cfg, 0, nil)

		playlist := models.NewPlaylist(f.user.ID(), "Mix", "")
		playlist.SetSongs([]models.Track{{VideoID: "a", Title: "One"}, {VideoID: "b", Title: "Two"}})
		if err := f.playlists.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		resp, body := f.do(t, http.MethodPost, "/api/playlists/"+playlist.ID()+"/enqueue", "", f.user.APIKey())
		if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"added":2`) {
			t.Fatalf("expected 200 with 2 added, got %d %s", resp.StatusCode, body)
		}

		_, body = f.do(t, http.MethodGet, "/api/queue", "", "")
		if body != `[{"videoId":"a","title":"One"},{"videoId":"b","title":"Two"}]` {
			t.Errorf("unexpected queue %s", body)
		}

		resp, _ = f.do(t, http.MethodPost, "/api/playlists/missing/enqueue", "", f.user.APIKey())
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("missing playlist: expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("Enqueue over capacity", func(t *testing.T) {
		f := newFixture(t, cfg, 1, nil)

		playlist := models.NewPlaylist(f.user.ID(), "Mix", "")
		playlist.SetSongs([]models.Track{{Title: "One"}, {Title: "Two"}})
		if err := f.playlists.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		resp, _ := f.do(t, http.MethodPost, "/api/playlists/"+playlist.ID()+"/enqueue", "", f.user.APIKey())
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409, got %d", resp.StatusCode)
		}
		if f.server.Queue().Len() != 0 {
			t.Errorf("no songs should be queued, got %d", f.server.Queue().Len())
		}
	})
}

func TestSearchEndpoint(t *testing.T) {
	t.Run("Returns tracks", func(t *testing.T) {
		searcher := &tu.MockSearcher{Tracks: []models.Track{{VideoID: "v", Title: "Song", Artist: "Band"}}}
		f := newFixture(t, shared.ServerConfig{}, 0, searcher)

		resp, body := f.do(t, http.MethodGet, "/api/search?query=lofi", "", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if body != `[{"videoId":"v","title":"Song","artist":"Band"}]` {
			t.Errorf("unexpected body %s", body)
		}
		if q := searcher.Queries(); len(q) != 1 || q[0] != "lofi" {
			t.Errorf("unexpected queries %v", q)
		}
	})

	t.Run("Provider errors", func(t *testing.T) {
		tt := []struct {
			err  error
			want int
		}{
			{err: shared.ErrAPIRequest, want: http.StatusBadGateway},
			{err: shared.ErrMissingCredentials, want: http.StatusServiceUnavailable},
			{err: errors.New("boom"), want: http.StatusInternalServerError},
		}

		for _, tc := range tt {
			f := newFixture(t, shared.ServerConfig{}, 0, &tu.MockSearcher{Err: tc.err})

			resp, _ := f.do(t, http.MethodGet, "/api/search?query=x", "", "")
			if resp.StatusCode != tc.want {
				t.Errorf("%v: expected %d, got %d", tc.err, tc.want, resp.StatusCode)
			}
		}
	})

	t.Run("Not configured", func(t *testing.T) {
		f := newFixture(t, shared.ServerConfig{}, 0, nil)

		resp, _ := f.do(t, http.MethodGet, "/api/search?query=x", "", "")
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", resp.StatusCode)
		}
	})
}

func TestHealth(t *testing.T) {
	f := newFixture(t, shared.ServerConfig{}, 0, nil)
	f.server.Queue().Append(json.RawMessage(`{"t":"A"}`))

	resp, body := f.do(t, http.MethodGet, "/health", "", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"queueLength":1`) {
		t.Errorf("unexpected health response %d %s", resp.StatusCode, body)
	}
}

func TestQueueHub(t *testing.T) {
	f := newFixture(t, shared.ServerConfig{}, 0, nil)
	f.server.Queue().Append(json.RawMessage(`{"t":"A"}`))

	wsURL := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/api/queue/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	read := func() string {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("failed to read message: %v", err)
		}
		return string(msg)
	}

	if got := read(); got != `[{"t":"A"}]` {
		t.Errorf("initial snapshot = %s", got)
	}

	f.do(t, http.MethodPost, "/api/queue/add", `{"t":"B"}`, "")
	if got := read(); got != `[{"t":"A"},{"t":"B"}]` {
		t.Errorf("snapshot after add = %s", got)
	}

	f.do(t, http.MethodPost, "/api/queue/move", `{"fromIndex":1,"toIndex":0}`, "")
	if got := read(); got != `[{"t":"B"},{"t":"A"}]` {
		t.Errorf("snapshot after move = %s", got)
	}

	f.server.Hub().Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to close after hub shutdown")
	}
}

func TestStatusFor(t *testing.T) {
	tt := []struct {
		err  error
		want int
	}{
		{shared.ErrValidation, http.StatusBadRequest},
		{shared.ErrUserNotFound, http.StatusNotFound},
		{shared.ErrUsernameTaken, http.StatusConflict},
		{shared.ErrQueueFull, http.StatusConflict},
		{shared.ErrRateLimited, http.StatusBadGateway},
		{bytes.ErrTooLarge, http.StatusInternalServerError},
	}

	for _, tc := range tt {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

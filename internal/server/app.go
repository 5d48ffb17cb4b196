package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytq/internal/queue"
	"github.com/desertthunder/ytq/internal/services"
	"github.com/desertthunder/ytq/internal/shared"
)

// Options holds the dependencies of a [Server]. Users and Playlists may be nil, in which case the routes that need
// them are not registered.
type Options struct {
	Config    shared.ServerConfig
	Queue     *PlaybackQueue
	Users     UserStore
	Playlists PlaylistStore
	Searcher  services.Searcher
	Logger    *log.Logger
}

// Server is the ytq HTTP API: the playback queue plus search, playlists and account endpoints.
type Server struct {
	config shared.ServerConfig
	queue  *PlaybackQueue
	hub    *QueueHub
	router *BasicRouter
	logger *log.Logger
}

// New builds a [Server] and registers every route.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	q := opts.Queue
	if q == nil {
		q = queue.New[json.RawMessage](0)
	}

	s := &Server{
		config: opts.Config,
		queue:  q,
		router: NewBasicRouter(),
		logger: logger,
	}
	s.hub = NewQueueHub(q.Snapshot, opts.Config.AllowedOrigins, shared.WithLogger(logger, "component", "hub"))
	s.routes(opts)

	return s
}

func (s *Server) routes(opts Options) {
	r := s.router
	r.Use(Logging(s.logger), CORS(s.config.AllowedOrigins))

	identify := Authenticate(opts.Users, false)
	mutate := Authenticate(opts.Users, s.config.RequireAuth)
	required := Authenticate(opts.Users, true)

	r.Handle(http.MethodGet, "/health", http.HandlerFunc(s.health))

	qh := NewQueueHandlers(s.queue, s.hub.Publish, s.logger)
	r.Handle(http.MethodGet, "/api/queue", http.HandlerFunc(qh.List))
	r.Handle(http.MethodPost, "/api/queue/add", mutate(http.HandlerFunc(qh.Add)))
	r.Handle(http.MethodPost, "/api/queue/move", mutate(http.HandlerFunc(qh.Move)))
	r.Handler(s.hub)

	r.Handle(http.MethodGet, "/api/search", NewSearchHandler(opts.Searcher, s.logger))

	if opts.Playlists != nil {
		playlists := NewPlaylistHandlers(opts.Playlists, s.queue, s.hub.Publish, s.logger)
		r.Handle(http.MethodGet, "/api/playlists", identify(http.HandlerFunc(playlists.List)))
		r.Handle(http.MethodPost, "/api/playlists/create", required(http.HandlerFunc(playlists.Create)))
		r.Handle(http.MethodPost, "/api/playlists/{id}/enqueue", mutate(http.HandlerFunc(playlists.Enqueue)))
	}

	if opts.Users != nil {
		account := NewAccountHandlers(opts.Users, s.logger)
		r.Handle(http.MethodGet, "/api/account", required(http.HandlerFunc(account.Show)))
		r.Handle(http.MethodPost, "/api/subscribe", required(http.HandlerFunc(account.Subscribe)))
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	QueueLength int    `json:"queueLength"`
	Listeners   int    `json:"listeners"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", QueueLength: s.queue.Len(), Listeners: s.hub.Clients()})
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Queue returns the queue served by s.
func (s *Server) Queue() *PlaybackQueue {
	return s.queue
}

// Hub returns the websocket hub.
func (s *Server) Hub() *QueueHub {
	return s.hub
}

// ListenAndServe serves on the configured address until ctx is canceled, then shuts down gracefully within the
// configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down server", "timeout", timeout)
	s.hub.Close()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

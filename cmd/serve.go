package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/ytq/internal/queue"
	"github.com/desertthunder/ytq/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts down gracefully.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	srv, err := r.newServer(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}

// newServer applies serve flags to the config and wires the queue, stores and searcher into a [server.Server].
func (r *Runner) newServer(cmd *cli.Command) (*server.Server, error) {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	if cmd.Bool("open") {
		cfg.RequireAuth = false
	}

	users, err := r.users()
	if err != nil {
		return nil, err
	}
	playlists, err := r.playlists()
	if err != nil {
		return nil, err
	}

	if r.searcher == nil {
		r.logger.Warn("YouTube credentials not configured, /api/search will answer 503")
	}

	r.logger.Info("starting server",
		"addr", cfg.Addr(),
		"require_auth", cfg.RequireAuth,
		"max_queue_length", r.config.Queue.MaxLength,
	)

	return server.New(server.Options{
		Config:    cfg,
		Queue:     queue.New[json.RawMessage](r.config.Queue.MaxLength),
		Users:     users,
		Playlists: playlists,
		Searcher:  r.searcher,
		Logger:    r.logger,
	}), nil
}

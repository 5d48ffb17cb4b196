// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/ytq/internal/formatter"
	"github.com/urfave/cli/v3"
)

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the playback queue HTTP server until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (overrides [server] host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides [server] port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Allow queue changes without an API key",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles config and database setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config if missing, initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "status",
				Usage:  "Show applied database migrations",
				Action: r.SetupStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// userCommand handles local account management
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "user",
		Aliases: []string{"users"},
		Usage:   "Manage server accounts and API keys",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an account and print its API key",
				ArgsUsage: "<username>",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Action:    r.UserCreate,
			},
			{
				Name:      "show",
				Usage:     "Show an account",
				ArgsUsage: "<username>",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON (without the API key)",
					},
				},
				Action: r.UserShow,
			},
			{
				Name:      "subscribe",
				Usage:     "Mark an account as subscribed",
				ArgsUsage: "<username>",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Action:    r.UserSubscribe,
			},
			{
				Name:      "rename",
				Usage:     "Change an account's username",
				ArgsUsage: "<old> <new>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "old"},
					&cli.StringArg{Name: "new"},
				},
				Action: r.UserRename,
			},
			{
				Name:      "rotate-key",
				Usage:     "Issue a new API key for an account",
				ArgsUsage: "<username>",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Action:    r.UserRotateKey,
			},
		},
	}
}

// playlistCommand handles stored playlists
func playlistCommand(r *Runner) *cli.Command {
	userFlag := &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Owner username",
	}

	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"playlists", "pl"},
		Usage:   "Stored playlist operations",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an empty playlist",
				ArgsUsage: "<name>",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags: []cli.Flag{
					userFlag,
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Cover art URL",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "list",
				Usage: "List playlists, optionally for one user",
				Flags: []cli.Flag{
					userFlag,
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON",
					},
				},
				Action: r.PlaylistList,
			},
			{
				Name:      "import",
				Usage:     "Import playlists from a JSON file ([{name, cover_art, songs}])",
				ArgsUsage: "<file.json>",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags:     []cli.Flag{userFlag},
				Action:    r.PlaylistImport,
			},
			{
				Name:  "export",
				Usage: "Export stored playlists to files",
				Flags: []cli.Flag{
					userFlag,
					&cli.StringSliceFlag{
						Name:  "id",
						Usage: "Playlist ID to export (repeatable, default: all)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: " + strings.Join(formatter.Formats, ", "),
						Value:   formatter.FormatJSON,
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: playlists_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 5,
					},
				},
				Action: r.PlaylistExport,
			},
			{
				Name:      "enqueue",
				Usage:     "Append every song of a playlist to the server's queue",
				ArgsUsage: "<playlist-id>",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.PlaylistEnqueue,
			},
		},
	}
}

// queueCommand is an HTTP client of a running server's playback queue
func queueCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "queue",
		Aliases: []string{"q"},
		Usage:   "Read and edit the playback queue of a running server",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "Print the queue",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: " + strings.Join(formatter.Formats, ", "),
						Value:   formatter.FormatText,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to a file instead of stdout",
					},
				},
				Action: r.QueueList,
			},
			{
				Name:  "add",
				Usage: "Append a record to the queue",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Raw JSON object to enqueue",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Track title (when --data is not given)",
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Track artist",
					},
					&cli.StringFlag{
						Name:  "video-id",
						Usage: "YouTube video ID",
					},
				},
				Action: r.QueueAdd,
			},
			{
				Name:      "move",
				Usage:     "Move the record at <from> so it ends up at <to>",
				ArgsUsage: "<from> <to>",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "from", Value: -1},
					&cli.IntArg{Name: "to", Value: -1},
				},
				Action: r.QueueMove,
			},
		},
	}
}

// searchCommand searches YouTube for songs
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search YouTube for songs (directly when credentials are configured, otherwise through the server)",
		ArgsUsage: "<query>",
		Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "remote",
				Usage: "Always search through the server",
			},
		},
		Action: r.Search,
	}
}

// apiCommand handles direct calls to a running server
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to a running server",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET, prints the JSON response",
				ArgsUsage: "<path>",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Action:    r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "Direct POST with JSON body",
				ArgsUsage: "<path>",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive queue editing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive queue editor",
		Action:  r.TUI,
	}
}

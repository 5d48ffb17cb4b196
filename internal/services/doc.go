// Package services implements the HTTP clients ytq talks to.
//
// # Searcher Interface
//
// Search providers implement [Searcher], so the server's search endpoint and the `ytq search` command work against any
// provider (and against test doubles).
//
// # YouTube Implementation
//
// [YouTubeService] calls the YouTube Data API v3 search endpoint restricted to videos in the music category.
// Requests are paced by a [rate.Limiter]. When only an OAuth access token is configured, requests go through an
// [oauth2] client instead of carrying an API key.
//
// # ytq API Client
//
// [APIService] talks to a running ytq server. It implements [QueueClient] for the CLI queue commands and the TUI,
// attaching the user's API key as a bearer token.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrMissingCredentials] : no API key or access token configured
//   - [shared.ErrRateLimited] : context ended while waiting for the limiter
//   - [shared.ErrAPIRequest] : non-2xx response from the upstream API
package services

package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrRateLimited        = fmt.Errorf("rate limit wait aborted")

	// Persistence errors
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrUsernameTaken    = fmt.Errorf("username already exists")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrValidation       = fmt.Errorf("validation failed")

	// Queue errors
	ErrQueueFull = fmt.Errorf("queue is full")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

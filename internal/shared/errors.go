package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrSongNotFound       = fmt.Errorf("song not found")

	// Streaming player errors, one per SDK listener category
	ErrPlayerInit    = fmt.Errorf("player initialization failed")
	ErrPlayerAuth    = fmt.Errorf("player authentication failed")
	ErrPlayerAccount = fmt.Errorf("player account error")
	ErrPlayback      = fmt.Errorf("playback error")
	ErrNoDevice      = fmt.Errorf("no playback device available")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

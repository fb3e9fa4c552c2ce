package ui

import (
	"github.com/Dw4n7/Playlist/internal/models"
)

// playlistsMsg carries a fresh workspace snapshot from the backend.
type playlistsMsg struct {
	playlists []models.Playlist
	err       error
}

// likeMsg carries the server's like count for a single playlist. Unlike the
// other mutations it patches the snapshot in place instead of re-fetching.
type likeMsg struct {
	id    int64
	likes int
	err   error
}

// mutationMsg reports the outcome of a create/update/delete call.
type mutationMsg struct {
	op  string
	err error
}

// authMsg reports the outcome of a login or register call.
type authMsg struct {
	username string
	register bool
	err      error
}

// logoutMsg reports the outcome of the backend logout call. The session is
// cleared regardless of err.
type logoutMsg struct {
	err error
}

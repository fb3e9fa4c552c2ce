// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the playlist workspace: after signing in, the user browses
// playlist cards with their nested songs, filters them by name and genre,
// likes playlists, and opens inline editors to create or modify playlists and
// songs. Every view is a pure function of model state.
//
// Which editor is open is an explicit mode on the model rather than a pile of
// booleans, so exactly one of the idle, playlist and song editors can be
// active at a time. After a successful mutation the editor closes and a
// single re-fetch of the workspace snapshot is issued in the same update
// step; a failed fetch keeps the previous snapshot on screen and surfaces
// the error in the status bar.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui

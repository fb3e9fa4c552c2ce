// Package models defines the playlist data model as the backend serves it.
//
// The client never derives persistent state from these types: the playlist
// collection held anywhere in the application is always a verbatim snapshot
// of the last successful fetch, and filtering is a pure view transform.
package models

package models

import "strings"

// Playlist represents a playlist record as returned by the backend, with its
// songs nested in server response order.
type Playlist struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Genre string `json:"genre"`
	Likes int    `json:"likes"`
	Songs []Song `json:"songs"`
}

// Song represents a song record owned by a playlist. Duration is an
// unvalidated string of minutes, passed through as the server stores it.
type Song struct {
	ID         int64  `json:"id"`
	PlaylistID int64  `json:"playlistId"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Duration   string `json:"duration"`
}

// LikeResult is the body of a like response: the authoritative like count
// for the playlist that was liked.
type LikeResult struct {
	Likes int `json:"likes"`
}

// Credentials is the JSON body of login and register requests. The password
// is transient input and is never stored client-side.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the body of a successful login response.
type LoginResult struct {
	Username string `json:"username"`
}

// TokenResult is the body of the streaming token exchange response.
type TokenResult struct {
	AccessToken string `json:"access_token"`
}

// FilterPlaylists returns the playlists whose name contains nameTerm AND
// whose genre contains genreTerm, both case-insensitive. Empty terms match
// everything. The input slice is never mutated.
func FilterPlaylists(playlists []Playlist, nameTerm, genreTerm string) []Playlist {
	nameTerm = strings.ToLower(nameTerm)
	genreTerm = strings.ToLower(genreTerm)

	filtered := make([]Playlist, 0, len(playlists))
	for _, p := range playlists {
		if strings.Contains(strings.ToLower(p.Name), nameTerm) &&
			strings.Contains(strings.ToLower(p.Genre), genreTerm) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

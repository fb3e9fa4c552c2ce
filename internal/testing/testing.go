// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/Dw4n7/Playlist/internal/api"
	"github.com/Dw4n7/Playlist/internal/models"
)

var _ api.Service = (*MockBackend)(nil)

// SamplePlaylists returns the fixture snapshot used across the workspace and
// command tests: two playlists with nested songs and a known like count.
func SamplePlaylists() []models.Playlist {
	return []models.Playlist{
		{
			ID: 1, Name: "Road Trip", Genre: "Rock", Likes: 3,
			Songs: []models.Song{
				{ID: 7, PlaylistID: 1, Title: "Highway Song", Artist: "The Vans", Duration: "3:45"},
				{ID: 9, PlaylistID: 1, Title: "Open Road", Artist: "The Vans", Duration: "4:02"},
			},
		},
		{
			ID: 2, Name: "Late Night", Genre: "Jazz", Likes: 12,
			Songs: []models.Song{
				{ID: 11, PlaylistID: 2, Title: "Blue Hour", Artist: "Mara Quinn", Duration: "5:10"},
			},
		},
	}
}

// MockBackend is a test double for [api.Service]. Each method delegates to
// the corresponding function field when set; otherwise it returns the zero
// value so tests only wire the calls they care about.
type MockBackend struct {
	ListPlaylistsFunc       func(ctx context.Context) ([]models.Playlist, error)
	LikePlaylistFunc        func(ctx context.Context, id int64) (int, error)
	CreatePlaylistFunc      func(ctx context.Context, name, genre string) error
	UpdatePlaylistFunc      func(ctx context.Context, id int64, name, genre string) error
	DeletePlaylistFunc      func(ctx context.Context, id int64) error
	AddSongFunc             func(ctx context.Context, playlistID int64, title, artist, duration string) error
	UpdateSongFunc          func(ctx context.Context, id int64, title, artist, duration string) error
	DeleteSongFunc          func(ctx context.Context, id int64) error
	LoginFunc               func(ctx context.Context, username, password string) (string, error)
	RegisterFunc            func(ctx context.Context, username, password string) error
	LogoutFunc              func(ctx context.Context) error
	ExchangeSpotifyCodeFunc func(ctx context.Context, code string) (string, error)
}

func (m *MockBackend) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if m.ListPlaylistsFunc != nil {
		return m.ListPlaylistsFunc(ctx)
	}
	return SamplePlaylists(), nil
}

func (m *MockBackend) LikePlaylist(ctx context.Context, id int64) (int, error) {
	if m.LikePlaylistFunc != nil {
		return m.LikePlaylistFunc(ctx, id)
	}
	return 0, nil
}

func (m *MockBackend) CreatePlaylist(ctx context.Context, name, genre string) error {
	if m.CreatePlaylistFunc != nil {
		return m.CreatePlaylistFunc(ctx, name, genre)
	}
	return nil
}

func (m *MockBackend) UpdatePlaylist(ctx context.Context, id int64, name, genre string) error {
	if m.UpdatePlaylistFunc != nil {
		return m.UpdatePlaylistFunc(ctx, id, name, genre)
	}
	return nil
}

func (m *MockBackend) DeletePlaylist(ctx context.Context, id int64) error {
	if m.DeletePlaylistFunc != nil {
		return m.DeletePlaylistFunc(ctx, id)
	}
	return nil
}

func (m *MockBackend) AddSong(ctx context.Context, playlistID int64, title, artist, duration string) error {
	if m.AddSongFunc != nil {
		return m.AddSongFunc(ctx, playlistID, title, artist, duration)
	}
	return nil
}

func (m *MockBackend) UpdateSong(ctx context.Context, id int64, title, artist, duration string) error {
	if m.UpdateSongFunc != nil {
		return m.UpdateSongFunc(ctx, id, title, artist, duration)
	}
	return nil
}

func (m *MockBackend) DeleteSong(ctx context.Context, id int64) error {
	if m.DeleteSongFunc != nil {
		return m.DeleteSongFunc(ctx, id)
	}
	return nil
}

func (m *MockBackend) Login(ctx context.Context, username, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return username, nil
}

func (m *MockBackend) Register(ctx context.Context, username, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, password)
	}
	return nil
}

func (m *MockBackend) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockBackend) ExchangeSpotifyCode(ctx context.Context, code string) (string, error) {
	if m.ExchangeSpotifyCodeFunc != nil {
		return m.ExchangeSpotifyCodeFunc(ctx, code)
	}
	return "", nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

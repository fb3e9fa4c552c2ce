package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Dw4n7/Playlist/internal/models"
	"github.com/Dw4n7/Playlist/internal/session"
	"github.com/Dw4n7/Playlist/internal/shared"
	testutils "github.com/Dw4n7/Playlist/internal/testing"
	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// newTestModel builds a signed-in model with the fixture snapshot loaded.
func newTestModel(t *testing.T, backend *testutils.MockBackend) *Model {
	t.Helper()

	sess := session.New()
	sess.Login("kevin")

	m := NewModel(context.Background(), backend, sess, shared.NewLogger(io.Discard))
	m.Update(playlistsMsg{playlists: testutils.SamplePlaylists()})
	return m
}

func TestWorkspace(t *testing.T) {
	t.Run("Snapshot Renders Playlist Cards With Songs", func(t *testing.T) {
		m := newTestModel(t, &testutils.MockBackend{})

		view := m.View()
		if !strings.Contains(view, "Road Trip · Rock · ♥ 3 · 2 songs") {
			t.Errorf("expected Road Trip card, got:\n%s", view)
		}
		if !strings.Contains(view, "The Vans - Highway Song [3:45]") {
			t.Errorf("expected nested song row, got:\n%s", view)
		}
	})

	t.Run("Like Patches Only The Matching Playlist", func(t *testing.T) {
		backend := &testutils.MockBackend{
			LikePlaylistFunc: func(ctx context.Context, id int64) (int, error) {
				if id != 1 {
					t.Errorf("expected like for playlist 1, got %d", id)
				}
				return 4, nil
			},
		}
		m := newTestModel(t, backend)

		_, cmd := m.Update(keyPress('l'))
		if cmd == nil {
			t.Fatal("expected a like command")
		}
		m.Update(cmd())

		if m.ws.playlists[0].Likes != 4 {
			t.Errorf("expected 4 likes, got %d", m.ws.playlists[0].Likes)
		}
		if m.ws.playlists[1].Likes != 12 {
			t.Errorf("other playlist should be untouched, got %d", m.ws.playlists[1].Likes)
		}
	})

	t.Run("Failed Refresh Keeps The Previous Snapshot", func(t *testing.T) {
		m := newTestModel(t, &testutils.MockBackend{})

		m.Update(playlistsMsg{err: errors.New("backend down")})

		view := m.View()
		if !strings.Contains(view, "Road Trip") {
			t.Error("stale snapshot should still render")
		}
		if !strings.Contains(view, "refresh failed") {
			t.Errorf("expected error in status bar, got:\n%s", view)
		}
	})

	t.Run("Filters Narrow The Visible Cards", func(t *testing.T) {
		m := newTestModel(t, &testutils.MockBackend{})

		m.ws.name.SetValue("road")
		view := m.View()
		if !strings.Contains(view, "Road Trip") {
			t.Error("Road Trip should match the name filter")
		}
		if strings.Contains(view, "Late Night") {
			t.Error("Late Night should be filtered out")
		}

		if len(m.ws.playlists) != 2 {
			t.Error("filtering must not mutate the snapshot")
		}
	})

	t.Run("Delete Song Then Refetch Removes It", func(t *testing.T) {
		var deleted int64
		backend := &testutils.MockBackend{
			DeleteSongFunc: func(ctx context.Context, id int64) error {
				deleted = id
				return nil
			},
			ListPlaylistsFunc: func(ctx context.Context) ([]models.Playlist, error) {
				playlists := testutils.SamplePlaylists()
				playlists[0].Songs = playlists[0].Songs[:1]
				return playlists, nil
			},
		}
		m := newTestModel(t, backend)

		// Move to the second song of Road Trip (rows: card, song, song).
		m.ws.cursor = 2
		_, cmd := m.Update(keyPress('d'))
		if cmd == nil {
			t.Fatal("expected a delete command")
		}
		_, fetchCmd := m.Update(cmd())
		if deleted != 9 {
			t.Errorf("expected song 9 deleted, got %d", deleted)
		}
		if fetchCmd == nil {
			t.Fatal("expected a re-fetch after the mutation")
		}
		m.Update(fetchCmd())

		if strings.Contains(m.View(), "Open Road") {
			t.Error("deleted song should be gone after refetch")
		}
	})
}

func TestEditor(t *testing.T) {
	t.Run("Edit Prefills From The Selected Card", func(t *testing.T) {
		m := newTestModel(t, &testutils.MockBackend{})

		m.Update(keyPress('e'))
		if m.ws.editor.mode != modeEditPlaylist {
			t.Fatalf("expected edit playlist mode, got %d", m.ws.editor.mode)
		}
		if m.ws.editor.playlist.name.Value() != "Road Trip" {
			t.Errorf("expected prefilled name, got %q", m.ws.editor.playlist.name.Value())
		}
		if m.ws.editor.playlistID != 1 {
			t.Errorf("expected target playlist 1, got %d", m.ws.editor.playlistID)
		}
	})

	t.Run("Create Opens A Blank Form", func(t *testing.T) {
		m := newTestModel(t, &testutils.MockBackend{})

		m.Update(keyPress('e'))
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m.Update(keyPress('n'))

		if m.ws.editor.mode != modeCreatePlaylist {
			t.Fatalf("expected create playlist mode, got %d", m.ws.editor.mode)
		}
		if m.ws.editor.playlist.name.Value() != "" {
			t.Errorf("expected blank form, got %q", m.ws.editor.playlist.name.Value())
		}
	})

	t.Run("Successful Save Closes The Editor And Refetches Once", func(t *testing.T) {
		var created bool
		backend := &testutils.MockBackend{
			CreatePlaylistFunc: func(ctx context.Context, name, genre string) error {
				created = true
				if name != "Workout" || genre != "Electronic" {
					t.Errorf("unexpected form values %q/%q", name, genre)
				}
				return nil
			},
		}
		m := newTestModel(t, backend)

		m.Update(keyPress('n'))
		m.ws.editor.playlist.name.SetValue("Workout")
		m.ws.editor.playlist.genre.SetValue("Electronic")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected a save command")
		}

		_, fetchCmd := m.Update(cmd())
		if !created {
			t.Error("expected create call")
		}
		if m.ws.editor.mode != modeIdle {
			t.Error("editor should close on success")
		}
		if fetchCmd == nil {
			t.Fatal("expected exactly one re-fetch command")
		}
		if _, ok := fetchCmd().(playlistsMsg); !ok {
			t.Error("re-fetch should produce a snapshot message")
		}
	})

	t.Run("Failed Save Keeps The Editor Open", func(t *testing.T) {
		backend := &testutils.MockBackend{
			CreatePlaylistFunc: func(ctx context.Context, name, genre string) error {
				return errors.New("boom")
			},
		}
		m := newTestModel(t, backend)

		m.Update(keyPress('n'))
		m.ws.editor.playlist.name.SetValue("Workout")
		m.ws.editor.playlist.genre.SetValue("Electronic")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		_, fetchCmd := m.Update(cmd())

		if m.ws.editor.mode != modeCreatePlaylist {
			t.Error("editor should stay open on failure")
		}
		if fetchCmd != nil {
			t.Error("no re-fetch on failure")
		}
		if !strings.Contains(m.View(), "create playlist failed") {
			t.Error("expected error in status bar")
		}
	})

	t.Run("Blank Required Fields Are Rejected Locally", func(t *testing.T) {
		m := newTestModel(t, &testutils.MockBackend{})

		m.Update(keyPress('n'))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Error("expected no backend call for a blank form")
		}
		if !strings.Contains(m.View(), "name and genre are required") {
			t.Error("expected validation message")
		}
	})
}

func TestAuth(t *testing.T) {
	t.Run("Signed Out Model Starts On The Login View", func(t *testing.T) {
		m := NewModel(context.Background(), &testutils.MockBackend{}, session.New(), shared.NewLogger(io.Discard))

		if m.view != LoginView {
			t.Fatalf("expected login view, got %d", m.view)
		}
		if m.Init() != nil {
			t.Error("no snapshot fetch before signing in")
		}
		if !strings.Contains(m.View(), "not signed in") {
			t.Error("header should show signed-out state")
		}
	})

	t.Run("Login Flips The Header And Fetches The Workspace", func(t *testing.T) {
		m := NewModel(context.Background(), &testutils.MockBackend{}, session.New(), shared.NewLogger(io.Discard))

		_, cmd := m.Update(authMsg{username: "kevin"})
		if m.view != WorkspaceView {
			t.Fatalf("expected workspace view, got %d", m.view)
		}
		if cmd == nil {
			t.Fatal("expected snapshot fetch after login")
		}
		if !strings.Contains(m.View(), "kevin") {
			t.Error("header should show the signed-in user")
		}
	})

	t.Run("Failed Login Stays On The Form", func(t *testing.T) {
		m := NewModel(context.Background(), &testutils.MockBackend{}, session.New(), shared.NewLogger(io.Discard))

		m.Update(authMsg{err: errors.New("bad credentials")})
		if m.view != LoginView {
			t.Error("should stay on login view")
		}
		if !strings.Contains(m.View(), "authentication failed") {
			t.Error("expected error in status bar")
		}
	})

	t.Run("Registration Returns To The Login View", func(t *testing.T) {
		m := NewModel(context.Background(), &testutils.MockBackend{}, session.New(), shared.NewLogger(io.Discard))

		m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
		if m.view != RegisterView {
			t.Fatalf("expected register view, got %d", m.view)
		}

		m.Update(authMsg{username: "kevin", register: true})
		if m.view != LoginView {
			t.Error("registration should drop back to sign-in")
		}
		if m.session.Authenticated() {
			t.Error("registration must not open a session")
		}
	})

	t.Run("Logout Clears The Session Even When The Call Fails", func(t *testing.T) {
		backend := &testutils.MockBackend{
			LogoutFunc: func(ctx context.Context) error { return errors.New("timeout") },
		}
		m := newTestModel(t, backend)

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
		if cmd == nil {
			t.Fatal("expected a logout command")
		}
		m.Update(cmd())

		if m.session.Authenticated() {
			t.Error("session should be cleared")
		}
		if m.view != LoginView {
			t.Error("should return to the login view")
		}
		if len(m.ws.playlists) != 0 {
			t.Error("workspace snapshot should be cleared")
		}
	})
}

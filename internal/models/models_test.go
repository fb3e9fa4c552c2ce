package models

import "testing"

func samplePlaylists() []Playlist {
	return []Playlist{
		{ID: 1, Name: "Road Trip", Genre: "Rock", Likes: 3},
		{ID: 2, Name: "Late Night", Genre: "Jazz", Likes: 7},
		{ID: 3, Name: "Rock Anthems", Genre: "Classic Rock", Likes: 0},
	}
}

func TestFilterPlaylists(t *testing.T) {
	t.Run("Empty Terms Match Everything", func(t *testing.T) {
		got := FilterPlaylists(samplePlaylists(), "", "")
		if len(got) != 3 {
			t.Errorf("expected 3 playlists, got %d", len(got))
		}
	})

	t.Run("Name Match Is Case Insensitive", func(t *testing.T) {
		got := FilterPlaylists(samplePlaylists(), "road", "")
		if len(got) != 1 || got[0].ID != 1 {
			t.Errorf("expected only playlist 1, got %v", got)
		}
	})

	t.Run("Genre Match Is Case Insensitive", func(t *testing.T) {
		got := FilterPlaylists(samplePlaylists(), "", "rock")
		if len(got) != 2 {
			t.Errorf("expected 2 playlists, got %d", len(got))
		}
	})

	t.Run("Both Conditions Must Hold", func(t *testing.T) {
		got := FilterPlaylists(samplePlaylists(), "rock", "rock")
		if len(got) != 1 || got[0].ID != 3 {
			t.Errorf("expected only playlist 3, got %v", got)
		}
	})

	t.Run("Substring Not Prefix", func(t *testing.T) {
		got := FilterPlaylists(samplePlaylists(), "night", "")
		if len(got) != 1 || got[0].ID != 2 {
			t.Errorf("expected only playlist 2, got %v", got)
		}
	})

	t.Run("No Match Returns Empty Slice", func(t *testing.T) {
		got := FilterPlaylists(samplePlaylists(), "metal", "")
		if len(got) != 0 {
			t.Errorf("expected no playlists, got %v", got)
		}
	})

	t.Run("Input Is Not Mutated", func(t *testing.T) {
		in := samplePlaylists()
		FilterPlaylists(in, "road", "")
		if len(in) != 3 || in[0].Name != "Road Trip" {
			t.Error("input slice was mutated")
		}
	})
}

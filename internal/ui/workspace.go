package ui

import (
	"github.com/Dw4n7/Playlist/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
)

// editorMode tags which editor, if any, is open. Exactly one mode is active
// at a time.
type editorMode int

const (
	modeIdle editorMode = iota
	modeCreatePlaylist
	modeEditPlaylist
	modeCreateSong
	modeEditSong
)

// editor is the inline modal state for playlist and song forms. playlistID
// and songID identify the record being edited or, for modeCreateSong, the
// card the song will be added to.
type editor struct {
	mode       editorMode
	playlistID int64
	songID     int64
	playlist   playlistForm
	song       songForm
}

func newEditor() editor {
	return editor{
		playlist: newPlaylistForm(),
		song:     newSongForm(),
	}
}

func (e *editor) close() {
	e.mode = modeIdle
	e.playlistID = 0
	e.songID = 0
}

// filterFocus tracks which filter input, if any, owns the keyboard.
type filterFocus int

const (
	filterNone filterFocus = iota
	filterName
	filterGenre
)

// rowKind distinguishes playlist cards from the songs nested under them.
type rowKind int

const (
	rowPlaylist rowKind = iota
	rowSong
)

// row is one selectable line in the flattened workspace listing: a playlist
// card or one of its songs. Indices point into the filtered snapshot.
type row struct {
	kind        rowKind
	playlistIdx int
	songIdx     int
}

// workspace holds the playlist snapshot and everything layered on top of it:
// the live filters, the cursor over the flattened rows and the editor.
type workspace struct {
	playlists []models.Playlist
	name      textinput.Model
	genre     textinput.Model
	focus     filterFocus
	cursor    int
	editor    editor
	fetching  bool
}

func newWorkspace() workspace {
	return workspace{
		name:   newInput("name filter", 64),
		genre:  newInput("genre filter", 64),
		editor: newEditor(),
	}
}

func (w *workspace) reset() {
	w.playlists = nil
	w.name.SetValue("")
	w.genre.SetValue("")
	w.name.Blur()
	w.genre.Blur()
	w.focus = filterNone
	w.cursor = 0
	w.editor.close()
	w.fetching = false
}

// visible applies the name and genre filters to the snapshot. The snapshot
// itself is never mutated by filtering.
func (w *workspace) visible() []models.Playlist {
	return models.FilterPlaylists(w.playlists, w.name.Value(), w.genre.Value())
}

// rows flattens the filtered playlists into the selectable listing: each
// card followed by its songs.
func (w *workspace) rows() []row {
	var rows []row
	for pi, p := range w.visible() {
		rows = append(rows, row{kind: rowPlaylist, playlistIdx: pi})
		for si := range p.Songs {
			rows = append(rows, row{kind: rowSong, playlistIdx: pi, songIdx: si})
		}
	}
	return rows
}

func (w *workspace) clampCursor() {
	if n := len(w.rows()); w.cursor >= n {
		w.cursor = n - 1
	}
	if w.cursor < 0 {
		w.cursor = 0
	}
}

// selected returns the playlist under the cursor and, when the cursor sits
// on a song row, that song.
func (w *workspace) selected() (*models.Playlist, *models.Song) {
	rows := w.rows()
	if len(rows) == 0 || w.cursor >= len(rows) {
		return nil, nil
	}

	visible := w.visible()
	r := rows[w.cursor]
	p := visible[r.playlistIdx]
	if r.kind == rowSong {
		return &p, &p.Songs[r.songIdx]
	}
	return &p, nil
}

// applyLikes patches the like count of a single playlist in the snapshot.
// Every other card is left untouched.
func (w *workspace) applyLikes(id int64, likes int) {
	for i := range w.playlists {
		if w.playlists[i].ID == id {
			w.playlists[i].Likes = likes
			return
		}
	}
}

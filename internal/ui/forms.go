package ui

import (
	"strings"

	"github.com/Dw4n7/Playlist/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

// authForm holds the username/password inputs shared by the sign-in and
// registration views.
type authForm struct {
	username textinput.Model
	password textinput.Model
	focus    int
}

func newAuthForm() authForm {
	f := authForm{
		username: newInput("username", 64),
		password: newInput("password", 64),
	}
	f.password.EchoMode = textinput.EchoPassword
	f.password.EchoCharacter = '•'
	f.username.Focus()
	return f
}

func (f *authForm) reset() {
	f.username.SetValue("")
	f.password.SetValue("")
	f.focus = 0
	f.username.Focus()
	f.password.Blur()
}

func (f *authForm) cycle() {
	f.focus = (f.focus + 1) % 2
	if f.focus == 0 {
		f.username.Focus()
		f.password.Blur()
	} else {
		f.username.Blur()
		f.password.Focus()
	}
}

func (f *authForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

func (f *authForm) values() (string, string) {
	return strings.TrimSpace(f.username.Value()), f.password.Value()
}

// playlistForm edits a playlist's name and genre. The same form backs both
// the create and edit modes; edit mode pre-fills it from the selected card.
type playlistForm struct {
	name  textinput.Model
	genre textinput.Model
	focus int
}

func newPlaylistForm() playlistForm {
	return playlistForm{
		name:  newInput("name", 128),
		genre: newInput("genre", 64),
	}
}

func (f *playlistForm) reset() {
	f.name.SetValue("")
	f.genre.SetValue("")
	f.focus = 0
	f.name.Focus()
	f.genre.Blur()
}

func (f *playlistForm) load(p models.Playlist) {
	f.reset()
	f.name.SetValue(p.Name)
	f.genre.SetValue(p.Genre)
}

func (f *playlistForm) cycle() {
	f.focus = (f.focus + 1) % 2
	if f.focus == 0 {
		f.name.Focus()
		f.genre.Blur()
	} else {
		f.name.Blur()
		f.genre.Focus()
	}
}

func (f *playlistForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.genre, cmd = f.genre.Update(msg)
	}
	return cmd
}

func (f *playlistForm) values() (string, string) {
	return strings.TrimSpace(f.name.Value()), strings.TrimSpace(f.genre.Value())
}

// songForm edits a song's title, artist and duration. The owning playlist is
// fixed by the card the editor was opened from and is not editable here.
type songForm struct {
	title    textinput.Model
	artist   textinput.Model
	duration textinput.Model
	focus    int
}

func newSongForm() songForm {
	return songForm{
		title:    newInput("title", 128),
		artist:   newInput("artist", 128),
		duration: newInput("duration (m:ss)", 16),
	}
}

func (f *songForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.artist, &f.duration}
}

func (f *songForm) reset() {
	for i, in := range f.inputs() {
		in.SetValue("")
		if i == 0 {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	f.focus = 0
}

func (f *songForm) load(s models.Song) {
	f.reset()
	f.title.SetValue(s.Title)
	f.artist.SetValue(s.Artist)
	f.duration.SetValue(s.Duration)
}

func (f *songForm) cycle() {
	inputs := f.inputs()
	f.focus = (f.focus + 1) % len(inputs)
	for i, in := range inputs {
		if i == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *songForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	in := f.inputs()[f.focus]
	*in, cmd = in.Update(msg)
	return cmd
}

func (f *songForm) values() (title, artist, duration string) {
	return strings.TrimSpace(f.title.Value()),
		strings.TrimSpace(f.artist.Value()),
		strings.TrimSpace(f.duration.Value())
}

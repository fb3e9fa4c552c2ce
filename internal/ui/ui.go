package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dw4n7/Playlist/internal/api"
	"github.com/Dw4n7/Playlist/internal/session"
	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const (
	brandName  = "TheBadPlay"
	footerLine = "Proyecto integrador Cesde - Kevin y Duan"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	RegisterView
	WorkspaceView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	logger  *log.Logger
	backend api.Service
	session *session.Session
	view    ViewState
	auth    authForm
	ws      workspace
	status  string
	failed  bool
	width   int
	height  int
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, backend api.Service, sess *session.Session, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	view := LoginView
	if sess.Authenticated() {
		view = WorkspaceView
	}

	return &Model{
		ctx:     ctx,
		logger:  logger,
		backend: backend,
		session: sess,
		view:    view,
		auth:    newAuthForm(),
		ws:      newWorkspace(),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init fetches the workspace snapshot when a session already exists.
func (m *Model) Init() tea.Cmd {
	if m.view == WorkspaceView {
		return m.fetchPlaylists()
	}
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView, RegisterView:
			return m.handleAuthKeys(msg)
		case WorkspaceView:
			if m.ws.editor.mode != modeIdle {
				return m.handleEditorKeys(msg)
			}
			if m.ws.focus != filterNone {
				return m.handleFilterKeys(msg)
			}
			return m.handleWorkspaceKeys(msg)
		}

	case authMsg:
		return m.handleAuth(msg)

	case playlistsMsg:
		m.ws.fetching = false
		if msg.err != nil {
			// Keep the previous snapshot on screen.
			m.setError(fmt.Sprintf("refresh failed: %v", msg.err))
			return m, nil
		}
		m.ws.playlists = msg.playlists
		m.ws.clampCursor()
		return m, nil

	case likeMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("like failed: %v", msg.err))
			return m, nil
		}
		m.ws.applyLikes(msg.id, msg.likes)
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			// The editor stays open so the user can correct and retry.
			m.setError(fmt.Sprintf("%s failed: %v", msg.op, msg.err))
			return m, nil
		}
		m.setStatus(msg.op + " saved")
		m.ws.editor.close()
		return m, m.fetchPlaylists()

	case logoutMsg:
		if msg.err != nil {
			m.logger.Warnf("logout request failed: %v", msg.err)
		}
		m.session.Logout()
		m.ws.reset()
		m.auth.reset()
		m.view = LoginView
		m.setStatus("signed out")
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LoginView:
		body = m.renderAuth("Sign in", "ctrl+r to create an account")
	case RegisterView:
		body = m.renderAuth("Create account", "ctrl+r to go back to sign in")
	case WorkspaceView:
		body = m.renderWorkspace()
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", m.renderHeader(), body, m.renderStatus(), styles.help.Render(footerLine))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(s string) {
	m.logger.Warn(s)
	m.status = s
	m.failed = true
}

// handleAuthKeys drives the sign-in and registration forms.
func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.auth.cycle()
		return m, nil
	case "ctrl+r":
		if m.view == LoginView {
			m.view = RegisterView
		} else {
			m.view = LoginView
		}
		m.auth.reset()
		m.status = ""
		return m, nil
	case "enter":
		username, password := m.auth.values()
		if username == "" || password == "" {
			m.setError("username and password are required")
			return m, nil
		}
		if m.view == RegisterView {
			return m, m.register(username, password)
		}
		return m, m.login(username, password)
	}

	return m, m.auth.update(msg)
}

func (m *Model) handleAuth(msg authMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(fmt.Sprintf("authentication failed: %v", msg.err))
		return m, nil
	}

	if msg.register {
		// Registration drops back to sign-in, matching the web flow.
		m.view = LoginView
		m.auth.reset()
		m.setStatus("account created, sign in to continue")
		return m, nil
	}

	m.session.Login(msg.username)
	m.view = WorkspaceView
	m.auth.reset()
	m.setStatus("welcome, " + msg.username)
	return m, m.fetchPlaylists()
}

// handleWorkspaceKeys drives the card listing when no editor or filter owns
// the keyboard.
func (m *Model) handleWorkspaceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.ws.cursor--
		m.ws.clampCursor()
	case key.Matches(msg, m.keys.down):
		m.ws.cursor++
		m.ws.clampCursor()
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchPlaylists()
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	case key.Matches(msg, m.keys.filterName):
		m.ws.focus = filterName
		m.ws.name.Focus()
		return m, nil
	case key.Matches(msg, m.keys.filterGenre):
		m.ws.focus = filterGenre
		m.ws.genre.Focus()
		return m, nil
	case key.Matches(msg, m.keys.newPlaylist):
		m.ws.editor.mode = modeCreatePlaylist
		m.ws.editor.playlist.reset()
		return m, nil
	case key.Matches(msg, m.keys.edit):
		playlist, song := m.ws.selected()
		if playlist == nil {
			return m, nil
		}
		if song != nil {
			m.ws.editor.mode = modeEditSong
			m.ws.editor.playlistID = playlist.ID
			m.ws.editor.songID = song.ID
			m.ws.editor.song.load(*song)
		} else {
			m.ws.editor.mode = modeEditPlaylist
			m.ws.editor.playlistID = playlist.ID
			m.ws.editor.playlist.load(*playlist)
		}
		return m, nil
	case key.Matches(msg, m.keys.addSong):
		playlist, _ := m.ws.selected()
		if playlist == nil {
			return m, nil
		}
		m.ws.editor.mode = modeCreateSong
		m.ws.editor.playlistID = playlist.ID
		m.ws.editor.song.reset()
		return m, nil
	case key.Matches(msg, m.keys.like):
		playlist, song := m.ws.selected()
		if playlist == nil || song != nil {
			return m, nil
		}
		return m, m.like(playlist.ID)
	case key.Matches(msg, m.keys.delete):
		playlist, song := m.ws.selected()
		if playlist == nil {
			return m, nil
		}
		if song != nil {
			return m, m.deleteSong(song.ID)
		}
		return m, m.deletePlaylist(playlist.ID)
	}

	return m, nil
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.ws.name.Blur()
		m.ws.genre.Blur()
		m.ws.focus = filterNone
		m.ws.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	if m.ws.focus == filterName {
		m.ws.name, cmd = m.ws.name.Update(msg)
	} else {
		m.ws.genre, cmd = m.ws.genre.Update(msg)
	}
	m.ws.clampCursor()
	return m, cmd
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.ws.editor

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		e.close()
		m.status = ""
		return m, nil
	case "tab", "shift+tab":
		if e.mode == modeCreatePlaylist || e.mode == modeEditPlaylist {
			e.playlist.cycle()
		} else {
			e.song.cycle()
		}
		return m, nil
	case "enter":
		return m, m.submitEditor()
	}

	if e.mode == modeCreatePlaylist || e.mode == modeEditPlaylist {
		return m, e.playlist.update(msg)
	}
	return m, e.song.update(msg)
}

// submitEditor validates the open form and issues the matching backend call.
func (m *Model) submitEditor() tea.Cmd {
	e := &m.ws.editor

	switch e.mode {
	case modeCreatePlaylist, modeEditPlaylist:
		name, genre := e.playlist.values()
		if name == "" || genre == "" {
			m.setError("name and genre are required")
			return nil
		}
		if e.mode == modeCreatePlaylist {
			return m.mutate("create playlist", func() error {
				return m.backend.CreatePlaylist(m.ctx, name, genre)
			})
		}
		id := e.playlistID
		return m.mutate("update playlist", func() error {
			return m.backend.UpdatePlaylist(m.ctx, id, name, genre)
		})

	case modeCreateSong, modeEditSong:
		title, artist, duration := e.song.values()
		if title == "" || artist == "" {
			m.setError("title and artist are required")
			return nil
		}
		if e.mode == modeCreateSong {
			id := e.playlistID
			return m.mutate("add song", func() error {
				return m.backend.AddSong(m.ctx, id, title, artist, duration)
			})
		}
		id := e.songID
		return m.mutate("update song", func() error {
			return m.backend.UpdateSong(m.ctx, id, title, artist, duration)
		})
	}

	return nil
}

func (m *Model) fetchPlaylists() tea.Cmd {
	m.ws.fetching = true
	return func() tea.Msg {
		playlists, err := m.backend.ListPlaylists(m.ctx)
		return playlistsMsg{playlists: playlists, err: err}
	}
}

func (m *Model) mutate(op string, call func() error) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{op: op, err: call()}
	}
}

func (m *Model) like(id int64) tea.Cmd {
	return func() tea.Msg {
		likes, err := m.backend.LikePlaylist(m.ctx, id)
		return likeMsg{id: id, likes: likes, err: err}
	}
}

func (m *Model) deletePlaylist(id int64) tea.Cmd {
	return m.mutate("delete playlist", func() error {
		return m.backend.DeletePlaylist(m.ctx, id)
	})
}

func (m *Model) deleteSong(id int64) tea.Cmd {
	return m.mutate("delete song", func() error {
		return m.backend.DeleteSong(m.ctx, id)
	})
}

func (m *Model) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		name, err := m.backend.Login(m.ctx, username, password)
		return authMsg{username: name, err: err}
	}
}

func (m *Model) register(username, password string) tea.Cmd {
	return func() tea.Msg {
		err := m.backend.Register(m.ctx, username, password)
		return authMsg{username: username, register: true, err: err}
	}
}

// logout waits for the backend call to complete; the session is cleared when
// the result arrives, whether or not the call succeeded.
func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: m.backend.Logout(m.ctx)}
	}
}

// renderHeader is a pure function of the session state.
func (m *Model) renderHeader() string {
	title := styles.title.Render("♪ " + brandName)
	if user, ok := m.session.CurrentUser(); ok {
		return fmt.Sprintf("%s  %s", title, styles.ok.Render(user))
	}
	return fmt.Sprintf("%s  %s", title, styles.help.Render("not signed in"))
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.failed {
		return styles.err.Render(m.status)
	}
	return styles.ok.Render(m.status)
}

func (m *Model) renderAuth(title, hint string) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n\n")
	b.WriteString("  " + m.auth.username.View() + "\n")
	b.WriteString("  " + m.auth.password.View() + "\n\n")
	b.WriteString(styles.help.Render(fmt.Sprintf("tab to switch fields · enter to submit · %s", hint)))
	return b.String()
}

func (m *Model) renderWorkspace() string {
	if m.ws.editor.mode != modeIdle {
		return m.renderEditor()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("filter: %s  %s\n\n", m.ws.name.View(), m.ws.genre.View()))

	rows := m.ws.rows()
	visible := m.ws.visible()
	if len(rows) == 0 {
		if m.ws.fetching {
			b.WriteString(styles.help.Render("loading playlists..."))
		} else {
			b.WriteString(styles.help.Render("no playlists match, press n to create one"))
		}
	}

	for i, r := range rows {
		p := visible[r.playlistIdx]
		var line string
		if r.kind == rowPlaylist {
			line = fmt.Sprintf("%s · %s · ♥ %d · %d songs", p.Name, p.Genre, p.Likes, len(p.Songs))
		} else {
			s := p.Songs[r.songIdx]
			line = styles.song.Render(fmt.Sprintf("    %s - %s [%s]", s.Artist, s.Title, s.Duration))
		}

		if i == m.ws.cursor {
			b.WriteString(styles.selected.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderEditor() string {
	e := &m.ws.editor
	var b strings.Builder

	switch e.mode {
	case modeCreatePlaylist:
		b.WriteString(styles.title.Render("New playlist"))
	case modeEditPlaylist:
		b.WriteString(styles.title.Render("Edit playlist"))
	case modeCreateSong:
		b.WriteString(styles.title.Render("Add song"))
	case modeEditSong:
		b.WriteString(styles.title.Render("Edit song"))
	}
	b.WriteString("\n\n")

	if e.mode == modeCreatePlaylist || e.mode == modeEditPlaylist {
		b.WriteString("  " + e.playlist.name.View() + "\n")
		b.WriteString("  " + e.playlist.genre.View() + "\n")
	} else {
		b.WriteString("  " + e.song.title.View() + "\n")
		b.WriteString("  " + e.song.artist.View() + "\n")
		b.WriteString("  " + e.song.duration.View() + "\n")
	}

	b.WriteString("\n" + styles.help.Render("tab to switch fields · enter to save · esc to cancel"))
	return b.String()
}

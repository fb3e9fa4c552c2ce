package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up          key.Binding
	down        key.Binding
	newPlaylist key.Binding
	edit        key.Binding
	delete      key.Binding
	addSong     key.Binding
	like        key.Binding
	filterName  key.Binding
	filterGenre key.Binding
	refresh     key.Binding
	logout      key.Binding
	submit      key.Binding
	back        key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		newPlaylist: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new playlist")),
		edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		addSong:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add song")),
		like:        key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		filterName:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter by name")),
		filterGenre: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "filter by genre")),
		refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		logout:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
		submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.like},
		{k.newPlaylist, k.edit, k.delete, k.addSong},
		{k.filterName, k.filterGenre, k.refresh},
		{k.logout, k.back, k.quit},
	}
}

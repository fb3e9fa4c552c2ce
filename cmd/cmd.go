// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// jsonFlags are shared by the read commands.
func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

// authCommand handles account operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Account registration and session management",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a new account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Password (prompted when omitted)",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Sign in and store the session cookie",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Password (prompted when omitted)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "End the session on the backend and drop the cookie",
				Action: r.AuthLogout,
			},
		},
	}
}

// playlistCommand handles playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists with their songs",
				Flags: append(jsonFlags(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Filter by name substring",
					},
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Filter by genre substring",
					},
				),
				Action: r.PlaylistList,
			},
			{
				Name:  "create",
				Usage: "Create a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Playlist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "genre",
						Usage:    "Playlist genre",
						Required: true,
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "update",
				Usage: "Update a playlist's name and genre",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "New name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "genre",
						Usage:    "New genre",
						Required: true,
					},
				},
				Action: r.PlaylistUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist and its songs",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaylistDelete,
			},
			{
				Name:  "like",
				Usage: "Like a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaylistLike,
			},
			{
				Name:  "export",
				Usage: "Export a playlist to csv, markdown or text",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md, txt or json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (directory when --all)",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every playlist concurrently",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers with --all",
						Value: 5,
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// songCommand handles song operations
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Song operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a song to a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "playlist-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Song title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Song artist",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "duration",
						Usage: "Song duration (m:ss)",
					},
				},
				Action: r.SongAdd,
			},
			{
				Name:  "update",
				Usage: "Update a song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "New title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "New artist",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "duration",
						Usage: "New duration (m:ss)",
					},
				},
				Action: r.SongUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SongDelete,
			},
		},
	}
}

// spotifyCommand handles streaming playback operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify playback operations",
		Commands: []*cli.Command{
			{
				Name:  "link",
				Usage: "Link a Spotify account via OAuth2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SpotifyLink,
			},
			{
				Name:   "devices",
				Usage:  "List available playback devices",
				Flags:  jsonFlags(),
				Action: r.SpotifyDevices,
			},
			{
				Name:  "play",
				Usage: "Start or resume playback",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "uri",
						Usage: "Track URI to play instead of resuming",
					},
				},
				Action: r.SpotifyPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Action: r.SpotifyPause,
			},
			{
				Name:   "toggle",
				Usage:  "Toggle between play and pause",
				Action: r.SpotifyToggle,
			},
		},
	}
}

// setupCommand creates the configuration file and local storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize local storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand launches the interactive workspace.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive playlist workspace",
		Action: r.TUI,
	}
}

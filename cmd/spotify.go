package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Dw4n7/Playlist/internal/server"
	"github.com/Dw4n7/Playlist/internal/shared"
	"github.com/Dw4n7/Playlist/internal/store"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const spotifyAuthURL = "https://accounts.spotify.com/authorize"

// playbackScopes are the Web Playback SDK scopes the workspace player needs.
var playbackScopes = []string{
	"streaming",
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-email",
	"user-read-private",
}

// SpotifyLink performs the OAuth2 authorization flow for Spotify playback.
//
// Starts a local HTTP server, opens the browser for user authorization, has
// the backend exchange the code for a token, and stores the token locally.
func (r *Runner) SpotifyLink(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if config == nil {
		var err error
		if _, statErr := os.Stat(configPath); statErr == nil {
			config, err = shared.LoadConfig(configPath)
			if err != nil {
				r.logger.Warnf("failed to load config, using defaults %v", err)
				config = shared.DefaultConfig()
			}
		} else {
			config = shared.DefaultConfig()
		}
	}

	spotify := config.Credentials.Spotify
	if spotify.ClientID == "" || spotify.ClientID == "your_spotify_client_id" {
		return fmt.Errorf("%w: Spotify client_id must be set in %s", shared.ErrInvalidConfig, configPath)
	}
	if r.store == nil {
		return fmt.Errorf("%w: local storage is required to keep the token", shared.ErrServiceUnavailable)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     spotify.ClientID,
		ClientSecret: spotify.ClientSecret,
		RedirectURL:  spotify.RedirectURI,
		Scopes:       playbackScopes,
		Endpoint:     oauth2.Endpoint{AuthURL: spotifyAuthURL},
	}

	state := shared.GenerateID()
	authURL := oauthConfig.AuthCodeURL(state)
	handler := server.NewCallbackHandler(state)

	serveCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	type serveOutcome struct {
		result server.CallbackResult
		err    error
	}
	outcomes := make(chan serveOutcome, 1)
	go func() {
		result, err := server.Serve(serveCtx, config.Server.Addr(), handler)
		outcomes <- serveOutcome{result, err}
	}()

	// Give the listener a moment before sending the user to it.
	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	outcome := <-outcomes
	if outcome.err != nil {
		if serveCtx.Err() != nil {
			return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
		}
		return outcome.err
	}
	if err := outcome.result.Error(); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	r.logger.Info("authorization code received, exchanging via backend")

	token, err := r.backend.ExchangeSpotifyCode(ctx, outcome.result.Code)
	if err != nil {
		return err
	}

	if err := r.store.Set(store.SpotifyTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	r.writePlainln("✓ Spotify authentication successful")
	r.writePlain("You can now use: badplay spotify devices\n")
	return nil
}

// SpotifyDevices lists the playback devices on the linked account.
func (r *Runner) SpotifyDevices(ctx context.Context, cmd *cli.Command) error {
	devices, err := r.player.Devices(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(devices, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d devices:\n\n", len(devices))
	for i, d := range devices {
		marker := " "
		if d.Active {
			marker = "▶"
		}
		r.writePlain("%s %d. %s (%s)\n", marker, i+1, d.Name, d.Type)
	}

	return nil
}

// SpotifyPlay resumes playback, or starts the given track URI.
func (r *Runner) SpotifyPlay(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.player.Connect(ctx); err != nil {
		return err
	}

	if uri := cmd.String("uri"); uri != "" {
		if err := r.player.PlayTrack(ctx, uri); err != nil {
			return err
		}
		return r.writePlain("▶ Playing %s\n", uri)
	}

	if err := r.player.Play(ctx); err != nil {
		return err
	}
	return r.writePlain("▶ Playback resumed\n")
}

// SpotifyPause pauses playback.
func (r *Runner) SpotifyPause(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.player.Connect(ctx); err != nil {
		return err
	}

	if err := r.player.Pause(ctx); err != nil {
		return err
	}
	return r.writePlain("⏸ Playback paused\n")
}

// SpotifyToggle flips between play and pause.
func (r *Runner) SpotifyToggle(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.player.Connect(ctx); err != nil {
		return err
	}

	if err := r.player.TogglePlay(ctx); err != nil {
		return err
	}
	return r.writePlain("⏯ Playback toggled\n")
}
